package campaign

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/drylogics/marketingos/task"
	"github.com/jonboulle/clockwork"
	"github.com/oklog/ulid/v2"
)

// Review is step 3: AI flags, suggestions and the assistant chat.
type Review struct {
	mu                  sync.Mutex
	messages            []models.ChatMessage
	showChat            bool
	expandedFlags       bool
	expandedSuggestions bool

	seed      seed.ReviewSeed
	chatDelay time.Duration
	clock     clockwork.Clock
	entropy   *ulid.MonotonicEntropy
	nav       Nav
	group     *task.Group
	logger    *log.Logger
	onChange  func()
}

func NewReview(data seed.ReviewSeed, nav Nav, opts Options) *Review {
	opts = opts.withDefaults()
	r := &Review{
		expandedFlags:       true,
		expandedSuggestions: true,
		seed:                data,
		chatDelay:           opts.Delays.Chat,
		clock:               opts.Clock,
		entropy:             ulid.Monotonic(rand.Reader, 0),
		nav:                 nav,
		group:               task.NewGroup(opts.Clock),
		logger:              opts.Logger,
		onChange:            opts.OnChange,
	}
	r.messages = []models.ChatMessage{r.newMessage(models.SenderAI, data.Greeting)}
	return r
}

func (r *Review) ID() PanelID { return PanelReview }

func (r *Review) Stop() { r.group.Stop() }

// Reply picks the canned assistant answer for a question.
func Reply(data seed.ReviewSeed, question string) string {
	q := strings.ToLower(question)
	if strings.Contains(q, "channel") || strings.Contains(q, "lead-gen") {
		return data.LeadGenReply
	}
	return data.FallbackReply
}

// Send appends the user's message and schedules the assistant reply.
// Blank input is ignored.
func (r *Review) Send(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	reply := Reply(r.seed, text)

	r.mu.Lock()
	r.messages = append(r.messages, r.newMessage(models.SenderUser, text))
	r.mu.Unlock()

	r.logger.Debug("assistant question", "text", text)
	r.group.After(r.chatDelay, func() {
		r.mu.Lock()
		r.messages = append(r.messages, r.newMessage(models.SenderAI, reply))
		r.mu.Unlock()
		r.onChange()
	})
	r.onChange()
}

// Messages returns the transcript, oldest first.
func (r *Review) Messages() []models.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ChatMessage(nil), r.messages...)
}

func (r *Review) ShowChat() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.showChat
}

func (r *Review) ToggleChat() {
	r.mu.Lock()
	r.showChat = !r.showChat
	r.mu.Unlock()
	r.onChange()
}

func (r *Review) FlagsExpanded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.expandedFlags
}

func (r *Review) ToggleFlags() {
	r.mu.Lock()
	r.expandedFlags = !r.expandedFlags
	r.mu.Unlock()
	r.onChange()
}

func (r *Review) SuggestionsExpanded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.expandedSuggestions
}

func (r *Review) ToggleSuggestions() {
	r.mu.Lock()
	r.expandedSuggestions = !r.expandedSuggestions
	r.mu.Unlock()
	r.onChange()
}

func (r *Review) Flags() []models.ReviewFlag       { return r.seed.Flags }
func (r *Review) Suggestions() []models.Suggestion { return r.seed.Suggestions }

func (r *Review) Next()     { r.nav.Next() }
func (r *Review) Backward() { r.nav.Backward() }

// newMessage must be called with r.mu held or before r is shared.
func (r *Review) newMessage(sender, text string) models.ChatMessage {
	now := r.clock.Now()
	return models.ChatMessage{
		ID:     ulid.MustNew(ulid.Timestamp(now), r.entropy).String(),
		Sender: sender,
		Text:   text,
		SentAt: now,
	}
}
