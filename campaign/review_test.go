package campaign

import (
	"testing"
	"time"

	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/jonboulle/clockwork"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReview(t *testing.T) (*Review, *clockwork.FakeClock) {
	t.Helper()
	opts, clock := testOptions(t)
	r := NewReview(seed.MustLoad().Review, Nav{}, opts)
	t.Cleanup(r.Stop)
	return r, clock
}

func TestReplyMatching(t *testing.T) {
	data := seed.MustLoad().Review
	tests := []struct {
		question string
		want     string
	}{
		{"what channels for lead-gen", data.LeadGenReply},
		{"Which CHANNEL is best?", data.LeadGenReply},
		{"tips for LEAD-GEN", data.LeadGenReply},
		{"lead gen ideas", data.FallbackReply},
		{"how long should this run?", data.FallbackReply},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, Reply(data, tt.question))
		})
	}
}

func TestSendSchedulesReply(t *testing.T) {
	r, clock := newTestReview(t)
	require.Len(t, r.Messages(), 1)
	assert.Equal(t, "How can I help with your campaign brief?", r.Messages()[0].Text)

	r.Send("what channels for lead-gen")
	msgs := r.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.SenderUser, msgs[1].Sender)

	clock.Advance(999 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.Len(t, r.Messages(), 2)

	clock.Advance(time.Millisecond)
	assert.Eventually(t, func() bool { return len(r.Messages()) == 3 }, waitFor, tick)

	reply := r.Messages()[2]
	assert.Equal(t, models.SenderAI, reply.Sender)
	assert.Contains(t, reply.Text, "LinkedIn Ads")
}

func TestSendFallback(t *testing.T) {
	r, clock := newTestReview(t)

	r.Send("is the budget ok?")
	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return len(r.Messages()) == 3 }, waitFor, tick)
	assert.Contains(t, r.Messages()[2].Text, "27% higher engagement")
}

func TestSendIgnoresBlank(t *testing.T) {
	r, _ := newTestReview(t)

	r.Send("   ")
	r.Send("")
	assert.Len(t, r.Messages(), 1)
	assert.Equal(t, 0, r.group.Pending())
}

func TestMessageIDsAreULIDs(t *testing.T) {
	r, _ := newTestReview(t)
	r.Send("hello")

	msgs := r.Messages()
	for _, m := range msgs {
		_, err := ulid.Parse(m.ID)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
}

func TestReviewPanelsToggle(t *testing.T) {
	r, _ := newTestReview(t)

	assert.True(t, r.FlagsExpanded())
	assert.True(t, r.SuggestionsExpanded())
	assert.False(t, r.ShowChat())

	r.ToggleFlags()
	r.ToggleSuggestions()
	r.ToggleChat()

	assert.False(t, r.FlagsExpanded())
	assert.False(t, r.SuggestionsExpanded())
	assert.True(t, r.ShowChat())
	assert.Len(t, r.Flags(), 3)
	assert.Len(t, r.Suggestions(), 2)
}
