package hub

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Wizard step bounds.
const (
	FirstStep = 1
	LastStep  = 5
)

// Auth methods offered on the auth step.
const (
	AuthOAuth    = "oauth"
	AuthAPIKey   = "apikey"
	AuthUserPass = "userpass"
	AuthSSO      = "sso"
)

var (
	ErrUnknownTool       = errors.New("unknown tool")
	ErrUnknownDataType   = errors.New("unknown data type")
	ErrUnknownFrequency  = errors.New("unknown sync frequency")
	ErrUnknownAuthMethod = errors.New("unknown auth method")
	ErrOAuthUnavailable  = errors.New("oauth preview unavailable")
)

// AuthSettings are the credentials typed on the auth step.
type AuthSettings struct {
	Method       string `json:"method"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"-"`
	RedirectURI  string `json:"redirect_uri,omitempty"`
}

// ConnectRequest is what "Connect & Save" would send to a backend.
type ConnectRequest struct {
	Tool      models.Tool  `json:"tool"`
	DataTypes []string     `json:"data_types"`
	Frequency string       `json:"sync_frequency"`
	Auth      AuthSettings `json:"auth"`
}

// AddWizard is the five-step add-integration dialog.
type AddWizard struct {
	mu        sync.Mutex
	step      int
	tool      *models.Tool
	dataTypes []string
	frequency string
	auth      AuthSettings
	state     string
	closed    bool

	seed   seed.WizardSeed
	logger *log.Logger
}

// NewAddWizard opens a fresh wizard on step 1.
func NewAddWizard(data seed.WizardSeed, logger *log.Logger) *AddWizard {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &AddWizard{
		step:      FirstStep,
		dataTypes: []string{},
		frequency: "hourly",
		auth:      AuthSettings{Method: AuthOAuth},
		state:     uuid.NewString(),
		seed:      data,
		logger:    logger,
	}
}

func (w *AddWizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// StepTitles are the stepper labels.
func (w *AddWizard) StepTitles() []string {
	return w.seed.Steps
}

func (w *AddWizard) Tools() []models.Tool             { return w.seed.Tools }
func (w *AddWizard) DataTypeOptions() []models.Option { return w.seed.DataTypes }
func (w *AddWizard) Frequencies() []models.Option     { return w.seed.Frequencies }
func (w *AddWizard) AuthMethods() []models.Option     { return w.seed.AuthMethods }

// CanAdvance is false only on step 1 with no tool chosen.
func (w *AddWizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAdvance()
}

func (w *AddWizard) canAdvance() bool {
	return !(w.step == FirstStep && w.tool == nil)
}

// Next advances one step, clamped to the last step.
func (w *AddWizard) Next() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.canAdvance() {
		return
	}
	w.step = min(w.step+1, LastStep)
}

// Back returns one step, clamped to the first step.
func (w *AddWizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = max(w.step-1, FirstStep)
}

// PrimaryLabel is the caption of the forward button.
func (w *AddWizard) PrimaryLabel() string {
	if w.Step() == LastStep {
		return "Connect & Save"
	}
	return "Next"
}

// SecondaryLabel is the caption of the backward button.
func (w *AddWizard) SecondaryLabel() string {
	if w.Step() == FirstStep {
		return "Cancel"
	}
	return "Back"
}

func (w *AddWizard) SelectTool(id string) error {
	i := slices.IndexFunc(w.seed.Tools, func(t models.Tool) bool { return t.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownTool, id)
	}
	tool := w.seed.Tools[i]
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tool = &tool
	return nil
}

func (w *AddWizard) Tool() (models.Tool, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tool == nil {
		return models.Tool{}, false
	}
	return *w.tool, true
}

// ToggleDataType adds or removes a data type from the sync set.
func (w *AddWizard) ToggleDataType(id string) error {
	if _, ok := findOption(w.seed.DataTypes, id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDataType, id)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := slices.Index(w.dataTypes, id); i >= 0 {
		w.dataTypes = slices.Delete(w.dataTypes, i, i+1)
	} else {
		w.dataTypes = append(w.dataTypes, id)
	}
	return nil
}

func (w *AddWizard) DataTypes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.dataTypes)
}

func (w *AddWizard) SetFrequency(id string) error {
	if _, ok := findOption(w.seed.Frequencies, id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFrequency, id)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frequency = id
	return nil
}

func (w *AddWizard) Frequency() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frequency
}

func (w *AddWizard) SetAuth(a AuthSettings) error {
	if _, ok := findOption(w.seed.AuthMethods, a.Method); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAuthMethod, a.Method)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.auth = a
	return nil
}

func (w *AddWizard) Auth() AuthSettings {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.auth
}

// Summary is the review step content.
type Summary struct {
	Tool       models.Tool
	DataTypes  []models.Option
	Frequency  models.Option
	AuthMethod models.Option
}

func (w *AddWizard) Summary() Summary {
	w.mu.Lock()
	defer w.mu.Unlock()
	var s Summary
	if w.tool != nil {
		s.Tool = *w.tool
	}
	for _, id := range w.dataTypes {
		if o, ok := findOption(w.seed.DataTypes, id); ok {
			s.DataTypes = append(s.DataTypes, o)
		}
	}
	s.Frequency, _ = findOption(w.seed.Frequencies, w.frequency)
	s.AuthMethod, _ = findOption(w.seed.AuthMethods, w.auth.Method)
	return s
}

// ConnectAndSave logs the integration request and closes the dialog.
// The directory is never modified.
func (w *AddWizard) ConnectAndSave() ConnectRequest {
	w.mu.Lock()
	req := ConnectRequest{
		DataTypes: slices.Clone(w.dataTypes),
		Frequency: w.frequency,
		Auth:      w.auth,
	}
	if w.tool != nil {
		req.Tool = *w.tool
	}
	w.closed = true
	w.mu.Unlock()

	w.logger.Info("creating integration",
		"tool", req.Tool.ID,
		"data_types", req.DataTypes,
		"sync_frequency", req.Frequency,
		"auth_method", req.Auth.Method)
	return req
}

// Close dismisses the dialog without connecting.
func (w *AddWizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}

func (w *AddWizard) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// AuthorizeURL previews the provider consent URL for the OAuth method.
// Nothing is fetched.
func (w *AddWizard) AuthorizeURL() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tool == nil {
		return "", fmt.Errorf("%w: no tool selected", ErrOAuthUnavailable)
	}
	if w.auth.Method != AuthOAuth {
		return "", fmt.Errorf("%w: method is %s", ErrOAuthUnavailable, w.auth.Method)
	}
	if w.tool.AuthURL == "" {
		return "", fmt.Errorf("%w: %s has no oauth endpoint", ErrOAuthUnavailable, w.tool.Name)
	}
	if w.auth.ClientID == "" {
		return "", fmt.Errorf("%w: client id is required", ErrOAuthUnavailable)
	}
	return oauthConfig(*w.tool, w.auth).AuthCodeURL(w.state, oauth2.AccessTypeOffline), nil
}

// State is the anti-forgery value embedded in AuthorizeURL.
func (w *AddWizard) State() string {
	return w.state
}

func oauthConfig(tool models.Tool, auth AuthSettings) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     auth.ClientID,
		ClientSecret: auth.ClientSecret,
		RedirectURL:  auth.RedirectURI,
		Scopes:       tool.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  tool.AuthURL,
			TokenURL: tool.TokenURL,
		},
	}
}

func findOption(opts []models.Option, id string) (models.Option, bool) {
	for _, o := range opts {
		if o.ID == id {
			return o, true
		}
	}
	return models.Option{}, false
}
