package auth

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/task"
	"github.com/jonboulle/clockwork"
)

// SuccessMessage is shown once the authenticator accepts the credentials.
const SuccessMessage = "Login successful!"

// Options configure the login form.
type Options struct {
	Clock         clockwork.Clock
	RedirectDelay time.Duration
	Logger        *log.Logger
	// Navigate is called with the dashboard route after a successful login.
	Navigate func(models.Route)
	OnChange func()
}

// LoginForm is the state of the login screen.
type LoginForm struct {
	mu          sync.Mutex
	creds       Credentials
	fieldErrors FieldErrors
	loading     bool
	errMsg      string
	successMsg  string
	token       string
	dark        bool

	auth  Authenticator
	group *task.Group
	opts  Options
}

// NewLoginForm builds an empty form checking credentials with a.
func NewLoginForm(a Authenticator, opts Options) *LoginForm {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.RedirectDelay == 0 {
		opts.RedirectDelay = time.Second
	}
	return &LoginForm{
		auth:  a,
		group: task.NewGroup(opts.Clock),
		opts:  opts,
	}
}

func (f *LoginForm) notify() {
	if f.opts.OnChange != nil {
		f.opts.OnChange()
	}
}

func (f *LoginForm) SetEmail(v string) {
	f.mu.Lock()
	f.creds.Email = v
	f.mu.Unlock()
	f.notify()
}

func (f *LoginForm) SetPassword(v string) {
	f.mu.Lock()
	f.creds.Password = v
	f.mu.Unlock()
	f.notify()
}

func (f *LoginForm) Credentials() Credentials {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creds
}

func (f *LoginForm) FieldErrors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors
}

// Loading is true while an authentication is in flight. The submit
// button is disabled meanwhile.
func (f *LoginForm) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

func (f *LoginForm) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

func (f *LoginForm) Success() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.successMsg
}

// Token is the session token from the last successful login.
func (f *LoginForm) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// DismissMessages closes the error and success banners.
func (f *LoginForm) DismissMessages() {
	f.mu.Lock()
	f.errMsg = ""
	f.successMsg = ""
	f.mu.Unlock()
	f.notify()
}

func (f *LoginForm) DarkMode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dark
}

func (f *LoginForm) ToggleDarkMode() {
	f.mu.Lock()
	f.dark = !f.dark
	f.mu.Unlock()
	f.notify()
}

// Submit validates the form and starts authentication. It returns false
// when validation fails or a login is already running.
func (f *LoginForm) Submit() bool {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return false
	}
	f.fieldErrors = Validate(f.creds)
	if !f.fieldErrors.Empty() {
		f.mu.Unlock()
		f.notify()
		return false
	}
	creds := f.creds
	f.loading = true
	f.errMsg = ""
	f.successMsg = ""
	f.mu.Unlock()
	f.notify()

	f.group.Go(func(ctx context.Context) {
		f.authenticate(ctx, creds)
	})
	return true
}

func (f *LoginForm) authenticate(ctx context.Context, creds Credentials) {
	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
		f.notify()
	}()

	res, err := f.auth.Authenticate(ctx, creds)
	if errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		f.opts.Logger.Warn("login failed", "email", creds.Email, "err", err)
		f.mu.Lock()
		f.errMsg = err.Error()
		f.mu.Unlock()
		return
	}

	f.opts.Logger.Info("login succeeded", "email", creds.Email)
	f.mu.Lock()
	f.successMsg = SuccessMessage
	f.token = res.Token
	f.mu.Unlock()

	f.group.After(f.opts.RedirectDelay, func() {
		if f.opts.Navigate != nil {
			f.opts.Navigate(models.RouteDashboard)
		}
	})
}

// Stop cancels a running login and any pending redirect.
func (f *LoginForm) Stop() {
	f.group.Stop()
}
