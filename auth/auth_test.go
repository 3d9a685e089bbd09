package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/drylogics/marketingos/models"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  FieldErrors
	}{
		{"valid", Credentials{"ada@example.com", "secret1"}, FieldErrors{}},
		{"uppercase email", Credentials{"ADA@EXAMPLE.IO", "secret1"}, FieldErrors{}},
		{"empty", Credentials{}, FieldErrors{Email: "Email is required", Password: "Password is required"}},
		{"bad email", Credentials{"ada@example", "secret1"}, FieldErrors{Email: "Invalid email format"}},
		{"no at sign", Credentials{"ada.example.com", "secret1"}, FieldErrors{Email: "Invalid email format"}},
		{"short password", Credentials{"ada@example.com", "12345"}, FieldErrors{Password: "Password must be at least 6 characters"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.creds)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == FieldErrors{}, got.Empty())
		})
	}
}

func TestStaticAuthenticatorWaitsForDelay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := &StaticAuthenticator{Email: "demo@example.com", Password: "password123", Delay: time.Second, Clock: clock}

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := a.Authenticate(context.Background(), Credentials{"Demo@Example.com", "password123"})
		done <- outcome{res, err}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	select {
	case <-done:
		t.Fatal("authenticated before the delay elapsed")
	default:
	}

	clock.Advance(time.Second)
	got := <-done
	require.NoError(t, got.err)
	assert.NotEmpty(t, got.res.Token)
}

func TestStaticAuthenticatorRejects(t *testing.T) {
	a := &StaticAuthenticator{Email: "demo@example.com", Password: "password123"}

	_, err := a.Authenticate(context.Background(), Credentials{"demo@example.com", "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestStaticAuthenticatorCancelled(t *testing.T) {
	a := &StaticAuthenticator{Delay: time.Hour, Clock: clockwork.NewFakeClock()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Authenticate(ctx, Credentials{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPAuthenticator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var c Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		switch c.Password {
		case "password123":
			_ = json.NewEncoder(w).Encode(LoginResponse{Success: true, Token: "tok-1"})
		case "silent":
			_ = json.NewEncoder(w).Encode(LoginResponse{Success: false})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(LoginResponse{Message: "Account locked"})
		}
	}))
	defer srv.Close()

	a := &HTTPAuthenticator{Endpoint: srv.URL, Client: srv.Client()}

	res, err := a.Authenticate(context.Background(), Credentials{"ada@example.com", "password123"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)

	_, err = a.Authenticate(context.Background(), Credentials{"ada@example.com", "silent"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Login failed", err.Error())

	_, err = a.Authenticate(context.Background(), Credentials{"ada@example.com", "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Account locked", err.Error())
}

func TestHTTPAuthenticatorBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := &HTTPAuthenticator{Endpoint: srv.URL}
	_, err := a.Authenticate(context.Background(), Credentials{"ada@example.com", "password123"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "500")
}

type recorder struct {
	mu     sync.Mutex
	routes []models.Route
}

func (r *recorder) navigate(route models.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *recorder) got() []models.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Route(nil), r.routes...)
}

func TestLoginFormValidationBlocksSubmit(t *testing.T) {
	f := NewLoginForm(&StaticAuthenticator{}, Options{Clock: clockwork.NewFakeClock()})
	t.Cleanup(f.Stop)

	f.SetEmail("not-an-email")
	assert.False(t, f.Submit())
	assert.False(t, f.Loading())
	assert.Equal(t, "Invalid email format", f.FieldErrors().Email)
	assert.Equal(t, "Password is required", f.FieldErrors().Password)
}

func TestLoginFormSuccessRedirects(t *testing.T) {
	clock := clockwork.NewFakeClock()
	nav := &recorder{}
	a := &StaticAuthenticator{Email: "demo@example.com", Password: "password123", Delay: time.Second, Clock: clock}
	f := NewLoginForm(a, Options{Clock: clock, RedirectDelay: time.Second, Navigate: nav.navigate})
	t.Cleanup(f.Stop)

	f.SetEmail("demo@example.com")
	f.SetPassword("password123")
	require.True(t, f.Submit())
	assert.True(t, f.Loading())
	assert.False(t, f.Submit(), "second submit while loading is ignored")

	ctx, cancel := context.WithTimeout(context.Background(), waitFor)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)

	assert.Eventually(t, func() bool { return !f.Loading() }, waitFor, tick)
	assert.Equal(t, SuccessMessage, f.Success())
	assert.Empty(t, f.Error())
	assert.NotEmpty(t, f.Token())
	assert.Empty(t, nav.got(), "redirect waits for its delay")

	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return len(nav.got()) == 1 }, waitFor, tick)
	assert.Equal(t, []models.Route{models.RouteDashboard}, nav.got())
}

func TestLoginFormFailureShowsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(LoginResponse{Message: "Invalid email or password"})
	}))
	defer srv.Close()

	nav := &recorder{}
	f := NewLoginForm(&HTTPAuthenticator{Endpoint: srv.URL}, Options{Navigate: nav.navigate})
	t.Cleanup(f.Stop)

	f.SetEmail("ada@example.com")
	f.SetPassword("hunter22")
	require.True(t, f.Submit())

	assert.Eventually(t, func() bool { return !f.Loading() }, waitFor, tick)
	assert.Equal(t, "Invalid email or password", f.Error())
	assert.Empty(t, f.Success())
	assert.Empty(t, nav.got())

	f.DismissMessages()
	assert.Empty(t, f.Error())
}

func TestLoginFormStopCancelsLogin(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := &StaticAuthenticator{Email: "demo@example.com", Password: "password123", Delay: time.Second, Clock: clock}
	f := NewLoginForm(a, Options{Clock: clock})

	f.SetEmail("demo@example.com")
	f.SetPassword("password123")
	require.True(t, f.Submit())
	f.Stop()

	assert.Eventually(t, func() bool { return !f.Loading() }, waitFor, tick)
	assert.Empty(t, f.Success())
	assert.Empty(t, f.Error())
}

func TestDarkModeToggle(t *testing.T) {
	var changes int
	f := NewLoginForm(&StaticAuthenticator{}, Options{OnChange: func() { changes++ }})
	t.Cleanup(f.Stop)

	assert.False(t, f.DarkMode())
	f.ToggleDarkMode()
	assert.True(t, f.DarkMode())
	assert.Equal(t, 1, changes)
}

func TestDashboardLogout(t *testing.T) {
	nav := &recorder{}
	d := NewDashboard(nav.navigate)

	assert.Equal(t, "Welcome to the Dashboard! 🎉", d.Welcome())
	d.Logout()
	assert.Equal(t, []models.Route{models.RouteLogin}, nav.got())
}
