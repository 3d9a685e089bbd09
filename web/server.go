// ABOUTME: Web UI server with embedded templates
// ABOUTME: Serves read-only campaign and connection hub pages plus a small JSON API
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/drylogics/marketingos/auth"
	"github.com/drylogics/marketingos/campaign"
	"github.com/drylogics/marketingos/hub"
	"github.com/drylogics/marketingos/models"
	"github.com/drylogics/marketingos/seed"
	"github.com/drylogics/marketingos/viz"
	"github.com/gorilla/mux"
)

//go:embed templates/*
var templatesFS embed.FS

type Server struct {
	data      *seed.Data
	auth      auth.Authenticator
	logger    *log.Logger
	templates *template.Template
	router    *mux.Router
}

func NewServer(data *seed.Data, a auth.Authenticator, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"label": func(c string) string {
			if c == hub.CategoryAll {
				return "All"
			}
			return models.Category(c).Label()
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		data:      data,
		auth:      a,
		logger:    logger,
		templates: tmpl,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Handle("/", http.RedirectHandler(string(models.RouteCampaign), http.StatusFound)).Methods("GET")
	s.router.HandleFunc(string(models.RouteCampaign), s.handleCampaign).Methods("GET")
	s.router.HandleFunc(string(models.RouteHub), s.handleHub).Methods("GET")
	s.router.HandleFunc(string(models.RouteHub)+"/graph.dot", s.handleGraph).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/integrations", s.handleListIntegrations).Methods("GET")
	api.HandleFunc("/integrations/{id}", s.handleGetIntegration).Methods("GET")
	api.HandleFunc("/login", s.handleLogin).Methods("POST")

	s.router.Use(s.logRequests)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "url", "http://"+addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start web server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	// Execute the specified template (usually layout.html)
	// The data map includes ContentTemplate to specify which content block to render
	err := s.templates.ExecuteTemplate(w, name, data)
	if err != nil {
		s.logger.Error("template error", "template", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleCampaign renders one workflow step from a fresh shell.
func (s *Server) handleCampaign(w http.ResponseWriter, r *http.Request) {
	tab := 0
	if v := r.URL.Query().Get("tab"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "tab must be a number", http.StatusBadRequest)
			return
		}
		tab = n
	}

	shell := campaign.NewShell(s.data, campaign.Options{Logger: s.logger})
	defer shell.Close()
	shell.SetActiveTab(tab)

	active := campaign.Dispatch(shell.ActiveTab())
	data := map[string]interface{}{
		"Title":           "Campaign Setup",
		"Route":           string(models.RouteCampaign),
		"Menu":            models.WorkspaceMenu,
		"Tabs":            shell.Tabs(),
		"Stages":          shell.Stages(),
		"StageIndex":      shell.StageIndex(),
		"Active":          int(active),
		"Autosave":        shell.Autosave().Status(),
		"Panel":           shell.Current(),
		"PanelTemplate":   panelTemplate(active),
		"ContentTemplate": "campaign-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func panelTemplate(p campaign.PanelID) string {
	switch p {
	case campaign.PanelAssets:
		return "assets-panel"
	case campaign.PanelToolSync:
		return "toolsync-panel"
	case campaign.PanelReview:
		return "review-panel"
	case campaign.PanelConfirmation:
		return "confirmation-panel"
	}
	return "brief-panel"
}

func (s *Server) handleHub(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tab, err := hub.ParseTab(q.Get("tab"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dir := hub.NewDirectory(s.data.Hub, s.logger)
	dir.SetQuery(q.Get("q"))
	if c := q.Get("category"); c != "" {
		dir.SetCategory(c)
	}
	if id := q.Get("id"); id != "" {
		if err := dir.Select(id); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}
	selected, ok := dir.Selected()

	data := map[string]interface{}{
		"Title":           "Connection Hub",
		"Route":           string(models.RouteHub),
		"Menu":            models.WorkspaceMenu,
		"Query":           dir.Query(),
		"Category":        dir.Category(),
		"Categories":      hub.CategoryFilters(),
		"Health":          dir.HealthSummary(),
		"Attention":       dir.NeedingAttention(),
		"Integrations":    dir.Filtered(),
		"HasSelected":     ok,
		"Selected":        selected,
		"Tab":             string(tab),
		"Tabs":            hub.Tabs,
		"Actions":         hub.Actions,
		"ContentTemplate": "hub-content",
	}
	s.renderTemplate(w, "layout.html", data)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = hub.CategoryAll
	}
	gen := viz.NewGraphGenerator(s.data.Hub.Integrations)
	dot, err := gen.GenerateIntegrationGraph(r.Context(), category)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = io.WriteString(w, dot)
}

func (s *Server) handleListIntegrations(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = hub.CategoryAll
	}
	items := hub.Filter(s.data.Hub.Integrations, r.URL.Query().Get("q"), category)
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetIntegration(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	dir := hub.NewDirectory(s.data.Hub, s.logger)
	it, err := dir.Get(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// loginResponse extends the login body with per-field validation errors.
type loginResponse struct {
	auth.LoginResponse
	Errors *auth.FieldErrors `json:"errors,omitempty"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, loginResponse{LoginResponse: auth.LoginResponse{Message: "Invalid request body"}})
		return
	}

	if errs := auth.Validate(creds); !errs.Empty() {
		writeJSON(w, http.StatusBadRequest, loginResponse{
			LoginResponse: auth.LoginResponse{Message: "Validation failed"},
			Errors:        &errs,
		})
		return
	}

	res, err := s.auth.Authenticate(r.Context(), creds)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("login rejected", "email", creds.Email)
			writeJSON(w, http.StatusUnauthorized, loginResponse{LoginResponse: auth.LoginResponse{Message: err.Error()}})
			return
		}
		s.logger.Error("login failed", "email", creds.Email, "err", err)
		writeJSON(w, http.StatusInternalServerError, loginResponse{LoginResponse: auth.LoginResponse{Message: "Login failed"}})
		return
	}

	s.logger.Info("login succeeded", "email", creds.Email)
	writeJSON(w, http.StatusOK, loginResponse{LoginResponse: auth.LoginResponse{Success: true, Token: res.Token}})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
