package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/p-doom/crowd-cast/internal/catalog"
	"github.com/p-doom/crowd-cast/internal/host"
	"github.com/p-doom/crowd-cast/internal/logger"
	"github.com/p-doom/crowd-cast/internal/tracking"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Server exposes the tracking state and source operations over HTTP and
// pushes change notifications over a websocket.
type Server struct {
	router         *mux.Router
	tracker        *tracking.Service
	model          host.Model
	lister         catalog.Lister
	hub            *Hub
	upgrader       websocket.Upgrader
	extraSuggested []string
}

// NewServer creates a new API server.
func NewServer(tracker *tracking.Service, model host.Model, lister catalog.Lister, hub *Hub, extraSuggested []string) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		tracker: tracker,
		model:   model,
		lister:  lister,
		hub:     hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Controllers connect from arbitrary origins
			},
		},
		extraSuggested: extraSuggested,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/sources/hooked", s.handleGetHookedSources).Methods("GET")
	api.HandleFunc("/sources", s.handleCreateSources).Methods("POST")
	api.HandleFunc("/windows", s.handleGetWindows).Methods("GET")
	api.HandleFunc("/capture/enabled", s.handleSetCaptureEnabled).Methods("POST")
	api.HandleFunc("/events", s.handleEvents)
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the root handler, for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.enableCORS(s.router)
}

// Start starts the HTTP server
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logger.WithComponent("api").Info().Str("addr", addr).Msg("Starting server")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HTTP Handlers

func (s *Server) handleGetHookedSources(w http.ResponseWriter, r *http.Request) {
	states, anyHooked := s.tracker.Snapshot()
	if states == nil {
		states = []tracking.SourceState{}
	}

	writeJSON(w, map[string]interface{}{
		"sources":    states,
		"any_hooked": anyHooked,
		"mode":       s.tracker.Mode(),
	})
}

func (s *Server) handleSetCaptureEnabled(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	enabled, mode := s.tracker.SetCaptureEnabled(req.Enabled)
	writeJSON(w, map[string]interface{}{
		"enabled": enabled,
		"mode":    mode,
	})
}

func (s *Server) handleGetWindows(w http.ResponseWriter, r *http.Request) {
	windows, err := s.lister.ListWindows()
	if err != nil {
		// Best-effort: enumeration failure degrades to an empty catalogue.
		logger.WithComponent("api").Warn().Err(err).Msg("Window enumeration failed")
		windows = nil
	}
	suggested := catalog.Annotate(windows, s.extraSuggested)

	if windows == nil {
		windows = []catalog.Window{}
	}
	writeJSON(w, map[string]interface{}{
		"windows":         windows,
		"suggested":       suggested,
		"source_type":     catalog.SourceTypeID(),
		"window_property": catalog.WindowProperty(),
	})
}

type createRequest struct {
	Windows []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"windows"`
}

type createResult struct {
	Name  string `json:"name"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleCreateSources(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created := make([]createResult, 0)
	failed := make([]createResult, 0)

	if len(req.Windows) == 0 {
		writeJSON(w, map[string]interface{}{
			"success":       false,
			"error":         "missing 'windows' array in request",
			"created":       created,
			"failed":        failed,
			"created_count": 0,
			"failed_count":  0,
		})
		return
	}

	typeID := catalog.SourceTypeID()
	log := logger.WithComponent("api")

	for _, win := range req.Windows {
		if win.ID == "" || win.Name == "" {
			continue
		}

		if _, exists := s.model.SourceByName(win.Name); exists {
			log.Info().Str("name", win.Name).Msg("Source already exists, skipping")
			continue
		}

		if _, err := s.model.CreateSource(typeID, win.Name, catalog.SourceSettings(win.ID)); err != nil {
			log.Warn().Str("name", win.Name).Err(err).Msg("Failed to create source")
			failed = append(failed, createResult{Name: win.Name, Error: err.Error()})
			continue
		}

		log.Info().Str("name", win.Name).Str("id", win.ID).Msg("Created source")
		created = append(created, createResult{Name: win.Name, ID: win.ID})
	}

	writeJSON(w, map[string]interface{}{
		"success":       len(failed) == 0,
		"created_count": len(created),
		"failed_count":  len(failed),
		"created":       created,
		"failed":        failed,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithComponent("api").Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	updates := s.hub.Subscribe()
	defer s.hub.Unsubscribe(updates)

	// Send the current aggregate so a fresh controller doesn't wait for
	// the next edge.
	_, anyHooked := s.tracker.Snapshot()
	if err := conn.WriteJSON(Event{Type: EventHookedChanged, AnyHooked: anyHooked}); err != nil {
		return
	}

	// Notice client disconnects even while no events flow.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "healthy",
		"version": Version,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
