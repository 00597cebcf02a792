package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gravitrone/tsadmin/internal/api"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// Options tune a Server.
type Options struct {
	// Token is accepted in addition to the tokens of active authorizations.
	// Empty disables authentication.
	Token string
	// FailDeletes makes every DELETE fail with 500, for rollback demos.
	FailDeletes bool
	Logger      *slog.Logger
}

// Server is the in-memory platform API.
type Server struct {
	mu          sync.Mutex
	data        Fixtures
	token       string
	failDeletes bool
	failNext    map[string]int
	metrics     *Metrics
	logger      *slog.Logger
	httpServer  *http.Server
}

// New builds a server seeded with a copy of fx.
func New(fx Fixtures, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		data:        fx.clone(),
		token:       opts.Token,
		failDeletes: opts.FailDeletes,
		failNext:    map[string]int{},
		metrics:     NewMetrics(),
		logger:      logger,
	}
	if s.data.Members == nil {
		s.data.Members = map[string][]api.User{}
	}
	s.publishSizes()
	return s
}

// Metrics exposes the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// FailNext makes the next request with method fail with status.
func (s *Server) FailNext(method string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[strings.ToUpper(method)] = status
}

// Handler returns the routed, authenticated and instrumented handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.healthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	v2 := r.PathPrefix("/api/v2").Subrouter()

	v2.HandleFunc("/authorizations", s.listAuthorizations).Methods("GET")
	v2.HandleFunc("/authorizations", s.createAuthorization).Methods("POST")
	v2.HandleFunc("/authorizations/{id}", s.getAuthorization).Methods("GET")
	v2.HandleFunc("/authorizations/{id}", s.updateAuthorization).Methods("PATCH")
	v2.HandleFunc("/authorizations/{id}", s.deleteAuthorization).Methods("DELETE")

	v2.HandleFunc("/orgs", s.listOrgs).Methods("GET")
	v2.HandleFunc("/orgs", s.createOrg).Methods("POST")
	v2.HandleFunc("/orgs/{id}", s.getOrg).Methods("GET")
	v2.HandleFunc("/orgs/{id}", s.updateOrg).Methods("PATCH")
	v2.HandleFunc("/orgs/{id}", s.deleteOrg).Methods("DELETE")
	v2.HandleFunc("/orgs/{id}/members", s.listMembers).Methods("GET")

	v2.HandleFunc("/buckets", s.listBuckets).Methods("GET")
	v2.HandleFunc("/buckets", s.createBucket).Methods("POST")
	v2.HandleFunc("/buckets/{id}", s.updateBucket).Methods("PATCH")

	v2.HandleFunc("/dashboards", s.listDashboards).Methods("GET")
	v2.HandleFunc("/tasks", s.listTasks).Methods("GET")

	v2.HandleFunc("/labels", s.listLabels).Methods("GET")
	v2.HandleFunc("/labels", s.createLabel).Methods("POST")
	v2.HandleFunc("/labels/{id}", s.updateLabel).Methods("PATCH")
	v2.HandleFunc("/labels/{id}", s.deleteLabel).Methods("DELETE")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found", "path not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", r.Method+" not allowed")
	})

	r.Use(s.instrument, s.injectFailures, s.authMiddleware)
	return r
}

// Start listens on addr and serves in the background. It returns the bound
// address, which differs from addr when addr uses port 0.
func (s *Server) Start(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listen %s: %w", addr, err)
	}
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if s.token == "" {
		s.logger.Warn("mock API token not configured, requests are unauthenticated")
	}
	bound := ln.Addr().String()
	s.logger.Info("mock platform API listening", "addr", bound)

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("mock API server error", "err", err)
		}
	}()
	return bound, nil
}

// Shutdown stops a server started with Start.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// --- Middleware ---

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		elapsed := time.Since(start)
		s.metrics.ObserveRequest(r.Method, route, rec.status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"request_id", r.Header.Get(api.RequestIDHeader),
			"duration", elapsed,
		)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}
		s.mu.Lock()
		status, ok := s.failNext[r.Method]
		if ok {
			delete(s.failNext, r.Method)
		} else if s.failDeletes && r.Method == http.MethodDelete {
			status, ok = http.StatusInternalServerError, true
		}
		s.mu.Unlock()

		if ok {
			writeError(w, status, "internal error", "injected failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware accepts the configured token or the token of any active
// authorization. Health and metrics stay open.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" || s.token == "" {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Token ")
		if auth == "" || token == auth || !s.tokenAllowed(token) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized access")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) tokenAllowed(token string) bool {
	if token == s.token {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.data.Authorizations {
		if a.Token == token {
			return a.Status == api.StatusActive
		}
	}
	return false
}

// --- Health ---

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "tsadmin-mock",
		"status":  "pass",
		"message": "ready for queries and writes",
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes the platform error body: {"code": ..., "message": ...}.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid", "invalid request body: "+err.Error())
		return false
	}
	return true
}

func listBody(self, key string, items any) map[string]any {
	return map[string]any{
		"links": api.Links{"self": self},
		key:     items,
	}
}

// newID returns a 16 character lowercase hex platform id.
func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func (s *Server) publishSizes() {
	s.metrics.SetRecords("authorizations", len(s.data.Authorizations))
	s.metrics.SetRecords("orgs", len(s.data.Orgs))
	s.metrics.SetRecords("buckets", len(s.data.Buckets))
	s.metrics.SetRecords("labels", len(s.data.Labels))
}

func (s *Server) orgByID(id string) (api.Organization, bool) {
	for _, o := range s.data.Orgs {
		if o.ID == id {
			return o, true
		}
	}
	return api.Organization{}, false
}

func (s *Server) orgByName(name string) (api.Organization, bool) {
	for _, o := range s.data.Orgs {
		if o.Name == name {
			return o, true
		}
	}
	return api.Organization{}, false
}
