// Package http exposes the planner collections as a JSON API.
package http

import (
	"container/list"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"planner/internal/core"
	"planner/internal/planner"
)

// UserHeader carries the opaque user identity. Authentication itself is an
// external collaborator; absent means the anonymous partition.
const UserHeader = "X-Planner-User"

// lruCache with TTL and size-based eviction, used for aggregate responses.
type lruCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List
}

type cacheItem[T any] struct {
	key       string
	data      T
	expiresAt time.Time
}

func newLRUCache[T any](maxSize int, ttl time.Duration) *lruCache[T] {
	return &lruCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *lruCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, exists := c.items[key]
	if !exists {
		return zero, false
	}

	item := elem.Value.(*cacheItem[T])
	if time.Now().After(item.expiresAt) {
		c.removeElement(elem)
		return zero, false
	}

	c.lru.MoveToFront(elem)
	return item.data, true
}

func (c *lruCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[T]{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *lruCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

func (c *lruCache[T]) removeElement(elem *list.Element) {
	item := elem.Value.(*cacheItem[T])
	delete(c.items, item.key)
	c.lru.Remove(elem)
}

// Simple in-memory rate limiter per client IP.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

// allow permits up to 120 requests per client per minute.
func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]
	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= 120
}

type Server struct {
	http.Server
	svc         *planner.Service
	rateLimiter *rateLimiter

	statsCache    *lruCache[map[string]core.CategoryStat]
	spendingCache *lruCache[[]core.CategoryTotal]

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, svc *planner.Service) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:           svc,
		rateLimiter:   newRateLimiter(),
		statsCache:    newLRUCache[map[string]core.CategoryStat](100, time.Minute),
		spendingCache: newLRUCache[[]core.CategoryTotal](100, time.Minute),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /tasks", s.wrap(s.handleListTasks))
	mux.HandleFunc("POST /tasks", s.wrap(s.handleCreateTask))
	mux.HandleFunc("POST /tasks/reorder", s.wrap(s.handleReorderTasks))
	mux.HandleFunc("POST /tasks/clone-day", s.wrap(s.handleCloneDay))
	mux.HandleFunc("GET /tasks/day/{date}", s.wrap(s.handleTasksOn))
	mux.HandleFunc("POST /tasks/{id}/toggle", s.wrap(s.handleToggleTask))
	mux.HandleFunc("PATCH /tasks/{id}", s.wrap(s.handleUpdateTask))
	mux.HandleFunc("DELETE /tasks/{id}", s.wrap(s.handleDeleteTask))

	mux.HandleFunc("GET /categories", s.wrap(s.handleListCategories))
	mux.HandleFunc("POST /categories", s.wrap(s.handleCreateCategory))
	mux.HandleFunc("DELETE /categories/{name}", s.wrap(s.handleDeleteCategory))

	mux.HandleFunc("GET /stats/categories", s.wrap(s.handleCategoryStats))
	mux.HandleFunc("GET /stats/spending", s.wrap(s.handleSpendingTotals))

	mux.HandleFunc("GET /wealth", s.wrap(s.handleGetWealth))
	mux.HandleFunc("POST /wealth/distribute", s.wrap(s.handleDistribute))
	mux.HandleFunc("POST /wealth/jars", s.wrap(s.handleAddJar))
	mux.HandleFunc("DELETE /wealth/jars/{id}", s.wrap(s.handleDeleteJar))
	mux.HandleFunc("POST /wealth/transactions", s.wrap(s.handleAddTransaction))
	mux.HandleFunc("DELETE /wealth/transactions/{id}", s.wrap(s.handleDeleteTransaction))

	mux.HandleFunc("GET /cycles", s.wrap(s.handleGetCycles))
	mux.HandleFunc("POST /cycles/regenerate", s.wrap(s.handleRegenerateCycles))
	mux.HandleFunc("GET /cycles/export", s.wrap(s.handleExportCycles))
	mux.HandleFunc("POST /cycles/{id}/tasks", s.wrap(s.handleAddCycleTask))
	mux.HandleFunc("PATCH /cycles/{id}/tasks/{taskID}", s.wrap(s.handleUpdateCycleTask))
	mux.HandleFunc("DELETE /cycles/{id}/tasks/{taskID}", s.wrap(s.handleDeleteCycleTask))

	mux.HandleFunc("GET /reviews/daily/{date}", s.wrap(s.handleGetDailyReview))
	mux.HandleFunc("PUT /reviews/daily/{date}", s.wrap(s.handlePutDailyReview))
	mux.HandleFunc("GET /reviews/cycle/{id}", s.wrap(s.handleGetCycleReview))
	mux.HandleFunc("PUT /reviews/cycle/{id}", s.wrap(s.handlePutCycleReview))
	mux.HandleFunc("GET /reviews/yearly/{year}", s.wrap(s.handleGetYearlyReview))
	mux.HandleFunc("PUT /reviews/yearly/{year}", s.wrap(s.handlePutYearlyReview))

	mux.HandleFunc("GET /habits", s.wrap(s.handleListHabits))
	mux.HandleFunc("POST /habits", s.wrap(s.handleCreateHabit))
	mux.HandleFunc("POST /habits/{id}/toggle", s.wrap(s.handleToggleHabit))
	mux.HandleFunc("DELETE /habits/{id}", s.wrap(s.handleDeleteHabit))

	return s
}

// wrap adds request id, security headers, rate limiting on mutating
// methods, and request logging.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// Shutdown stops the cleanup goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// userFrom resolves the identity partition for a request.
func userFrom(r *http.Request) string {
	if user := r.Header.Get(UserHeader); user != "" {
		return user
	}
	return planner.AnonymousUser
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Encode response failed", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto the API taxonomy: invalid input is
// 422, capacity and occupancy conflicts are 409, lookup misses are 404.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrEmptyLabel),
		errors.Is(err, core.ErrInvalidPosition),
		errors.Is(err, core.ErrDuplicateID),
		errors.Is(err, core.ErrDuplicateCategory):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrCycleTaskCap),
		errors.Is(err, core.ErrJarNotEmpty):
		status = http.StatusConflict
	case errors.Is(err, core.ErrNotFound),
		errors.Is(err, core.ErrJarNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "url", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
