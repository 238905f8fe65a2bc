// internal/delivery/api/server.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"euro-rate-bot/application/scheduler"
	"euro-rate-bot/internal/core/domain/rates"
	"euro-rate-bot/pkg/logger"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RateProvider последнее успешное наблюдение
type RateProvider interface {
	Last() (rates.Observation, bool)
}

// RecipientCounter размер рассылки
type RecipientCounter interface {
	Len() int
}

// JobsProvider состояние задач планировщика
type JobsProvider interface {
	Jobs() []scheduler.JobStatus
}

// Dependencies источники данных для /status
type Dependencies struct {
	Rates      RateProvider
	Recipients RecipientCounter
	Jobs       JobsProvider
	Gatherer   prometheus.Gatherer // nil означает prometheus.DefaultGatherer
	Version    string
}

// StatusResponse тело ответа /status
type StatusResponse struct {
	Version    string                `json:"version"`
	Uptime     string                `json:"uptime"`
	Rate       *rates.Observation    `json:"rate,omitempty"`
	Recipients int                   `json:"recipients"`
	Jobs       []scheduler.JobStatus `json:"jobs"`
}

// Server HTTP сервер статуса: /healthz, /status, /metrics
type Server struct {
	deps      Dependencies
	handler   http.Handler
	server    *http.Server
	startedAt time.Time

	mu   sync.Mutex
	done chan struct{}
}

// NewServer создает сервер статуса на порту port
func NewServer(port int, deps Dependencies) *Server {
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		deps:      deps,
		startedAt: time.Now(),
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	s.handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(
		handlers.LoggingHandler(logWriter{}, router),
	)
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return s
}

// Handler возвращает корневой обработчик (для тестов)
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start запускает сервер в фоновой горутине
func (s *Server) Start() {
	s.mu.Lock()
	if s.done != nil {
		s.mu.Unlock()
		return
	}
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		logger.Info("🌐 HTTP сервер статуса запущен на %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("❌ HTTP сервер статуса: %v", err)
		}
	}()
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}

	err := s.server.Shutdown(ctx)
	<-done
	logger.Info("🛑 HTTP сервер статуса остановлен")
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Version: s.deps.Version,
		Uptime:  time.Since(s.startedAt).Truncate(time.Second).String(),
		Jobs:    []scheduler.JobStatus{},
	}
	if s.deps.Rates != nil {
		if last, ok := s.deps.Rates.Last(); ok {
			resp.Rate = &last
		}
	}
	if s.deps.Recipients != nil {
		resp.Recipients = s.deps.Recipients.Len()
	}
	if s.deps.Jobs != nil {
		resp.Jobs = s.deps.Jobs.Jobs()
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("⚠️ Не удалось записать ответ: %v", err)
	}
}

// logWriter направляет access-лог gorilla/handlers в logger
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	logger.Debug("🌐 %s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
