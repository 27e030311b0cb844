package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// Checker is a function that checks the health of a dependency.
type Checker func(ctx context.Context) error

// Status represents the health status of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Response is the JSON response returned by the health endpoint.
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the result of a single health check.
type CheckResult struct {
	Status   Status `json:"status"`
	Critical bool   `json:"critical"`
	Error    string `json:"error,omitempty"`
}

type registeredChecker struct {
	check    Checker
	critical bool
}

// Handler provides HTTP health check endpoints.
type Handler struct {
	mu       sync.RWMutex
	checkers map[string]registeredChecker
}

// NewHandler creates a new health check handler.
func NewHandler() *Handler {
	return &Handler{
		checkers: make(map[string]registeredChecker),
	}
}

// RegisterCritical adds a named health checker whose failure makes the
// service not ready.
func (h *Handler) RegisterCritical(name string, checker Checker) {
	h.register(name, checker, true)
}

// RegisterNonCritical adds a named health checker that is reported but does
// not affect readiness.
func (h *Handler) RegisterNonCritical(name string, checker Checker) {
	h.register(name, checker, false)
}

func (h *Handler) register(name string, checker Checker, critical bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = registeredChecker{check: checker, critical: critical}
}

// LivenessHandler returns a simple liveness check (always 200 if the process is running).
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(Response{
			Status:    StatusUp,
			Timestamp: time.Now().UTC(),
		})
	}
}

// ReadinessHandler checks all registered dependencies and returns 200/503.
// Only critical checker failures flip the overall status to down.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		h.mu.RLock()
		checkers := make(map[string]registeredChecker, len(h.checkers))
		for k, v := range h.checkers {
			checkers[k] = v
		}
		h.mu.RUnlock()

		checks := make(map[string]CheckResult, len(checkers))
		overallStatus := StatusUp

		for name, rc := range checkers {
			if err := rc.check(ctx); err != nil {
				checks[name] = CheckResult{Status: StatusDown, Critical: rc.critical, Error: err.Error()}
				if rc.critical {
					overallStatus = StatusDown
				}
			} else {
				checks[name] = CheckResult{Status: StatusUp, Critical: rc.critical}
			}
		}

		resp := Response{
			Status:    overallStatus,
			Timestamp: time.Now().UTC(),
			Checks:    checks,
		}

		w.Header().Set("Content-Type", "application/json")
		if overallStatus == StatusDown {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
