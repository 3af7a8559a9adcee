package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// MonteCarloRequest is the body of POST /v1/montecarlo.
type MonteCarloRequest struct {
	Scenario *domain.ScenarioInput   `json:"scenario"`
	Config   domain.MonteCarloConfig `json:"config"`
}

// ValidateResponse is the body of a successful POST /v1/validate.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// HashResponse is the body of POST /v1/hash.
type HashResponse struct {
	InputHash string `json:"inputHash"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status        string `json:"status"`
	EngineVersion string `json:"engineVersion"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", EngineVersion: calculation.EngineVersion})
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var input domain.ScenarioInput
	if !s.decode(w, r, &input) {
		return
	}
	result, err := s.projection.Run(r.Context(), &input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMonteCarlo(w http.ResponseWriter, r *http.Request) {
	var req MonteCarloRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Scenario == nil {
		s.writeError(w, r, fmt.Errorf("%w: scenario is required", config.ErrInvalidInput))
		return
	}
	result, err := s.monteCarlo.Run(r.Context(), req.Scenario, req.Config)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var input domain.ScenarioInput
	if !s.decode(w, r, &input) {
		return
	}
	if err := calculation.ValidateInput(&input); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ValidateResponse{Valid: true})
}

func (s *Server) handleHash(w http.ResponseWriter, r *http.Request) {
	var input domain.ScenarioInput
	if !s.decode(w, r, &input) {
		return
	}
	hash, err := calculation.GetInputHash(&input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, HashResponse{InputHash: hash})
}

// decode reads a JSON body, rejecting unknown fields. It writes the error
// reply itself and reports whether decoding succeeded.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		status := http.StatusBadRequest
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		s.writeJSON(w, status, ErrorResponse{
			Error:     fmt.Sprintf("failed to decode request: %v", err),
			RequestID: RequestIDFrom(r.Context()),
		})
		return false
	}
	return true
}

// writeError maps engine errors to status codes: invalid input is 422,
// cancellation 503, anything else 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{Error: err.Error(), RequestID: RequestIDFrom(r.Context())}
	status := http.StatusInternalServerError

	var verr *config.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusUnprocessableEntity
		resp.Field = verr.Field
	case errors.Is(err, config.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	default:
		s.log.WithField("request_id", resp.RequestID).WithError(err).Error("request failed")
	}
	s.writeJSON(w, status, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.WithError(err).Error("failed to encode response")
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
