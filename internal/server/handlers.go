package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/agbru/fibscroll/internal/logging"
	"github.com/agbru/fibscroll/internal/sequence"
)

type valueResponse struct {
	Index int   `json:"index"`
	Value int64 `json:"value"`
}

type sequenceResponse struct {
	From     int     `json:"from"`
	Values   []int64 `json:"values"`
	Overflow bool    `json:"overflow"`
}

type statsResponse struct {
	sequence.Stats
	MaxIndex int `json:"max_index"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Index    *int   `json:"index,omitempty"`
	MaxIndex *int   `json:"max_index,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// allowGET rejects any method other than GET with 405.
func (s *Server) allowGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	s.writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not supported")
	return false
}

// writeLookupError maps a ValueAt error to a response.
func (s *Server) writeLookupError(w http.ResponseWriter, index int, err error) {
	switch {
	case errors.Is(err, sequence.ErrOverflow):
		maxIndex := sequence.MaxIndex
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:    "overflow",
			Index:    &index,
			MaxIndex: &maxIndex,
		})
	case errors.Is(err, sequence.ErrNegativeIndex):
		s.writeError(w, http.StatusBadRequest, "invalid_index", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.writeError(w, http.StatusGatewayTimeout, "timeout", "lookup did not finish in time")
	case errors.Is(err, sequence.ErrClosed), errors.Is(err, context.Canceled):
		s.writeError(w, http.StatusServiceUnavailable, "unavailable", "generator is shutting down")
	default:
		s.logger.Error("lookup failed", err, logging.Int("index", index))
		s.writeError(w, http.StatusInternalServerError, "internal", "lookup failed")
	}
}

// intParam parses a non-negative integer query parameter, returning def
// when it is absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return v, nil
}

func (s *Server) lookupContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.config.RequestTimeout > 0 {
		return context.WithTimeout(r.Context(), s.config.RequestTimeout)
	}
	return context.WithCancel(r.Context())
}

// handleFib serves GET /v1/fib?n=<index>.
func (s *Server) handleFib(w http.ResponseWriter, r *http.Request) {
	if !s.allowGET(w, r) {
		return
	}
	if !r.URL.Query().Has("n") {
		s.writeError(w, http.StatusBadRequest, "invalid_index", "n is required")
		return
	}
	n, err := intParam(r, "n", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_index", err.Error())
		return
	}

	ctx, cancel := s.lookupContext(r)
	defer cancel()
	v, err := s.source.ValueAt(ctx, n)
	if err != nil {
		s.writeLookupError(w, n, err)
		return
	}
	s.writeJSON(w, http.StatusOK, valueResponse{Index: n, Value: v})
}

// handleSequence serves GET /v1/sequence?from=<index>&count=<c>. Values stop
// before the first index that overflows.
func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	if !s.allowGET(w, r) {
		return
	}
	from, err := intParam(r, "from", 0)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}
	count, err := intParam(r, "count", 20)
	if err != nil || count < 1 || count > s.config.Security.MaxSequenceCount {
		s.writeError(w, http.StatusBadRequest, "invalid_parameter",
			"count must be between 1 and "+strconv.Itoa(s.config.Security.MaxSequenceCount))
		return
	}

	ctx, cancel := s.lookupContext(r)
	defer cancel()

	resp := sequenceResponse{From: from, Values: make([]int64, 0, count)}
	for k := 0; k < count; k++ {
		i := from + k
		v, err := s.source.ValueAt(ctx, i)
		if errors.Is(err, sequence.ErrOverflow) {
			resp.Overflow = true
			break
		}
		if err != nil {
			s.writeLookupError(w, i, err)
			return
		}
		resp.Values = append(resp.Values, v)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleStats serves GET /v1/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.allowGET(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, statsResponse{Stats: s.source.Stats(), MaxIndex: sequence.MaxIndex})
}

// handleHealth serves GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.allowGET(w, r) {
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
