package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/revue-dev/revue/internal/extract"
	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/report"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Review ---

// reviewRequest carries one unit to review. Clients either submit a
// pre-extracted fact object or inline source to extract on the server.
type reviewRequest struct {
	Facts  json.RawMessage `json:"facts,omitempty"`
	Path   string          `json:"path,omitempty"`
	Source string          `json:"source,omitempty"`
}

// factSet builds the fact set to review. Submitted facts win over inline
// source.
func (rq reviewRequest) factSet() (*fact.Set, string, error) {
	switch {
	case len(rq.Facts) > 0:
		set, err := fact.FromJSON(rq.Facts)
		if err != nil {
			return nil, "", fmt.Errorf("invalid facts: %w", err)
		}
		unit := rq.Path
		if unit == "" {
			unit, _ = set.String(fact.FilePath)
		}
		return set, unit, nil
	case rq.Source != "":
		if rq.Path == "" {
			return nil, "", errors.New("path is required with source")
		}
		return extract.FromSource(rq.Path, rq.Source), rq.Path, nil
	default:
		return nil, "", errors.New("facts or source is required")
	}
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	facts, unit, err := req.factSet()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.engine.Evaluate(r.Context(), facts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "evaluating: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report.Aggregate(unit, res.Findings, res.Errors))
}

// --- Rules ---

type rulesResponse struct {
	Count int        `json:"count"`
	Rules []ruleJSON `json:"rules"`
}

type ruleJSON struct {
	ID        string `json:"id"`
	Dimension string `json:"dimension"`
	Severity  string `json:"severity"`
	Enabled   bool   `json:"enabled"`
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	rules := s.registry.Rules()
	resp := rulesResponse{Count: len(rules)}
	for _, rl := range rules {
		resp.Rules = append(resp.Rules, ruleJSON{
			ID:        rl.ID,
			Dimension: rl.Dimension.String(),
			Severity:  rl.Severity.String(),
			Enabled:   s.registry.Enabled(rl.Dimension),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
