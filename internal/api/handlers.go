package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fairpitch/matchcore/internal/engine"
	"github.com/fairpitch/matchcore/internal/store"
	"github.com/fairpitch/matchcore/internal/suspension"
	"github.com/fairpitch/matchcore/internal/validate"
)

// ValidateRequest carries a completed match for scoring. Stats and history
// are optional; when history is omitted and a database is configured, the
// server pulls the player's prior matches itself.
type ValidateRequest struct {
	Record  validate.MatchRecord   `json:"record"`
	Stats   *validate.MatchStats   `json:"stats,omitempty"`
	History []validate.MatchRecord `json:"history,omitempty"`
}

// ValidateResponse is the scored result plus its rendered report.
type ValidateResponse struct {
	Result validate.ValidationResult `json:"result"`
	Report string                    `json:"report"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Record.MatchID == "" {
		s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, "record.match_id is required")
		return
	}

	history := req.History
	if history == nil && s.db != nil && req.Record.PlayerID != "" {
		var err error
		history, err = s.db.PlayerHistory(req.Record.PlayerID, 50)
		if err != nil {
			// History is optional input; validation degrades instead of failing.
			s.logger.Printf("history lookup for %s failed: %v", req.Record.PlayerID, err)
			history = nil
		}
	}

	result := s.validator.Validate(req.Record, req.Stats, history)

	if s.db != nil {
		if err := s.db.SaveMatchRecord(req.Record); err != nil {
			s.logger.Printf("archive match %s failed: %v", req.Record.MatchID, err)
		}
	}
	s.publisher.PublishValidation(r.Context(), req.Record.MatchID, result)

	s.writeJSON(w, http.StatusOK, ValidateResponse{
		Result: result,
		Report: validate.GenerateReport(req.Record, result),
	})
}

// ReplayHashRequest anchors a decision-log hash for later verification.
type ReplayHashRequest struct {
	MatchID string `json:"match_id"`
	Hash    string `json:"hash"`
}

func (s *Server) handleRecordReplayHash(w http.ResponseWriter, r *http.Request) {
	var req ReplayHashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.MatchID == "" || req.Hash == "" {
		s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, "match_id and hash are required")
		return
	}
	if s.db == nil {
		s.writeError(w, r, http.StatusConflict, errTypeConflict, "no database configured for hash anchoring")
		return
	}

	if err := s.db.SaveReplayHash(req.MatchID, req.Hash); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, errTypeInternal, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"match_id": req.MatchID, "hash": req.Hash})
}

// VerifyReplayRequest compares a recomputed hash against the recorded one.
// RecordedHash may be omitted when a database holds the anchor.
type VerifyReplayRequest struct {
	MatchID      string `json:"match_id"`
	RecordedHash string `json:"recorded_hash,omitempty"`
	ComputedHash string `json:"computed_hash"`
}

func (s *Server) handleVerifyReplay(w http.ResponseWriter, r *http.Request) {
	var req VerifyReplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ComputedHash == "" {
		s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, "computed_hash is required")
		return
	}

	recorded := req.RecordedHash
	if recorded == "" {
		if s.db == nil || req.MatchID == "" {
			s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, "recorded_hash or match_id with a configured database is required")
			return
		}
		var err error
		recorded, err = s.db.GetReplayHash(req.MatchID)
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, errTypeNotFound, "no recorded hash for match "+req.MatchID)
			return
		}
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, errTypeInternal, err.Error())
			return
		}
	}

	// A mismatch is a verification result, not an API error.
	s.writeJSON(w, http.StatusOK, engine.VerifyReplay(recorded, req.ComputedHash))
}

func (s *Server) handleEligibility(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	matchID := r.URL.Query().Get("match_id")
	if matchID == "" {
		s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, "match_id query parameter is required")
		return
	}

	s.writeJSON(w, http.StatusOK, s.suspensions.CanParticipate(playerID, matchID))
}

// AppealRequest opens an appeal against a suspension.
type AppealRequest struct {
	EvidenceRef string `json:"evidence_ref"`
}

func (s *Server) handleSubmitAppeal(w http.ResponseWriter, r *http.Request) {
	suspensionID := chi.URLParam(r, "suspensionID")

	var req AppealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, "invalid request body: "+err.Error())
		return
	}

	err := s.suspensions.SubmitAppeal(suspensionID, req.EvidenceRef)
	switch {
	case errors.Is(err, suspension.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, errTypeNotFound, err.Error())
		return
	case errors.Is(err, suspension.ErrAppealAlreadySubmitted),
		errors.Is(err, suspension.ErrAppealDeadlinePassed):
		s.writeError(w, r, http.StatusConflict, errTypeConflict, err.Error())
		return
	case err != nil:
		s.writeError(w, r, http.StatusInternalServerError, errTypeInternal, err.Error())
		return
	}

	sus, err := s.suspensions.Get(suspensionID)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, errTypeInternal, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, sus)
}

// ResolveRequest carries the external judging verdict.
type ResolveRequest struct {
	Verdict suspension.AppealVerdict `json:"verdict"`
}

func (s *Server) handleResolveAppeal(w http.ResponseWriter, r *http.Request) {
	suspensionID := chi.URLParam(r, "suspensionID")

	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, "invalid request body: "+err.Error())
		return
	}

	err := s.suspensions.ResolveAppeal(suspensionID, req.Verdict)
	switch {
	case errors.Is(err, suspension.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, errTypeNotFound, err.Error())
		return
	case errors.Is(err, suspension.ErrAppealNotPending):
		s.writeError(w, r, http.StatusConflict, errTypeConflict, err.Error())
		return
	case err != nil:
		s.writeError(w, r, http.StatusBadRequest, errTypeBadRequest, err.Error())
		return
	}

	sus, err := s.suspensions.Get(suspensionID)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, errTypeInternal, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, sus)
}
