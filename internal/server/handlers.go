package server

import (
	"encoding/json"
	"net/http"

	"candidate-gateway/internal/common/errors"
	"candidate-gateway/internal/common/validation"
	"candidate-gateway/internal/interest"
)

type validationResponse struct {
	IsValid    bool   `json:"isValid"`
	Message    string `json:"message,omitempty"`
	AccessCode string `json:"accessCode,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type interestResponse struct {
	Message   string `json:"message"`
	Success   bool   `json:"success"`
	Reference string `json:"reference,omitempty"`
}

func (s *Server) handleValidateAccessCode(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, validationResponse{IsValid: false, Message: "Access code is required"})
		return
	}

	if result := validation.ValidateInput(body, validateAccessCodeSchema()); !result.Valid {
		writeJSON(w, http.StatusBadRequest, validationResponse{IsValid: false, Message: "Access code is required"})
		return
	}
	accessCode := body["accessCode"].(string)

	if !s.storeReady {
		s.logger.Error("record store not configured", nil)
		writeJSON(w, http.StatusInternalServerError, validationResponse{IsValid: false, Message: "Server configuration error."})
		return
	}

	if !s.throttle.Allow(r.Context(), clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, validationResponse{IsValid: false, Message: "Too many attempts, slow down"})
		return
	}

	verdict, err := s.campaigns.ValidateAccessCode(r.Context(), accessCode)
	if err != nil {
		s.logger.WithError(err).Error("access code validation failed", nil)
		writeJSON(w, errors.HTTPStatus(err), validationResponse{IsValid: false, Message: "Error validating access code."})
		return
	}

	if !verdict.Valid {
		writeJSON(w, http.StatusUnauthorized, validationResponse{IsValid: false, Message: "Invalid or inactive access code."})
		return
	}
	writeJSON(w, http.StatusOK, validationResponse{IsValid: true, AccessCode: verdict.NormalizedCode})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	accessCode := r.URL.Query().Get("accessCode")
	if accessCode == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Access code is required"})
		return
	}

	if !s.storeReady {
		s.logger.Error("record store not configured", nil)
		writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "Server configuration error. Please contact support."})
		return
	}

	if !s.throttle.Allow(r.Context(), clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, messageResponse{Message: "Too many attempts, slow down"})
		return
	}

	camp, err := s.campaigns.ResolveActive(r.Context(), accessCode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if camp == nil {
		writeJSON(w, http.StatusForbidden, messageResponse{
			Message: "This campaign link has expired or is invalid. Please contact us for assistance.",
		})
		return
	}

	candidates, err := s.candidates.FetchByIDs(r.Context(), camp.CandidateRecordIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("candidates fetched", map[string]interface{}{
		"campaignId": camp.ID,
		"count":      len(candidates),
	})
	writeJSON(w, http.StatusOK, candidates)
}

func (s *Server) handleExpressInterest(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, interestResponse{Message: "Missing required fields", Success: false})
		return
	}

	if result := validation.ValidateInput(body, expressInterestSchema()); !result.Valid {
		s.logger.Debug("interest submission rejected", map[string]interface{}{
			"reason": result.FirstError(),
		})
		writeJSON(w, http.StatusBadRequest, interestResponse{Message: "Missing required fields", Success: false})
		return
	}

	candidateID := stringField(body, "candidateId")
	client := interest.ClientData{
		Name:         stringField(body, "clientName"),
		Organization: stringField(body, "organization"),
		Email:        stringField(body, "email"),
		Phone:        stringField(body, "phone"),
		Notes:        stringField(body, "notes"),
	}

	receipt, err := s.interest.Submit(r.Context(), candidateID, client)
	if err != nil {
		s.logger.WithError(err).Error("interest submission failed", map[string]interface{}{
			"candidateId": candidateID,
			"logged":      receipt != nil && receipt.LogOutcome.Logged,
		})
		writeJSON(w, errors.HTTPStatus(err), interestResponse{
			Message: "Failed to process interest expression",
			Success: false,
		})
		return
	}

	if !receipt.LogOutcome.Logged {
		s.logger.Warn("interest logged to store failed, notification delivered", map[string]interface{}{
			"candidateId": candidateID,
		})
	}
	writeJSON(w, http.StatusOK, interestResponse{
		Message:   "Interest expression submitted successfully",
		Success:   true,
		Reference: receipt.Reference,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError logs full detail server-side and sends the client-safe
// message only.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.logger.WithError(err).Error("request failed", nil)
	writeJSON(w, errors.HTTPStatus(err), messageResponse{Message: errors.ClientMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func stringField(body map[string]interface{}, key string) string {
	if s, ok := body[key].(string); ok {
		return s
	}
	return ""
}
