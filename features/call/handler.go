package call

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"voxintel/backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create accepts the payload the voice agent posts after a completed call.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        int64  `json:"userId"`
		PhoneNumber   string `json:"phoneNumber"`
		ContactName   string `json:"contactName"`
		Duration      int    `json:"duration"`
		Status        string `json:"status"`
		Summary       string `json:"summary"`
		Notes         string `json:"notes"`
		Transcript    string `json:"transcript"`
		Direction     string `json:"direction"`
		TwilioCallSid string `json:"twilioCallSid"`
		RecordingURL  string `json:"recordingUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == 0 {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "userId is required", http.StatusBadRequest)
		return
	}
	if req.PhoneNumber == "" {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "phoneNumber is required", http.StatusBadRequest)
		return
	}

	c := &Call{
		UserID:          req.UserID,
		PhoneNumber:     req.PhoneNumber,
		ContactName:     req.ContactName,
		DurationSeconds: req.Duration,
		Status:          req.Status,
		Summary:         req.Summary,
		Notes:           req.Notes,
		Transcript:      req.Transcript,
		Direction:       req.Direction,
		TwilioCallSID:   req.TwilioCallSid,
		RecordingURL:    req.RecordingURL,
	}
	if err := h.service.LogCall(r.Context(), c); err != nil {
		slog.Error("failed to log call", "error", err, "user_id", req.UserID)
		h.writeError(r.Context(), w, "INTERNAL_ERROR", "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": c}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID == 0 {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "user_id is required", http.StatusBadRequest)
		return
	}

	limit := 25
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	calls, err := h.service.Recent(r.Context(), userID, limit)
	if err != nil {
		h.writeError(r.Context(), w, "INTERNAL_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	if calls == nil {
		calls = []Call{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"data": calls,
		"meta": map[string]int{"count": len(calls)},
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
