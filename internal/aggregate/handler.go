package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"voxintel/backend/features/business"
	"voxintel/backend/internal/middleware"
)

type Aggregator interface {
	Aggregate(ctx context.Context, userID int64, forceRefresh bool) (*View, error)
}

type Handler struct {
	service Aggregator
}

func NewHandler(service Aggregator) *Handler {
	return &Handler{service: service}
}

// Get serves GET /api/aggregate?user_id=...&refresh=true.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "user_id is required", http.StatusBadRequest)
		return
	}
	forceRefresh := r.URL.Query().Get("refresh") == "true"

	view, err := h.service.Aggregate(r.Context(), userID, forceRefresh)
	if err != nil {
		if errors.Is(err, business.ErrProfileNotFound) {
			h.writeError(r.Context(), w, "NOT_FOUND", "Business profile not found", http.StatusNotFound)
			return
		}
		slog.Error("aggregation failed", "user_id", userID, "error", err)
		h.writeError(r.Context(), w, "INTERNAL_ERROR", "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": view}); err != nil {
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
