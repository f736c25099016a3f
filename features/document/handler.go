package document

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

// Process triggers ingestion of every declared source for the user.
// Authentication lives in front of this service; the user id arrives in the
// request body.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64 `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == 0 {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "user_id is required", http.StatusBadRequest)
		return
	}

	processed, failed, err := h.service.ProcessUserDocuments(r.Context(), req.UserID)
	if err != nil {
		slog.Error("document processing run failed", "error", err, "user_id", req.UserID)
		h.writeError(r.Context(), w, "INTERNAL_ERROR", "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"data": map[string]int{"processed": processed, "failed": failed},
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID == 0 {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "user_id is required", http.StatusBadRequest)
		return
	}

	docs, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		h.writeError(r.Context(), w, "INTERNAL_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []Document{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"data": docs,
		"meta": map[string]int{"count": len(docs)},
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
