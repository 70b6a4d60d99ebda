package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"

	"github.com/Chative-flight-booking/server/internal/agent/extraction"
	"github.com/Chative-flight-booking/server/internal/agent/model"
	"github.com/Chative-flight-booking/server/internal/agent/orchestrator"
	"github.com/Chative-flight-booking/server/internal/agent/slots"
	errx "github.com/Chative-flight-booking/server/internal/core/error"
	"github.com/Chative-flight-booking/server/internal/safety"
	logx "github.com/Chative-flight-booking/server/pkg/logger"
)

const maxBodyBytes = 64 << 10

// ChatService is the turn-level API the handlers drive.
type ChatService interface {
	Handle(ctx context.Context, userID string, message string) (*model.ChatResponse, error)
	Slots(userID string) model.Slots
	Reset(ctx context.Context, userID string) error
	Book(ctx context.Context, userID string) (model.BookingResult, error)
}

type Handler struct {
	svc ChatService
}

func NewHandler(svc ChatService) *Handler {
	return &Handler{svc: svc}
}

type errorBody struct {
	Error  string   `json:"error"`
	Kind   string   `json:"kind,omitempty"`
	Field  string   `json:"field,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

type bookRequest struct {
	UserID string `json:"user_id"`
}

type slotsResponse struct {
	UserID       string           `json:"user_id"`
	Slots        model.Slots      `json:"slots"`
	MissingSlots []model.SlotName `json:"missing_slots"`
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json"})
		return
	}
	if req.UserID == "" || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Missing required fields: user_id and message"})
		return
	}

	resp, err := h.svc.Handle(r.Context(), req.UserID, req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json"})
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Missing required field: user_id"})
		return
	}

	res, err := h.svc.Book(r.Context(), req.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) ClearConversation(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if err := h.svc.Reset(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	s := h.svc.Slots(userID)
	writeJSON(w, http.StatusOK, slotsResponse{
		UserID:       userID,
		Slots:        s,
		MissingSlots: slots.MissingFor(s, model.IntentBookFlight),
	})
}

// writeError maps a turn error to a status code and a safe body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		inputErr     *safety.InputError
		extractErr   *extraction.Error
		guardrailErr *orchestrator.GuardrailError
	)
	switch {
	case errors.As(err, &inputErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: inputErr.Reason})
	case errors.As(err, &guardrailErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "Booking validation failed", Errors: guardrailErr.Violations})
	case errors.As(err, &extractErr):
		// The full error echoes model output; it stays in the log.
		logx.Error().Err(err).Str("path", r.URL.Path).Str("kind", string(extractErr.Kind)).Msg("extraction failed")
		writeJSON(w, http.StatusBadGateway, errorBody{
			Error: errx.ExtractorErrorMessage,
			Kind:  string(extractErr.Kind),
			Field: extractErr.Field,
		})
	default:
		status := errx.StatusOf(err)
		logx.Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request failed")
		writeJSON(w, status, errorBody{Error: errx.MessageOf(err)})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return sonic.ConfigDefault.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := sonic.Marshal(v)
	if err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
		http.Error(w, errx.SystemErrorMessage, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
