package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/heartmarshall/info-backend/internal/domain"
	"github.com/heartmarshall/info-backend/internal/service/record"
)

// recordService defines the minimal interface needed by RecordHandler.
type recordService interface {
	CreateRecord(ctx context.Context, input record.CreateRecordInput) (*domain.Record, error)
	ListRecords(ctx context.Context, input record.ListRecordsInput) ([]*domain.Record, error)
	GetRecord(ctx context.Context, id string) (*domain.Record, error)
	ReplaceRecord(ctx context.Context, input record.ReplaceRecordInput) (*domain.Record, error)
	PatchRecord(ctx context.Context, input record.PatchRecordInput) (*domain.Record, error)
	DeleteRecord(ctx context.Context, id string) (uuid.UUID, error)
}

// Client-facing error labels.
const (
	msgInvalidData    = "Invalid data"
	msgInvalidRequest = "Invalid request"
	msgInvalidID      = "Invalid id"
	msgNotFound       = "Not found"
	msgInternal       = "Internal Server Error"
)

// RecordHandler serves the /info endpoints.
type RecordHandler struct {
	svc          recordService
	log          *slog.Logger
	maxBodyBytes int64
}

// NewRecordHandler creates a RecordHandler. Bodies larger than maxBodyBytes
// are rejected with 400.
func NewRecordHandler(svc recordService, logger *slog.Logger, maxBodyBytes int64) *RecordHandler {
	return &RecordHandler{
		svc:          svc,
		log:          logger.With("handler", "record"),
		maxBodyBytes: maxBodyBytes,
	}
}

type recordResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type deleteResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// Create handles POST /info.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	members, ok := h.readObject(w, r, msgInvalidData)
	if !ok {
		return
	}

	rec, err := h.svc.CreateRecord(r.Context(), record.CreateRecordInput{
		Name: members["name"],
		Age:  members["age"],
	})
	if err != nil {
		h.handleError(w, r, err, msgInvalidData)
		return
	}

	writeJSON(w, http.StatusCreated, toRecordResponse(rec))
}

// List handles GET /info?search=.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListRecords(r.Context(), record.ListRecordsInput{
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		h.handleError(w, r, err, msgInvalidRequest)
		return
	}

	resp := make([]recordResponse, len(records))
	for i, rec := range records {
		resp[i] = toRecordResponse(rec)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /info/{id}.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.GetRecord(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err, msgInvalidRequest)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Replace handles PUT /info/{id}.
func (h *RecordHandler) Replace(w http.ResponseWriter, r *http.Request) {
	members, ok := h.readObject(w, r, msgInvalidRequest)
	if !ok {
		return
	}

	rec, err := h.svc.ReplaceRecord(r.Context(), record.ReplaceRecordInput{
		ID:   r.PathValue("id"),
		Name: members["name"],
		Age:  members["age"],
	})
	if err != nil {
		h.handleError(w, r, err, msgInvalidRequest)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Patch handles PATCH /info/{id}.
func (h *RecordHandler) Patch(w http.ResponseWriter, r *http.Request) {
	members, ok := h.readObject(w, r, msgInvalidRequest)
	if !ok {
		return
	}

	rec, err := h.svc.PatchRecord(r.Context(), record.PatchRecordInput{
		ID:     r.PathValue("id"),
		Fields: members,
	})
	if err != nil {
		h.handleError(w, r, err, msgInvalidRequest)
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(rec))
}

// Delete handles DELETE /info/{id}.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.svc.DeleteRecord(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, r, err, msgInvalidRequest)
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{OK: true, ID: id.String()})
}

// readObject reads a size-limited body that must be a single JSON object
// and returns its top-level members. A repeated key keeps its last value.
// On failure it writes a 400 with invalidMsg and returns false.
func (h *RecordHandler) readObject(w http.ResponseWriter, r *http.Request, invalidMsg string) (map[string]gjson.Result, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorDetails(w, http.StatusBadRequest, invalidMsg, "request body too large")
			return nil, false
		}
		writeErrorDetails(w, http.StatusBadRequest, invalidMsg, "could not read request body")
		return nil, false
	}

	if !gjson.ValidBytes(raw) {
		writeErrorDetails(w, http.StatusBadRequest, invalidMsg, "malformed JSON")
		return nil, false
	}
	body := gjson.ParseBytes(raw)
	if !body.IsObject() {
		writeErrorDetails(w, http.StatusBadRequest, invalidMsg, "request body must be a JSON object")
		return nil, false
	}

	members := make(map[string]gjson.Result)
	body.ForEach(func(key, value gjson.Result) bool {
		members[key.String()] = value
		return true
	})
	return members, true
}

// handleError maps a classified error to a status and body.
// invalidMsg labels validation failures for the calling endpoint.
func (h *RecordHandler) handleError(w http.ResponseWriter, r *http.Request, err error, invalidMsg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, msgInvalidID)
	case errors.Is(err, domain.ErrValidation):
		details := err.Error()
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			details = ve.Details()
		}
		writeErrorDetails(w, http.StatusBadRequest, invalidMsg, details)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	default:
		h.log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.Bool("store_unavailable", errors.Is(err, domain.ErrStoreUnavailable)),
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func toRecordResponse(rec *domain.Record) recordResponse {
	return recordResponse{
		ID:        rec.ID.String(),
		Name:      rec.Name,
		Age:       rec.Age,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
