package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/portfolio/backend/internal/contact"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

const (
	maxMessageLength = 5000
	maxBodyBytes     = 64 << 10
)

// ContactHandler serves the contact form, the inbox sink and the admin inbox.
type ContactHandler struct {
	pipeline       *contact.Pipeline
	contactService service.ContactService // nil when the inbox is disabled
}

// NewContactHandler creates a ContactHandler. contactService may be nil.
func NewContactHandler(pipeline *contact.Pipeline, contactService service.ContactService) *ContactHandler {
	return &ContactHandler{pipeline: pipeline, contactService: contactService}
}

type submitRequest struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (req submitRequest) submission() model.ContactSubmission {
	return model.ContactSubmission{Name: req.Name, Email: req.Email, Message: req.Message}
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type deliveredResponse struct {
	OK           bool                 `json:"ok"`
	Notification contact.Notification `json:"notification"`
}

type deliveryFailedResponse struct {
	Error        string                  `json:"error"`
	Notification contact.Notification    `json:"notification"`
	Form         model.ContactSubmission `json:"form"`
}

func decodeSubmit(w http.ResponseWriter, r *http.Request) (submitRequest, bool) {
	var req submitRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return req, false
	}
	if len([]rune(req.Message)) > maxMessageLength {
		writeError(w, http.StatusBadRequest, "message_too_long")
		return req, false
	}
	return req, true
}

// Submit handles POST /api/contact: validate, then one delivery attempt to the
// configured endpoint. On failure the submitted values are echoed back so the
// client can keep them in the form.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSubmit(w, r)
	if !ok {
		return
	}

	form := h.pipeline.NewForm(nil)
	form.SetValues(req.submission())
	res := form.Submit(r.Context())

	switch res.Outcome {
	case contact.OutcomeDelivered:
		writeJSON(w, http.StatusOK, deliveredResponse{OK: true, Notification: *res.Notification})
	case contact.OutcomeInvalid:
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  "validation_failed",
			Fields: res.Errors.Fields(),
		})
	case contact.OutcomeFailed:
		slog.Warn("contact delivery failed", "request_id", RequestIDFromContext(r.Context()), "error", res.Err)
		writeJSON(w, http.StatusBadGateway, deliveryFailedResponse{
			Error:        "delivery_failed",
			Notification: *res.Notification,
			Form:         form.Values(),
		})
	default:
		writeError(w, http.StatusConflict, "submission_in_progress")
	}
}

// Inbox handles POST /api/inbox: the same validation as the contact form, then
// the message is stored as unread.
func (h *ContactHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSubmit(w, r)
	if !ok {
		return
	}

	if errs := h.pipeline.Validator().Validate(req.submission()); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Error:  "validation_failed",
			Fields: errs.Fields(),
		})
		return
	}

	msg := &model.ContactMessage{
		Email:   req.Email,
		Name:    req.Name,
		Message: req.Message,
	}
	if err := h.contactService.Submit(r.Context(), msg); err != nil {
		slog.Error("failed to store contact message", "error", err)
		writeError(w, http.StatusInternalServerError, "submit_failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": msg.ID})
}

// adminListResponse is the JSON response for GET /api/admin/contacts.
type adminListResponse struct {
	Messages []*model.ContactMessage `json:"messages"`
}

// AdminList handles GET /api/admin/contacts (admin only).
// Supports query params: status (all/unread/read), limit, offset.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	opts := model.ContactListOptions{
		Status: r.URL.Query().Get("status"),
		Limit:  20,
	}
	switch opts.Status {
	case "", "all", model.ContactStatusUnread, model.ContactStatusRead:
	default:
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	messages, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		slog.Error("failed to list contact messages", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if messages == nil {
		messages = []*model.ContactMessage{}
	}

	writeJSON(w, http.StatusOK, adminListResponse{Messages: messages})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/contacts/{id}/status (admin only).
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	err := h.contactService.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
	case errors.Is(err, service.ErrInvalidContactStatus):
		writeError(w, http.StatusBadRequest, "invalid_status")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		slog.Error("failed to update contact status", "error", err)
		writeError(w, http.StatusInternalServerError, "update_failed")
	}
}
