package http

import (
	"encoding/json"
	"net/http"

	"github.com/bkd-portal/attendance-backend-go/internal/domain/office"
	"github.com/bkd-portal/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OfficeLocationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type officeLocationHandlerImpl struct {
	officeService office.OfficeLocationService
}

func NewOfficeLocationHandler(officeService office.OfficeLocationService) OfficeLocationHandler {
	return &officeLocationHandlerImpl{
		officeService: officeService,
	}
}

// Create implements OfficeLocationHandler.
func (h *officeLocationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req office.CreateOfficeLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.officeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Office location created", result)
}

// Update implements OfficeLocationHandler.
func (h *officeLocationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req office.UpdateOfficeLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.officeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location updated", result)
}

// Get implements OfficeLocationHandler.
func (h *officeLocationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.officeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements OfficeLocationHandler.
func (h *officeLocationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.officeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
