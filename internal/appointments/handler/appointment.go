package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"notarynow/internal/appointments/service"
	"notarynow/pkg/config"
	apperrors "notarynow/pkg/errors"
	httputil "notarynow/pkg/http"
	"notarynow/pkg/logger"
	"notarynow/pkg/middleware"
	"notarynow/pkg/model"
)

type AppointmentHandler struct {
	service service.AppointmentService
	log     *logger.Logger
}

func NewAppointmentHandler(svc service.AppointmentService, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: svc,
		log:     log,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	callerID := middleware.CallerID(r.Context())
	role := middleware.CallerRole(r.Context())

	appt, err := h.service.Create(r.Context(), &req, callerID, role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, appt)
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	callerID := middleware.CallerID(r.Context())
	role := middleware.CallerRole(r.Context())

	appt, err := h.service.GetByID(r.Context(), id, callerID, role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, appt)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	status := config.AppointmentStatus(r.URL.Query().Get("status"))
	callerID := middleware.CallerID(r.Context())
	role := middleware.CallerRole(r.Context())

	appointments, count, err := h.service.List(r.Context(), callerID, role, status, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, appointments, count, limit, int(offset))
}

type transitionRequest struct {
	Status config.AppointmentStatus `json:"status"`
}

func (h *AppointmentHandler) Transition(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	callerID := middleware.CallerID(r.Context())
	role := middleware.CallerRole(r.Context())

	appt, err := h.service.Transition(r.Context(), id, req.Status, callerID, role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, appt)
}

func (h *AppointmentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/appointments", h.Create)
	router.GET("/appointments", h.List)
	router.GET("/appointments/:id", h.GetByID)
	router.PATCH("/appointments/:id/status", h.Transition)
}
