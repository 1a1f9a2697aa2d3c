package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"notarynow/internal/availability/service"
	"notarynow/pkg/config"
	apperrors "notarynow/pkg/errors"
	httputil "notarynow/pkg/http"
	"notarynow/pkg/logger"
	"notarynow/pkg/middleware"
	"notarynow/pkg/model"
)

const dateLayout = "2006-01-02"

type AvailabilityHandler struct {
	service service.AvailabilityService
	cfg     *config.Config
	log     *logger.Logger
}

func NewAvailabilityHandler(svc service.AvailabilityService, cfg *config.Config) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: svc,
		cfg:     cfg,
		log:     cfg.Log,
	}
}

func (h *AvailabilityHandler) GetTemplate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	providerID := ps.ByName("id")

	tmpl, err := h.service.GetTemplate(r.Context(), providerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, tmpl)
}

func (h *AvailabilityHandler) ReplaceTemplate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	providerID := ps.ByName("id")

	var tmpl model.WeeklyTemplate
	if err := json.NewDecoder(r.Body).Decode(&tmpl); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	callerID := middleware.CallerID(r.Context())
	role := middleware.CallerRole(r.Context())

	if err := h.service.ReplaceTemplate(r.Context(), providerID, &tmpl, callerID, role); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, tmpl)
}

func (h *AvailabilityHandler) GetFreeSlots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	providerID := ps.ByName("id")
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		httputil.WriteError(w, apperrors.InvalidInput("date query parameter is required (YYYY-MM-DD)"))
		return
	}

	loc := h.cfg.Location()
	date, err := time.ParseInLocation(dateLayout, dateStr, loc)
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid date format, expected YYYY-MM-DD"))
		return
	}

	var slots []model.FreeWindow
	if toStr := query.Get("to"); toStr != "" {
		to, err := time.ParseInLocation(dateLayout, toStr, loc)
		if err != nil {
			httputil.WriteError(w, apperrors.InvalidInput("Invalid to date format, expected YYYY-MM-DD"))
			return
		}
		slots, err = h.service.FreeSlotsRange(r.Context(), providerID, date, to)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
	} else {
		slots, err = h.service.FreeSlots(r.Context(), providerID, date)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	httputil.WriteSuccess(w, slots)
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/providers/:id/availability", h.GetTemplate)
	router.PUT("/providers/:id/availability", h.ReplaceTemplate)
	router.GET("/providers/:id/slots", h.GetFreeSlots)
}
