package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"notarynow/internal/catalog/service"
	"notarynow/pkg/config"
	apperrors "notarynow/pkg/errors"
	httputil "notarynow/pkg/http"
	"notarynow/pkg/logger"
	"notarynow/pkg/middleware"
	"notarynow/pkg/model"
)

type CatalogHandler struct {
	service service.CatalogService
	cfg     *config.Config
	log     *logger.Logger
}

func NewCatalogHandler(svc service.CatalogService, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		cfg:     cfg,
		log:     cfg.Log,
	}
}

func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var svc model.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
		return
	}

	role := middleware.CallerRole(r.Context())
	if err := h.service.CreateService(r.Context(), &svc, role); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, svc)
}

func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	svc, err := h.service.GetService(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, svc)
}

func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	services, totalCount, err := h.service.ListServices(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, services, totalCount, limit, int(offset))
}

type offeringRequest struct {
	CustomPrice *float64 `json:"custom_price,omitempty"`
}

func (h *CatalogHandler) AddOffering(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req offeringRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteError(w, apperrors.InvalidInput("Invalid request body"))
			return
		}
	}

	callerID := middleware.CallerID(r.Context())
	role := middleware.CallerRole(r.Context())

	offering, err := h.service.AddOffering(r.Context(), ps.ByName("id"), ps.ByName("serviceId"), req.CustomPrice, callerID, role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, offering)
}

func (h *CatalogHandler) RemoveOffering(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	callerID := middleware.CallerID(r.Context())
	role := middleware.CallerRole(r.Context())

	if err := h.service.RemoveOffering(r.Context(), ps.ByName("id"), ps.ByName("serviceId"), callerID, role); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CatalogHandler) ListOfferings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	offerings, err := h.service.ListOfferings(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, offerings)
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/services", h.CreateService)
	router.GET("/services", h.ListServices)
	router.GET("/services/:id", h.GetService)

	router.GET("/providers/:id/offerings", h.ListOfferings)
	router.PUT("/providers/:id/offerings/:serviceId", h.AddOffering)
	router.DELETE("/providers/:id/offerings/:serviceId", h.RemoveOffering)
}
