package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"notarynow/internal/notifications/service"
	"notarynow/pkg/config"
	apperrors "notarynow/pkg/errors"
	httputil "notarynow/pkg/http"
	"notarynow/pkg/logger"
	"notarynow/pkg/middleware"
)

// NotificationHandler serves the recipient-scoped inbox. The caller
// identity decides whose notifications are visible; there is no
// cross-recipient read.
type NotificationHandler struct {
	service service.InboxService
	cfg     *config.Config
	log     *logger.Logger
}

func NewNotificationHandler(svc service.InboxService, cfg *config.Config) *NotificationHandler {
	return &NotificationHandler{
		service: svc,
		cfg:     cfg,
		log:     cfg.Log,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, apperrors.InvalidInput(err.Error()))
		return
	}

	inbox, err := h.service.List(r.Context(), middleware.CallerID(r.Context()), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, inbox)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.MarkRead(r.Context(), ps.ByName("id"), middleware.CallerID(r.Context())); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	modified, err := h.service.MarkAllRead(r.Context(), middleware.CallerID(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]int64{"marked_read": modified})
}

func (h *NotificationHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/notifications", h.List)
	router.PATCH("/notifications/:id", h.MarkRead)
	router.PATCH("/notifications", h.MarkAllRead)
}
