package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"notarynow/internal/reports/service"
	"notarynow/pkg/config"
	httputil "notarynow/pkg/http"
	"notarynow/pkg/logger"
	"notarynow/pkg/middleware"
	"notarynow/pkg/model"
)

type ReportHandler struct {
	service service.ReportService
	cfg     *config.Config
	log     *logger.Logger
}

func NewReportHandler(svc service.ReportService, cfg *config.Config) *ReportHandler {
	return &ReportHandler{
		service: svc,
		cfg:     cfg,
		log:     cfg.Log,
	}
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	period := model.ReportPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = model.PeriodMonth
	}

	callerID := middleware.CallerID(r.Context())
	role := middleware.CallerRole(r.Context())

	report, err := h.service.Aggregate(r.Context(), ps.ByName("id"), period, callerID, role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, report)
}

func (h *ReportHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/providers/:id/reports", h.GetReport)
}
