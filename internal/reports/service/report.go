package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"notarynow/internal/reports/repository"
	"notarynow/pkg/config"
	mongotx "notarynow/pkg/db/mongo"
	apperrors "notarynow/pkg/errors"
	"notarynow/pkg/model"
)

const topServiceCount = 5

type ReportService interface {
	Aggregate(ctx context.Context, providerID string, period model.ReportPeriod, callerID string, role config.Role) (*model.Report, error)
}

type reportService struct {
	reader repository.ReportReader
	cfg    *config.Config
	now    func() time.Time
}

func NewReportService(reader repository.ReportReader, cfg *config.Config) ReportService {
	return &reportService{
		reader: reader,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Aggregate folds the provider's appointment history over the period into
// revenue, volume and service-breakdown figures. Only the provider may see
// their own report.
func (s *reportService) Aggregate(ctx context.Context, providerID string, period model.ReportPeriod, callerID string, role config.Role) (*model.Report, error) {
	if role != config.RoleNotary || callerID != providerID {
		return nil, apperrors.Forbidden("Only the notary may view their own reports")
	}

	now := s.now().In(s.cfg.Location())
	start, err := periodStart(period, now)
	if err != nil {
		return nil, err
	}

	appointments, err := s.reader.FindForReport(ctx, providerID, start, now)
	if err != nil {
		s.cfg.Log.Error("Failed to fetch report appointments",
			"provider_id", providerID,
			"period", period,
			"error", err,
		)
		return nil, mongotx.StoreError("Failed to build report", err)
	}

	report := &model.Report{
		Period: period,
		DateRange: model.DateRange{
			From: start,
			To:   now,
		},
	}

	report.Summary = s.summarize(ctx, providerID, appointments, now)
	report.ChartData = bucketize(appointments, period)
	report.TopServices = s.topServices(ctx, appointments)

	return report, nil
}

func (s *reportService) summarize(ctx context.Context, providerID string, appointments []*model.Appointment, now time.Time) model.ReportSummary {
	var summary model.ReportSummary

	summary.TotalAppointments = len(appointments)
	for _, appt := range appointments {
		switch appt.Status {
		case config.Completed:
			summary.CompletedAppointments++
			summary.TotalRevenue += appt.TotalCost
		case config.Pending:
			summary.PendingAppointments++
		case config.Confirmed:
			summary.ConfirmedAppointments++
		}
	}

	if summary.CompletedAppointments > 0 {
		summary.AverageRevenue = math.Round(summary.TotalRevenue / float64(summary.CompletedAppointments))
	}
	if summary.TotalAppointments > 0 {
		rate := float64(summary.CompletedAppointments) / float64(summary.TotalAppointments) * 100
		summary.CompletionRate = round2(rate)
	}

	summary.RevenueGrowth = s.revenueGrowth(ctx, providerID, summary.TotalRevenue, now)
	return summary
}

// revenueGrowth compares this period's COMPLETED revenue against the
// previous calendar month. Zero when the previous month had no revenue or
// the read fails; growth is decoration, not a reason to fail the report.
func (s *reportService) revenueGrowth(ctx context.Context, providerID string, currentRevenue float64, now time.Time) float64 {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := monthStart.AddDate(0, -1, 0)

	prevRevenue, err := s.reader.CompletedRevenue(ctx, providerID, prevStart, monthStart)
	if err != nil {
		s.cfg.Log.Warn("Failed to fetch previous month revenue",
			"provider_id", providerID,
			"error", err,
		)
		return 0
	}
	if prevRevenue <= 0 {
		return 0
	}

	return round2((currentRevenue - prevRevenue) / prevRevenue * 100)
}

// bucketize groups appointments into chart sub-periods in chronological
// order of first appearance. Only COMPLETED appointments contribute
// revenue.
func bucketize(appointments []*model.Appointment, period model.ReportPeriod) []model.ChartBucket {
	buckets := []model.ChartBucket{}
	index := map[string]int{}

	for _, appt := range appointments {
		label := bucketLabel(appt.ScheduledTime, period)

		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, model.ChartBucket{Period: label})
		}

		buckets[i].Appointments++
		if appt.Status == config.Completed {
			buckets[i].Revenue += appt.TotalCost
			buckets[i].Completed++
		}
	}

	return buckets
}

func bucketLabel(t time.Time, period model.ReportPeriod) string {
	switch period {
	case model.PeriodWeek:
		return t.Format("Mon")
	case model.PeriodMonth:
		return fmt.Sprintf("%02d", t.Day())
	default:
		return t.Format("Jan")
	}
}

// topServices ranks services by COMPLETED revenue, keeping the top five.
func (s *reportService) topServices(ctx context.Context, appointments []*model.Appointment) []model.ServiceStat {
	revenue := map[string]*model.ServiceStat{}
	order := []string{}

	for _, appt := range appointments {
		if appt.Status != config.Completed {
			continue
		}
		stat, ok := revenue[appt.ServiceID]
		if !ok {
			stat = &model.ServiceStat{}
			revenue[appt.ServiceID] = stat
			order = append(order, appt.ServiceID)
		}
		stat.Count++
		stat.Revenue += appt.TotalCost
	}

	names, err := s.reader.ServiceNames(ctx, order)
	if err != nil {
		s.cfg.Log.Warn("Failed to resolve service names for report", "error", err)
		names = map[string]string{}
	}

	stats := make([]model.ServiceStat, 0, len(order))
	for _, serviceID := range order {
		stat := *revenue[serviceID]
		stat.Name = names[serviceID]
		if stat.Name == "" {
			stat.Name = serviceID
		}
		stats = append(stats, stat)
	}

	// Insertion sort by revenue descending; the list is tiny.
	for i := 1; i < len(stats); i++ {
		for j := i; j > 0 && stats[j].Revenue > stats[j-1].Revenue; j-- {
			stats[j], stats[j-1] = stats[j-1], stats[j]
		}
	}

	if len(stats) > topServiceCount {
		stats = stats[:topServiceCount]
	}
	return stats
}

// periodStart resolves the calendar-aligned beginning of the report range.
func periodStart(period model.ReportPeriod, now time.Time) (time.Time, error) {
	switch period {
	case model.PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case model.PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	case model.PeriodQuarter:
		quarterMonth := time.Month((int(now.Month())-1)/3*3 + 1)
		return time.Date(now.Year(), quarterMonth, 1, 0, 0, 0, 0, now.Location()), nil
	case model.PeriodYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, apperrors.InvalidInput(fmt.Sprintf("Invalid report period: %s", period))
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
