package model

import "time"

type ReportPeriod string

const (
	PeriodWeek    ReportPeriod = "week"
	PeriodMonth   ReportPeriod = "month"
	PeriodQuarter ReportPeriod = "quarter"
	PeriodYear    ReportPeriod = "year"
)

// ReportSummary carries the headline figures. Percentages are rounded to
// two decimals; AverageRevenue alone is rounded to a whole currency unit.
type ReportSummary struct {
	TotalRevenue          float64 `json:"total_revenue"`
	TotalAppointments     int     `json:"total_appointments"`
	CompletedAppointments int     `json:"completed_appointments"`
	PendingAppointments   int     `json:"pending_appointments"`
	ConfirmedAppointments int     `json:"confirmed_appointments"`
	AverageRevenue        float64 `json:"average_revenue"`
	CompletionRate        float64 `json:"completion_rate"`
	RevenueGrowth         float64 `json:"revenue_growth"`
}

// ChartBucket is one sub-period of the report range: a weekday label for a
// week report, a zero-padded day of month for a month report, a month
// abbreviation for quarter and year reports.
type ChartBucket struct {
	Period       string  `json:"period"`
	Revenue      float64 `json:"revenue"`
	Appointments int     `json:"appointments"`
	Completed    int     `json:"completed"`
}

// ServiceStat aggregates completed-appointment revenue per service.
type ServiceStat struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Report is the full aggregation of a provider's appointment history over
// one calendar-aligned period.
type Report struct {
	Summary     ReportSummary `json:"summary"`
	ChartData   []ChartBucket `json:"chart_data"`
	TopServices []ServiceStat `json:"top_services"`
	Period      ReportPeriod  `json:"period"`
	DateRange   DateRange     `json:"date_range"`
}
