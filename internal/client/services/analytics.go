package services

import (
	"context"
	"net/http"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/models"
	"github.com/dmitrijs2005/deskmate/internal/filex"
)

// ReportFileName is the name the downloaded ticket report is saved under.
const ReportFileName = "ticket_report.xlsx"

// AnalyticsService feeds the agent dashboard and the user's ticket report.
//
// Contract:
//   - Dashboard: fetch the five dashboard metrics concurrently and join
//     them; one failed fetch fails the whole call.
//   - DownloadReport: user-only; fetch the xlsx ticket report and save it
//     under dir/reports, returning the written path.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (models.DashboardMetrics, error)
	DownloadReport(ctx context.Context, dir string) (string, error)
}

type analyticsService struct {
	api api.Client
}

func NewAnalyticsService(client api.Client) AnalyticsService {
	return &analyticsService{api: client}
}

// Dashboard issues the five metric fetches side by side. Each endpoint
// returns either a bare scalar (null when there is no data yet) or a list
// of per-agent/per-group rows.
func (a *analyticsService) Dashboard(ctx context.Context) (models.DashboardMetrics, error) {
	var (
		satisfaction *float64
		delinquency  int
		reopened     int
		byAgent      []models.ResolvedByAgent
		byGroup      []models.ResolvedByGroup
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.api.JSON(ctx, http.MethodGet, "/analytics/average_satisfaction", nil, &satisfaction)
	})
	g.Go(func() error {
		return a.api.JSON(ctx, http.MethodGet, "/analytics/total_first_response_delinquency", nil, &delinquency)
	})
	g.Go(func() error {
		return a.api.JSON(ctx, http.MethodGet, "/analytics/reopened_tickets", nil, &reopened)
	})
	g.Go(func() error {
		return a.api.JSON(ctx, http.MethodGet, "/analytics/total_tickets_resolved_by_agents", nil, &byAgent)
	})
	g.Go(func() error {
		return a.api.JSON(ctx, http.MethodGet, "/analytics/total_tickets_resolved_by_groups", nil, &byGroup)
	})
	if err := g.Wait(); err != nil {
		return models.DashboardMetrics{}, err
	}

	metrics := models.DashboardMetrics{
		FirstResponseDelinquency: delinquency,
		ReopenedTickets:          reopened,
		TicketsResolvedByAgent:   byAgent,
		TicketsResolvedByGroup:   byGroup,
	}
	if satisfaction != nil {
		metrics.AverageSatisfaction = *satisfaction
	}
	return metrics, nil
}

func (a *analyticsService) DownloadReport(ctx context.Context, dir string) (string, error) {
	data, err := a.api.Download(ctx, "/analytics/report")
	if err != nil {
		return "", err
	}

	reports, err := filex.EnsureSubDir(dir, "reports")
	if err != nil {
		return "", err
	}

	path := filepath.Join(reports, ReportFileName)
	if err := filex.WriteFileAtomic(path, data, 0o660); err != nil {
		return "", err
	}
	return path, nil
}
