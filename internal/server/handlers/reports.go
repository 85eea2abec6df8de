// Implements the derived view endpoints: metrics, classes, completion,
// distribution, and filter options.

package handlers

import (
	"context"
	"time"

	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/internal/roster"
	"github.com/rosterd/rosterd/internal/server/dto"
)

// ReportHandler serves the read-only dashboard views.
type ReportHandler struct {
	views *roster.Views
	cfg   *config.Config
	now   func() time.Time
}

// NewReportHandler creates a handler over the cached views. now is used for
// the recent-hire cutoff; pass nil for time.Now.
func NewReportHandler(views *roster.Views, cfg *config.Config, now func() time.Time) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{views: views, cfg: cfg, now: now}
}

// Metrics returns the headline counts.
func (h *ReportHandler) Metrics(ctx context.Context, req *dto.MetricsRequest) (*dto.MetricsResponse, error) {
	m := h.views.Metrics(h.now())
	return &dto.MetricsResponse{
		TotalEmployees: m.TotalEmployees,
		RecentHires:    m.RecentHires,
		ClassCounts:    m.ClassCounts,
	}, nil
}

// Classes returns per-class enrollment for one class column, newest first.
func (h *ReportHandler) Classes(ctx context.Context, req *dto.ClassesRequest) (*dto.ClassesResponse, error) {
	groups := h.views.Classes(req.Column)
	out := make([]dto.ClassGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.ClassGroup{Name: g.Name, Students: g.Students})
	}
	return &dto.ClassesResponse{Column: req.Column, Classes: out}, nil
}

// Completion returns the completed/not-completed split per class column,
// over the rows passing the request's filters and search.
func (h *ReportHandler) Completion(ctx context.Context, req *dto.CompletionRequest) (*dto.CompletionResponse, error) {
	f := roster.Filter{
		Allowed:       req.Filters,
		Search:        req.Search,
		SearchColumns: h.cfg.SearchColumns,
	}
	split := h.views.Completion(&f)
	out := make([]dto.CompletionEntry, 0, len(split))
	for _, c := range split {
		out = append(out, dto.CompletionEntry{
			Column:       c.Column,
			Completed:    c.Completed,
			NotCompleted: c.NotCompleted,
		})
	}
	return &dto.CompletionResponse{Completion: out}, nil
}

// Distribution returns the value histogram for one column.
func (h *ReportHandler) Distribution(ctx context.Context, req *dto.DistributionRequest) (*dto.DistributionResponse, error) {
	counts := h.views.Distribution(req.Column)
	out := make([]dto.ValueCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, dto.ValueCount{Value: c.Value, Count: c.Count})
	}
	return &dto.DistributionResponse{Column: req.Column, Counts: out}, nil
}

// Options returns the distinct non-null values of one column, for the filter
// dropdowns.
func (h *ReportHandler) Options(ctx context.Context, req *dto.OptionsRequest) (*dto.OptionsResponse, error) {
	opts := h.views.Options(req.Column)
	if opts == nil {
		opts = []string{}
	}
	return &dto.OptionsResponse{Column: req.Column, Options: opts}, nil
}
