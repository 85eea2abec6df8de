// Package handlers implements the business logic for the HTTP API endpoints.
//
// Handlers receive validated request DTOs from the Wrap adapter in the server
// package, drive the roster store, and return response DTOs. Domain errors
// are translated to structured API errors in errors.go.
package handlers

import (
	"context"

	"github.com/rosterd/rosterd/internal/config"
	"github.com/rosterd/rosterd/internal/roster"
	"github.com/rosterd/rosterd/internal/server/dto"
)

// RosterHandler serves the table view and record mutations.
type RosterHandler struct {
	store    *roster.Store
	views    *roster.Views
	cfg      *config.Config
	dateCols map[string]bool
}

// NewRosterHandler creates a handler backed by store.
func NewRosterHandler(store *roster.Store, views *roster.Views, cfg *config.Config) *RosterHandler {
	dateCols := make(map[string]bool, len(cfg.DateColumns))
	for _, col := range cfg.DateColumns {
		dateCols[col] = true
	}
	return &RosterHandler{store: store, views: views, cfg: cfg, dateCols: dateCols}
}

func (h *RosterHandler) tableResponse(t *roster.Table, total int) *dto.TableResponse {
	cols, rows := tableToWire(t)
	resp := &dto.TableResponse{
		Columns:  cols,
		Rows:     rows,
		Total:    total,
		Revision: h.store.Revision(),
	}
	if id := h.store.DatasetID(); !id.IsZero() {
		resp.DatasetID = id.String()
	}
	return resp
}

// Query returns the rows passing the request's filters and search. An
// empty request returns the full table.
func (h *RosterHandler) Query(ctx context.Context, req *dto.QueryRequest) (*dto.TableResponse, error) {
	f := roster.Filter{
		Allowed:       req.Filters,
		Search:        req.Search,
		SearchColumns: h.cfg.SearchColumns,
	}
	t := f.Apply(h.views.Snapshot())
	total := t.Len()
	if req.Limit > 0 && total > req.Limit {
		t.Rows = t.Rows[:req.Limit]
	}
	return h.tableResponse(t, total), nil
}

// Append adds one record.
func (h *RosterHandler) Append(ctx context.Context, req *dto.AppendRequest) (*dto.MutationResponse, error) {
	if err := h.store.Append(recordFromWire(req.Record, h.dateCols)); err != nil {
		return nil, apiError(err)
	}
	return h.mutationResponse(), nil
}

// Update patches the record whose identity column equals req.Identity.
// A miss is a 404; there is no positional fallback.
func (h *RosterHandler) Update(ctx context.Context, req *dto.UpdateRequest) (*dto.MutationResponse, error) {
	key := roster.ByColumn(h.cfg.IdentityColumn, req.Identity)
	if err := h.store.Update(key, recordFromWire(req.Patch, h.dateCols)); err != nil {
		return nil, apiError(err)
	}
	return h.mutationResponse(), nil
}

// Clear drops the loaded dataset.
func (h *RosterHandler) Clear(ctx context.Context, req *dto.ClearRequest) (*dto.MutationResponse, error) {
	h.store.Clear()
	return h.mutationResponse(), nil
}

func (h *RosterHandler) mutationResponse() *dto.MutationResponse {
	resp := &dto.MutationResponse{Rows: h.store.Len(), Revision: h.store.Revision()}
	if id := h.store.DatasetID(); !id.IsZero() {
		resp.DatasetID = id.String()
	}
	return resp
}
