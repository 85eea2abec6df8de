// Implements the health check endpoint.

package handlers

import (
	"context"

	"github.com/rosterd/rosterd/internal/server/dto"
)

// HealthHandler reports server liveness.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a health handler reporting version.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// Health returns the liveness status.
func (h *HealthHandler) Health(ctx context.Context, req *dto.HealthRequest) (*dto.HealthResponse, error) {
	return &dto.HealthResponse{Status: "ok", Version: h.version}, nil
}
