// Package frontend provides the embedded web UI assets.
//
// The UI is a single static page talking to the /api/roster endpoints,
// embedded so the server ships as one binary.
package frontend

import "embed"

// Files contains the embedded web frontend.
//
//go:embed static/*
var Files embed.FS
