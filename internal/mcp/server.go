// Package mcp exposes stored workouts and their log sheets as Model Context
// Protocol tools over stdio.
package mcp

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/matzehuels/logsheet/pkg/buildinfo"
	"github.com/matzehuels/logsheet/pkg/pipeline"
	"github.com/matzehuels/logsheet/pkg/store"
)

type contextKey int

const ownerKey contextKey = iota

// OwnerFromContext returns the workout owner injected by the transport,
// defaulting to [store.LocalOwner].
func OwnerFromContext(ctx context.Context) string {
	if owner, ok := ctx.Value(ownerKey).(string); ok && owner != "" {
		return owner
	}
	return store.LocalOwner
}

// WithOwner returns a context whose tool calls act for owner.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// New creates an MCP server with all tools and resources registered.
// defaults seeds the pipeline options of every sheet.
func New(st store.Store, runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *server.MCPServer {
	s := server.NewMCPServer(buildinfo.Product, buildinfo.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("logsheet turns workout plans into printable log sheets. List the stored workouts, then fetch a sheet as a text table or as a JSON layout."),
	)

	h := &handlers{store: st, runner: runner, defaults: defaults, log: logger}

	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkoutSheet, Handler: h.getWorkoutSheet},
		server.ServerTool{Tool: toolRenderWorkout, Handler: h.renderWorkout},
	)

	s.AddResources(
		server.ServerResource{Resource: resWorkouts, Handler: h.workouts},
	)

	return s
}

// ServeStdio serves s on in and out until ctx is cancelled or in is closed.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, in, out)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	store    store.Store
	runner   *pipeline.Runner
	defaults pipeline.Options
	log      *log.Logger
}

var resWorkouts = mcp.NewResource(
	"logsheet://workouts",
	"Workouts",
	mcp.WithResourceDescription("Summaries of the stored workouts, newest first"),
	mcp.WithMIMEType("application/json"),
)
