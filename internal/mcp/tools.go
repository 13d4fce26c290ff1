package mcp

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/matzehuels/logsheet/pkg/errors"
	"github.com/matzehuels/logsheet/pkg/pipeline"
	"github.com/matzehuels/logsheet/pkg/workout"
)

// Sheet formats offered to clients. Binary formats are left to the CLI and
// the HTTP server.
const (
	sheetText = "text"
	sheetJSON = "json"
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List the stored workouts, newest first. Returns id, comment, creation time and number of training days."),
)

var toolGetWorkoutSheet = mcp.NewTool("get_workout_sheet",
	mcp.WithDescription("Lay out a stored workout as a log sheet. 'text' returns the tables a person would print; 'json' returns the cell grid, style directives and column widths."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout id as returned by list_workouts")),
	mcp.WithString("format", mcp.Description("Sheet format. Defaults to 'text'."), mcp.Enum(sheetText, sheetJSON)),
	mcp.WithString("language", mcp.Description("Label language (e.g. 'en', 'de'). Defaults to the server setting.")),
	mcp.WithNumber("weight_columns", mcp.Description("Number of blank weight columns per row. Defaults to 7.")),
)

var toolRenderWorkout = mcp.NewTool("render_workout",
	mcp.WithDescription("Lay out an inline workout document as a log sheet without storing it."),
	mcp.WithString("document", mcp.Required(), mcp.Description("The workout document")),
	mcp.WithString("encoding", mcp.Description("Document encoding. Defaults to 'json'."), mcp.Enum(string(workout.FormatJSON), string(workout.FormatTOML), string(workout.FormatYAML))),
	mcp.WithString("format", mcp.Description("Sheet format. Defaults to 'text'."), mcp.Enum(sheetText, sheetJSON)),
	mcp.WithString("language", mcp.Description("Label language (e.g. 'en', 'de'). Defaults to the server setting.")),
	mcp.WithNumber("weight_columns", mcp.Description("Number of blank weight columns per row. Defaults to 7.")),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := h.store.List(ctx, OwnerFromContext(ctx))
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + errors.UserMessage(err)), nil
	}

	result, err := mcp.NewToolResultJSON(list)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutSheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError("invalid workout id: " + raw), nil
	}

	w, err := h.store.Get(ctx, OwnerFromContext(ctx), id)
	if err != nil {
		if !errors.IsNotFound(err) {
			h.log.Error("mcp get_workout_sheet", "error", err)
		}
		return mcp.NewToolResultError(errors.UserMessage(err)), nil
	}
	return h.sheet(ctx, req, w), nil
}

func (h *handlers) renderWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := req.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError("document parameter is required"), nil
	}
	encoding := workout.Format(strings.ToLower(req.GetString("encoding", string(workout.FormatJSON))))

	w, err := workout.Decode([]byte(doc), encoding)
	if err != nil {
		return mcp.NewToolResultError(errors.UserMessage(err)), nil
	}
	return h.sheet(ctx, req, w), nil
}

// sheet runs the pipeline for w with the options named in req.
func (h *handlers) sheet(ctx context.Context, req mcp.CallToolRequest, w *workout.Workout) *mcp.CallToolResult {
	format := pipeline.FormatText
	switch f := strings.ToLower(req.GetString("format", sheetText)); f {
	case sheetText, pipeline.FormatText:
	case sheetJSON:
		format = pipeline.FormatJSON
	default:
		return mcp.NewToolResultError("format must be 'text' or 'json', got " + f)
	}

	opts := h.defaults
	opts.Formats = []string{format}
	opts.Username = OwnerFromContext(ctx)
	if lang := req.GetString("language", ""); lang != "" {
		opts.Language = lang
	}
	if n := req.GetInt("weight_columns", 0); n != 0 {
		opts.WeightColumns = n
	}

	res, err := h.runner.Execute(ctx, w, opts)
	if err != nil {
		if errors.HTTPStatus(err) >= 500 {
			h.log.Error("mcp sheet", "error", err)
		}
		return mcp.NewToolResultError(errors.UserMessage(err))
	}
	return mcp.NewToolResultText(string(res.Artifacts[format]))
}
