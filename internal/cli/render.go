package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/logsheet/pkg/errors"
	"github.com/matzehuels/logsheet/pkg/pipeline"
	"github.com/matzehuels/logsheet/pkg/store"
	"github.com/matzehuels/logsheet/pkg/workout"
)

// sheetFlags are the layout flags shared by render and preview.
type sheetFlags struct {
	language string
	username string
	weights  int
	owner    string
	noCache  bool
	refresh  bool
}

func (f *sheetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.language, "lang", "l", "", "label language: en (default), de")
	cmd.Flags().StringVar(&f.username, "username", "", "name in the document subject")
	cmd.Flags().IntVarP(&f.weights, "weights", "w", 0, "number of weight columns (default 7)")
	cmd.Flags().StringVar(&f.owner, "owner", store.LocalOwner, "owner of stored workouts")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
	_ = cmd.RegisterFlagCompletionFunc("lang", completeLanguages)
}

// apply overrides the configured defaults with the flags that were set.
func (f *sheetFlags) apply(opts *pipeline.Options) {
	if f.language != "" {
		opts.Language = f.language
	}
	if f.username != "" {
		opts.Username = f.username
	}
	if f.weights != 0 {
		opts.WeightColumns = f.weights
	}
	opts.Refresh = f.refresh
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	sheetFlags
	output  string // output file, base path for several formats, or "-"
	formats string // comma-separated output formats
	font    string // TrueType font for PDF output
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <workout-file|id>",
		Short: "Render a workout as printable log sheets",
		Long: `Render a workout file (.json, .toml, .yaml) or a stored workout id as log sheets.

Each format is written next to the input file unless --output names a file
(one format) or a base path (several formats). Use --output - to write a
single format to stdout.`,
		Example: `  logsheet render plan.toml
  logsheet render plan.yaml -f pdf,xlsx -o sheets/plan --lang de
  logsheet render 8d7c1f0e-8f7e-4a59-9c53-0d2f8e0f6b11 -f txt -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (one format) or base path (several)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): pdf (default), html, xlsx, json, txt (comma-separated)")
	cmd.Flags().StringVar(&opts.font, "font", "", "TrueType font embedded in PDF output")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	w, fromStore, err := c.loadWorkout(ctx, input, opts.owner)
	if err != nil {
		return err
	}
	logger.Debug("loaded workout", "id", w.ID, "days", len(w.Days), "exercises", w.ExerciseCount())

	popts, err := c.pipelineOptions()
	if err != nil {
		return err
	}
	opts.apply(&popts)
	if f := parseFormats(opts.formats); f != nil {
		popts.Formats = f
	}
	if opts.font != "" {
		popts.FontPath = opts.font
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.output == "-" && len(popts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidOptions, "--output - needs exactly one format, got %d", len(popts.Formats))
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.Join(popts.Formats, ", ")+"...")
	if opts.output != "-" {
		spinner.Start()
	}
	res, err := runner.Execute(ctx, w, popts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("rendered", "formats", len(res.Artifacts), "cached", len(res.CacheInfo.Hits))

	if opts.output == "-" {
		_, err := stdout.Write(res.Artifacts[popts.Formats[0]])
		return err
	}

	base := basePath(opts.output, input)
	if fromStore && opts.output == "" {
		base = strings.TrimSuffix(popts.Filename(pipeline.FormatPDF), "."+pipeline.FormatPDF)
	}
	var written []string
	for _, format := range popts.Formats {
		path := outputPath(opts.output, base, format, len(popts.Formats))
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Rendered %s", plural(len(written), "sheet"))
	for _, path := range written {
		printFile(path)
	}
	printStats(res.Stats, res.CacheInfo.RenderHit)
	return nil
}

// loadWorkout reads input as a workout file, or as the id of a workout in
// the store when no such file exists.
func (c *CLI) loadWorkout(ctx context.Context, input, owner string) (*workout.Workout, bool, error) {
	if _, err := os.Stat(input); err != nil {
		if id, perr := uuid.Parse(input); perr == nil {
			st, err := c.openStore(ctx)
			if err != nil {
				return nil, false, err
			}
			defer st.Close()
			w, err := st.Get(ctx, owner, id)
			return w, true, err
		}
	}
	w, err := workout.Load(input)
	return w, false, err
}

// basePath derives the output path without extension from --output and the
// input file. Known format extensions are stripped from --output.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath is the file a format is written to. A single format keeps an
// explicit --output as given.
func outputPath(output, base, format string, count int) string {
	if count == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return base + "." + format
}
