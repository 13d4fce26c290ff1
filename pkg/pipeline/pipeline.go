// Package pipeline turns a workout into rendered log sheets.
//
// It is the single path the CLI, the HTTP server and the MCP tools take from
// a validated workout to bytes on the wire:
//
//  1. Layout: translate the labels and compute the sheet layout
//  2. Render: produce each requested format, consulting the artifact cache
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, w, pipeline.Options{
//	    Formats:  []string{"pdf", "xlsx"},
//	    Language: "de",
//	    Username: "anna",
//	})
//	if err != nil {
//	    return err
//	}
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/logsheet/pkg/buildinfo"
	"github.com/matzehuels/logsheet/pkg/cache"
	"github.com/matzehuels/logsheet/pkg/errors"
	"github.com/matzehuels/logsheet/pkg/i18n"
	"github.com/matzehuels/logsheet/pkg/sheet"
	"github.com/matzehuels/logsheet/pkg/sheet/sink"
)

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatHTML = "html"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
	FormatText = "txt"
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatPDF, FormatHTML, FormatXLSX, FormatJSON, FormatText}

var contentTypes = map[string]string{
	FormatPDF:  "application/pdf",
	FormatHTML: "text/html; charset=utf-8",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatJSON: "application/json",
	FormatText: "text/plain; charset=utf-8",
}

// DefaultUsername is used in the document subject when none is given.
const DefaultUsername = "local"

// DefaultFontFamily names an embedded PDF font configured without a family.
const DefaultFontFamily = "SheetFont"

// Options contains all configuration for a pipeline run. Zero values select
// the defaults, so an empty Options renders the standard English PDF.
type Options struct {
	Formats []string `json:"formats,omitempty"`

	// Layout
	WeightColumns     int    `json:"weight_columns,omitempty"`
	FirstWeightColumn int    `json:"first_weight_column,omitempty"`
	HeaderColor       string `json:"header_color,omitempty"`
	BandingColor      string `json:"banding_color,omitempty"`
	InfinityGlyph     string `json:"infinity_glyph,omitempty"`

	// Document texts
	Language string `json:"language,omitempty"`
	Username string `json:"username,omitempty"`
	Product  string `json:"product,omitempty"`

	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// FontFamily and FontPath embed a TrueType font in PDFs.
	FontFamily string `json:"-"`
	FontPath   string `json:"-"`
	// Today dates the footer of workouts without a creation time.
	Today time.Time `json:"-"`

	validated bool
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPDF}
	}
	seen := make(map[string]bool, len(o.Formats))
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if err := ValidateFormat(f); err != nil {
			return err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	o.Formats = formats

	if o.WeightColumns == 0 {
		o.WeightColumns = sheet.DefaultWeightColumns
	}
	if o.FirstWeightColumn == 0 {
		o.FirstWeightColumn = sheet.DefaultFirstWeightColumn
	}
	if o.InfinityGlyph == "" {
		o.InfinityGlyph = sheet.DefaultInfinityGlyph
	}
	if o.Username == "" {
		o.Username = DefaultUsername
	}
	if err := errors.ValidateUsername(o.Username); err != nil {
		return err
	}
	if o.Product == "" {
		o.Product = buildinfo.Product
	}
	if o.FontPath != "" && o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	// Colours and column counts are checked by building the sheet options.
	if _, err := o.SheetOptions(sheet.DefaultLabels()); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SheetOptions converts the layout fields into [sheet.Options] with the
// given labels.
func (o *Options) SheetOptions(labels sheet.Labels) (sheet.Options, error) {
	so := sheet.DefaultOptions()
	so.Labels = labels
	if o.WeightColumns != 0 {
		so.WeightColumns = o.WeightColumns
	}
	if o.FirstWeightColumn != 0 {
		so.FirstWeightColumn = o.FirstWeightColumn
	}
	if o.InfinityGlyph != "" {
		so.InfinityGlyph = o.InfinityGlyph
	}
	for _, c := range []struct {
		name string
		val  string
		dst  *sheet.RGB
	}{
		{"header_color", o.HeaderColor, &so.HeaderColor},
		{"banding_color", o.BandingColor, &so.BandingColor},
	} {
		if c.val == "" {
			continue
		}
		rgb, err := sheet.ParseRGB(c.val)
		if err != nil {
			return sheet.Options{}, errors.Wrap(errors.ErrCodeInvalidOptions, err, "%s", c.name)
		}
		*c.dst = rgb
	}
	if err := so.Validate(); err != nil {
		return sheet.Options{}, err
	}
	return so, nil
}

// Translator returns the translator for the configured language.
func (o *Options) Translator() i18n.Translator {
	return i18n.New(o.Language)
}

// Filename is the download name of a format, such as "Workout.pdf" or
// "Training.xlsx".
func (o *Options) Filename(format string) string {
	return o.Translator().Title() + "." + format
}

// ArtifactKeyOpts returns the cache key inputs of format. Everything that
// changes the bytes of an artifact must be part of it.
func (o *Options) ArtifactKeyOpts(format string, so sheet.Options) cache.ArtifactKeyOpts {
	sheetHash := cache.HashJSON(struct {
		Sheet      sheet.Options
		FontFamily string
		FontPath   string
		Version    string
	}{so, o.FontFamily, o.FontPath, buildinfo.Version})
	return cache.ArtifactKeyOpts{
		Format:   format,
		Sheet:    sheetHash,
		Language: o.Translator().Tag().String(),
		Username: o.Username,
		Product:  o.Product,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// WorkoutHash is the content hash of the rendered workout.
	WorkoutHash string

	Layout   sheet.Layout
	Document sink.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Days       int
	Rows       int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks which artifacts came from the cache.
type CacheInfo struct {
	Hits      []string // formats served from cache
	RenderHit bool     // whether every artifact came from cache
}

func (s Stats) String() string {
	return fmt.Sprintf("%d days, %d rows, layout %s, render %s", s.Days, s.Rows, s.LayoutTime, s.RenderTime)
}
