package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/logsheet/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"pdf", []string{"pdf"}},
		{"pdf, xlsx ,txt", []string{"pdf", "xlsx", "txt"}},
		{"pdf,,", []string{"pdf"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "plans/spring.toml", "plans/spring"},
		{"", "spring", "spring"},
		{"out/sheet.pdf", "spring.toml", "out/sheet"},
		{"out/sheet.xlsx", "spring.toml", "out/sheet"},
		{"out/sheet", "spring.toml", "out/sheet"},
		{"out/sheet.v2", "spring.toml", "out/sheet.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, base, format string
		count                int
		want                 string
	}{
		{"", "spring", "pdf", 1, "spring.pdf"},
		{"sheet.pdf", "sheet", "pdf", 1, "sheet.pdf"},
		{"sheet.pdf", "sheet", "xlsx", 2, "sheet.xlsx"},
		{"sheet", "sheet", "html", 1, "sheet.html"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.base, tt.format, tt.count); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %d) = %q, want %q", tt.output, tt.base, tt.format, tt.count, got, tt.want)
		}
	}
}

func TestSheetFlagsApply(t *testing.T) {
	opts := pipeline.Options{Language: "en", Username: "anna", WeightColumns: 5}
	f := sheetFlags{language: "de", weights: 3, refresh: true}
	f.apply(&opts)

	if opts.Language != "de" || opts.WeightColumns != 3 || !opts.Refresh {
		t.Errorf("apply() = %+v, want flags to override", opts)
	}
	if opts.Username != "anna" {
		t.Errorf("Username = %q, want unset flag to keep %q", opts.Username, "anna")
	}
}

func TestRenderWritesFiles(t *testing.T) {
	c, dir := newTestCLI(t)
	out := captureStdout(t)
	plan := writePlan(t, dir, "spring.toml")

	if err := execute(t, c, "render", plan, "-f", "json,txt"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{"json", "txt"} {
		path := filepath.Join(dir, "spring."+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if !strings.Contains(string(data), "Squat") {
			t.Errorf("%s does not mention the exercise", path)
		}
	}
	if !strings.Contains(out.String(), "2 sheets") {
		t.Errorf("output = %q, want the sheet count", out.String())
	}
}

func TestRenderExplicitOutput(t *testing.T) {
	c, dir := newTestCLI(t)
	captureStdout(t)
	plan := writePlan(t, dir, "spring.toml")
	target := filepath.Join(dir, "out", "legs.html")

	if err := execute(t, c, "render", plan, "-f", "html", "-o", target, "--lang", "de"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "<table") {
		t.Error("html output has no table")
	}
}

func TestRenderToStdout(t *testing.T) {
	c, dir := newTestCLI(t)
	out := captureStdout(t)
	plan := writePlan(t, dir, "spring.toml")

	if err := execute(t, c, "render", plan, "-f", "txt", "-o", "-"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out.String(), "Squat") {
		t.Errorf("stdout = %q, want the text sheet", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "spring.txt")); !os.IsNotExist(err) {
		t.Error("render to stdout also wrote a file")
	}
}

func TestRenderErrors(t *testing.T) {
	c, dir := newTestCLI(t)
	captureStdout(t)
	plan := writePlan(t, dir, "spring.toml")

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"render", filepath.Join(dir, "missing.toml")}},
		{"unknown format", []string{"render", plan, "-f", "svg"}},
		{"stdout with two formats", []string{"render", plan, "-f", "txt,json", "-o", "-"}},
		{"negative weights", []string{"render", plan, "-w", "-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := execute(t, c, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
