package workout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/logsheet/pkg/errors"
)

// Format is a workout document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// idNamespace derives stable ids for documents that do not carry one, so the
// same file always hashes to the same cache keys.
var idNamespace = uuid.MustParse("5b1f4c1e-3c52-4d57-9a3e-2f2f6a4c8e10")

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported workout file %q (want .json, .toml, .yaml)", filepath.Base(path))
	}
}

// Load reads, normalizes and validates the workout document at path.
func Load(path string) (*Workout, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "workout file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data, format)
}

// Decode parses a workout document, then normalizes and validates it.
// Documents without an id get one derived from their content.
func Decode(data []byte, format Format) (*Workout, error) {
	var w Workout
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &w)
	case FormatTOML:
		err = toml.Unmarshal(data, &w)
	case FormatYAML:
		err = yaml.Unmarshal(data, &w)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported workout format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWorkout, err, "parse %s workout", format)
	}

	if w.ID == uuid.Nil {
		w.ID = uuid.NewSHA1(idNamespace, data)
	}
	w.Normalize()
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

// Encode serializes w in the given format.
func Encode(w *Workout, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(w, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(w); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(w)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported workout format %q", format)
	}
}
