package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/logsheet/pkg/buildinfo"
	"github.com/matzehuels/logsheet/pkg/errors"
	"github.com/matzehuels/logsheet/pkg/pipeline"
	"github.com/matzehuels/logsheet/pkg/workout"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, identityFromContext(r))
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context(), identityFromContext(r).Username)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	wo, err := s.workout(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wo)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := workoutID(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), identityFromContext(r).Username, id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	wo, err := decodeBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	wo.Owner = identityFromContext(r).Username
	err = s.store.Put(r.Context(), wo)
	if errors.Is(err, errors.ErrCodeWorkoutTaken) {
		// Content-derived ids collide across owners; the second one gets its own.
		wo.ID = uuid.New()
		err = s.store.Put(r.Context(), wo)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wo.Summarize())
}

func (s *Server) handleWorkoutSheet(w http.ResponseWriter, r *http.Request) {
	wo, err := s.workout(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, r, wo)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	wo, err := decodeBody(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.render(w, r, wo)
}

// render writes the sheet of wo in the format named by the route. The query
// parameters lang, weights and refresh override the server defaults.
func (s *Server) render(w http.ResponseWriter, r *http.Request, wo *workout.Workout) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, err)
		return
	}

	opts := s.defaults
	opts.Formats = []string{format}
	opts.Username = identityFromContext(r).Username
	q := r.URL.Query()
	if lang := q.Get("lang"); lang != "" {
		opts.Language = lang
	}
	if v := q.Get("weights"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.fail(w, errors.New(errors.ErrCodeInvalidOptions, "weights must be a number, got %q", v))
			return
		}
		opts.WeightColumns = n
	}
	opts.Refresh = q.Get("refresh") == "true"

	res, err := s.runner.Execute(r.Context(), wo, opts)
	if err != nil {
		s.fail(w, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": opts.Filename(format)}))
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

// workout loads the workout named by the id route parameter for the caller.
func (s *Server) workout(r *http.Request) (*workout.Workout, error) {
	id, err := workoutID(r)
	if err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), identityFromContext(r).Username, id)
}

func workoutID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New(errors.ErrCodeInvalidInput, "invalid workout id %q", raw)
	}
	return id, nil
}

// decodeBody parses the uploaded workout document. The encoding follows the
// Content-Type header and defaults to JSON.
func decodeBody(w http.ResponseWriter, r *http.Request) (*workout.Workout, error) {
	format := workout.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid content type")
		}
		switch mt {
		case "application/json":
		case "application/toml":
			format = workout.FormatTOML
		case "application/yaml", "application/x-yaml", "text/yaml":
			format = workout.FormatYAML
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", mt)
		}
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return workout.Decode(data, format)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if errors.HTTPStatus(err) >= http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	writeError(w, err)
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
