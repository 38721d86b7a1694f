package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/hupe1980/widgetstore"
	"github.com/hupe1980/widgetstore/internal/conv"
	"github.com/hupe1980/widgetstore/model"
)

// createBody mirrors model.CreateRequest with every field optional so that
// missing required fields can be told apart from zero values.
type createBody struct {
	X      *int32 `json:"x"`
	Y      *int32 `json:"y"`
	Z      *int32 `json:"z"`
	Width  *int32 `json:"width"`
	Height *int32 `json:"height"`
}

func (b createBody) request() (model.CreateRequest, error) {
	for _, f := range []struct {
		name string
		v    *int32
	}{
		{"x", b.X}, {"y", b.Y}, {"width", b.Width}, {"height", b.Height},
	} {
		if f.v == nil {
			return model.CreateRequest{}, badRequest("%s is required", f.name)
		}
	}
	return model.CreateRequest{X: *b.X, Y: *b.Y, Z: b.Z, Width: *b.Width, Height: *b.Height}, nil
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body createBody
	if err := s.decode(w, r, &body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	req, err := body.request()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	widget, err := s.store.Create(r.Context(), req)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.Header().Set("Location", "/widgets/"+widget.ID.String())
	s.writeJSON(w, http.StatusCreated, widget)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	widget, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, widget)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		s.writeStoreError(w, err)
		return
	}

	widgets, err := s.store.List(r.Context(), q)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, widgets)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	var req model.UpdateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	widget, err := s.store.Update(r.Context(), id, req)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, widget)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if _, err := s.store.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status  string `json:"status"`
	Widgets int    `json:"widgets"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Widgets: s.store.Len()})
}

type invariantsResponse struct {
	OK    bool              `json:"ok"`
	Error string            `json:"error,omitempty"`
	Stats widgetstore.Stats `json:"stats"`
}

func (s *Server) handleInvariants(w http.ResponseWriter, _ *http.Request) {
	resp := invariantsResponse{OK: true, Stats: s.store.Stats()}
	status := http.StatusOK
	if err := s.store.CheckInvariants(); err != nil {
		resp.OK = false
		resp.Error = err.Error()
		status = http.StatusInternalServerError
		s.logger.Error("index invariants violated", "error", err)
	}
	s.writeJSON(w, status, resp)
}

var listParams = []string{"skip", "take", "leftBound", "rightBound", "upperBound", "lowerBound"}

// parseListQuery reads the six optional integer parameters of a collection read.
func parseListQuery(values url.Values) (model.Query, error) {
	var parsed [6]*int32
	for i, name := range listParams {
		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}
		v, err := strconv.ParseInt(raw[0], 10, 64)
		if err != nil {
			return nil, &widgetstore.InvalidArgumentError{Field: name, Reason: "must be an integer"}
		}
		n, err := conv.Int64ToInt32(v)
		if err != nil {
			return nil, &widgetstore.InvalidArgumentError{Field: name, Reason: "must be a 32-bit integer"}
		}
		parsed[i] = &n
	}
	return widgetstore.ParseQuery(parsed[0], parsed[1], parsed[2], parsed[3], parsed[4], parsed[5])
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, badRequest("malformed id %q", r.PathValue("id"))
	}
	return id, nil
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return badRequest("body exceeds %d bytes", tooLarge.Limit)
		}
		return badRequest("reading body: %v", err)
	}
	if len(data) == 0 {
		return badRequest("empty body")
	}
	if err := s.codec.Unmarshal(data, v); err != nil {
		return badRequest("malformed body: %v", err)
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := s.codec.Marshal(payload)
	if err != nil {
		s.logger.Error("encoding response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeStoreError maps store errors to status codes.
func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, widgetstore.ErrInvalidArgument):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, widgetstore.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err)
	default:
		s.logger.Error("store failure", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{widgetstore.ErrInvalidArgument}, args...)...)
}
