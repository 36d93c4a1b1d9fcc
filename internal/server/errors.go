package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/export"
	"github.com/piwi3910/MachCost/internal/model"
)

// ErrResponse is the body of every failed request.
type ErrResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "malformed request body: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

// decode reads a JSON body into v and validates it.
func (s *Server) decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		return &decodeError{err: err}
	}
	return s.validate.Struct(v)
}

// fail maps err to a status code: 400 for unreadable bodies, 422 for input
// the estimator rejects and 500 for everything else.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		de *decodeError
		ve *model.ValidationError
		ge *model.InvalidGeometryError
	)
	status := http.StatusInternalServerError
	resp := ErrResponse{Error: err.Error()}

	switch {
	case errors.As(err, &de):
		status = http.StatusBadRequest
	case errors.As(err, &ve):
		status = http.StatusUnprocessableEntity
		resp.Field = ve.Field
	case errors.As(err, &ge):
		status = http.StatusUnprocessableEntity
		resp.Field = "geometry"
	case errors.Is(err, export.ErrNothingToExport):
		status = http.StatusUnprocessableEntity
	default:
		s.logger.Error("request failed", zap.String("op", op), zap.Error(err))
		resp.Error = "internal error"
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, ErrResponse{Error: msg})
}
