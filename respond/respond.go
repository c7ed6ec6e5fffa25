// Package respond writes JSON responses and maps errors to status codes.
package respond

import (
	"net/http"

	"projecthub/apierr"
	"projecthub/logging"

	"github.com/go-chi/render"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func NoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes err as {"detail": ...}. Internal errors are logged and
// replaced by a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	e := apierr.From(err)
	entry := logging.FromContext(r.Context())
	switch e.Kind {
	case apierr.KindInternal:
		entry.WithError(err).Error("request failed")
	case apierr.KindUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
		entry.WithError(err).Debug("request rejected")
	default:
		entry.WithError(err).Debug("request rejected")
	}
	JSON(w, r, e.Kind.Status(), ErrorBody{Detail: e.Detail})
}
