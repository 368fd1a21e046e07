package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-crud-keeper/internal/app"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/utils"
	"github.com/MKhiriev/go-crud-keeper/internal/validators"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// writeError logs err and replies with its envelope. Server-side failures are
// logged at error level; rejected requests at debug level.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	mapping := lookupError(err)
	if mapping.status >= http.StatusInternalServerError {
		log.Err(err).Str("func", "*Handler.writeError").Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", mapping.status).Msg("request rejected")
	}

	if _, werr := utils.WriteError(w, mapping.message, errorDetails(err, mapping.status), mapping.status); werr != nil {
		log.Err(werr).Str("func", "*Handler.writeError").Msg("error writing response")
	}
}

func (h *Handler) writeSuccess(w http.ResponseWriter, r *http.Request, data any, message string, status int) {
	if _, err := utils.WriteSuccess(w, data, message, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.writeSuccess").Msg("error writing response")
	}
}

// decode reads the request body into dst, reporting every offending field.
func (h *Handler) decode(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %w", validators.ErrMalformedJSON, err)
	}
	if len(body) > maxBodyBytes {
		return validators.NewValidationError(validators.SchemaField, app.MsgBodyTooLarge)
	}

	return h.decoder.Decode(r.Context(), body, dst)
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPathID, raw)
	}
	return id, nil
}

// notFound replies to unrouted paths with the envelope instead of chi's
// plain-text 404.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteError(w, app.MsgNotFound, nil, http.StatusNotFound); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.notFound").Msg("error writing response")
	}
}
