package http

import (
	"net/http"

	"github.com/MKhiriev/go-crud-keeper/internal/app"
	"github.com/MKhiriev/go-crud-keeper/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	h.writeSuccess(w, r, models.VersionResponse{Version: serverVersion}, app.MsgOperationSuccessful, http.StatusOK)
}
