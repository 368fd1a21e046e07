// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-crud-keeper/internal/app"
	"github.com/MKhiriev/go-crud-keeper/internal/utils"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler.
// A known path requested with an unsupported method answers 404 with the
// error envelope instead of chi's default 405.
//
//	router := chi.NewRouter()
//	router.MethodNotAllowed(CheckHTTPMethod())
func CheckHTTPMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, app.MsgNotFound, nil, http.StatusNotFound)
	}
}
