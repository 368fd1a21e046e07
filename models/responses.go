// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Response is the envelope of every successful API reply.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every failed API reply.
//
// Details is either nil, a plain string, or a map of field name to the list
// of messages describing what is wrong with that field.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details"`
}

// VersionResponse is the data part of GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
}
