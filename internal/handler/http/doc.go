// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as CORS, request tracing, access logging,
// panic recovery, authentication and role checks are handled in this package
// before requests are delegated to the service layer. Every reply uses the
// envelope defined in the models package.
package http
