// Package controller contains HTTP middlewares and helper handlers shared by
// the API server.
//
// Middlewares:
//   - CORS: origin allow-list, preflight short-circuit.
//   - WithLogger: request id plus request-scoped logger, access log.
//
// Helpers:
//   - PprofMux: net/http/pprof handlers mounted under a prefix.
package controller
