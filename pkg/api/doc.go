// Package api exposes the solve pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz               liveness and build info
//	POST /v1/solve              edge-list body, returns the result record
//	POST /v1/render             edge-list body, returns the colored drawing
//	GET  /v1/results            most recent archived records
//	GET  /v1/results/{hash}     archived records of one graph
//
// Request bodies use the same edge-list format as input files. Query
// parameters select the per-request options:
//
//	name            graph name in the record (default "request")
//	time_limit      Go duration, capped by the server's configured limit
//	heuristic_only  "true" skips the exact solve
//	warm_start      "false" builds the model without the heuristic coloring
//	format          render only: svg (default), png or dot
//
// Errors are JSON objects {"error": ..., "code": ...} whose HTTP status
// follows the error code.
package api
