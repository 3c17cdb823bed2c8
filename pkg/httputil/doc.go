// Package httputil provides HTTP response helpers for the seal API.
//
// # Overview
//
// Handlers in the API server share three concerns:
//
//   - [WriteJSON]: Encode a value as an indented JSON response
//   - [WriteError]: Map coded pipeline errors to status codes and a JSON body
//   - [ETag] and [NotModified]: Conditional requests for rendered artifacts
//
// # Errors
//
// [StatusFor] maps error codes from pkg/errors onto HTTP statuses. Caller
// mistakes (a malformed identifier, an unknown format, a bad colorway) become
// 400, NOT_FOUND becomes 404, UNSUPPORTED becomes 501 and everything else
// 500. The body always carries the machine-readable code:
//
//	{"error": {"code": "INVALID_IDENTIFIER_SHAPE", "message": "..."}}
//
// Server errors never echo the underlying cause to the client.
//
// # Conditional requests
//
// Seals are deterministic, so an artifact's content hash is a strong
// validator. Handlers set the ETag and answer If-None-Match with 304:
//
//	etag := httputil.ETag(data)
//	if httputil.NotModified(w, r, etag) {
//	    return
//	}
//	w.Write(data)
package httputil
