// Package middleware groups the fiber middleware of the operator API.
//
// # rayid
//
// rayid tags each request with a uuid, echoes it in the X-Ray-ID response
// header and stores it in the request locals. logger.WithRayID copies it into
// log lines so one operator call can be followed through the logs.
//
// # auth
//
// auth checks the X-API-Key header on every route except the public prefixes
// (/health and /swagger). A missing or wrong key gets 401. An empty configured
// key disables the check for local use.
//
// Both are registered by the start command before the feature loader mounts the
// route groups.
package middleware
