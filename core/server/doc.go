// Package server holds the operator HTTP API configuration.
//
// The operator API is the fiber application started by the start command. It
// serves inventory listings, limit updates, search, chat and asset imports.
//
// # Configuration
//
// Config carries the listen port (SERVER_PORT, default 8080) and the API key
// (SERVER_API_KEY). Addr turns a bare port into a listen address and leaves
// "host:port" values alone. An empty key disables the auth middleware, which
// AuthEnabled reports.
//
// # Sockets
//
// The storage-system and observer sockets are not part of this server. They are
// served by feature/bridge on bridge.port, and config validation rejects a
// bridge port equal to the server port.
package server
