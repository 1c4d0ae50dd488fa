// Package broker wraps go-redis for the optional pub/sub mirror of observer events.
//
// Dashboards running in other processes can subscribe to the configured channel
// instead of holding a socket to the bridge. Publishing is best effort; callers log
// failures and carry on, since observers re-fetch full state on the next ping.
package broker
