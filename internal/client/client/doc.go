// Package client is the console's access layer to the ESL backend REST API.
//
// HTTPClient covers the session endpoints (Ping, Login, Me) and hands out
// typed collections for stores, products, ESLs, gateways, users and sync
// logs, plus the list/create-only Categories resource. Every request carries
// an X-Request-ID, the current bearer token from the configured TokenSource,
// and is subject to the client timeout and rate limit.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable; 401/403 map to ErrUnauthorized,
// 404 to ErrNotFound; anything else is a *StatusError with the backend's
// detail message. Match them with errors.Is / errors.As.
package client
