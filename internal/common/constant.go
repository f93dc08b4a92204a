// Package common contains constants and helpers shared by the console's
// transport, storage and UI layers.
package common

const (
	// TokenMetadataKey is the local metadata key holding the bearer token.
	TokenMetadataKey = "token"
	// LastEmailMetadataKey remembers the last sign-in email for the login prompt.
	LastEmailMetadataKey = "last_email"

	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
)
