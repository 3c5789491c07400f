// Package license provides license-token verification.
//
// This is the development-build stub. A production build would parse the
// JWT payload, verify the RS256 signature against the vendor public key,
// and check the standard (exp, iat) and product claims (client_id,
// product_id) before accepting a token.
package license

import "os"

const (
	// DevToken is the only token the development stub accepts
	DevToken = "DEV-LICENSE-TRUE"

	// EnvToken names the environment variable holding the license token
	EnvToken = "CODE_INGEST_LICENSE"
)

// Verify reports whether token is a valid license token
func Verify(token string) bool {
	return token == DevToken
}

// FromEnv verifies the token in the CODE_INGEST_LICENSE environment
// variable. An unset variable is an invalid license.
func FromEnv() bool {
	return Verify(os.Getenv(EnvToken))
}

// Required reports whether license enforcement is enabled: any non-empty
// token in the environment turns enforcement on.
func Required() bool {
	return os.Getenv(EnvToken) != ""
}
