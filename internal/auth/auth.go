// Package auth holds the credential and bearer-token codecs.
//
// Passwords are hashed with bcrypt (a deliberately slow key-stretching
// function) and only ever compared, never reversed. Bearer tokens are
// HS256-signed JWTs; a fragment derived from the token signature keys
// the server-side record that makes tokens revocable before expiry.
package auth
