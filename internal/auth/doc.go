// Package auth provides password hashing, JWT issuance/verification and the
// Gin middleware that resolves a bearer token to an acting user and checks
// role-based access.
package auth
