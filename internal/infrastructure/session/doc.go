// Package session implements signed cookie sessions with sliding idle
// expiry and the per-session store for catalog search results.
package session
