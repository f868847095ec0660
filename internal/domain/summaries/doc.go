// Package summaries holds the AI summary entity attached to every saved book
// and the contracts for generating, storing and serving summaries.
package summaries
