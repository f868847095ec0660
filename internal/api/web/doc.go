// Package web serves the server-rendered HTML application: account
// management, the book library, custom categories and AI summaries.
//
// Routes follow the /{Controller}/{Action}/{id?} convention. State-changing
// requests are form POSTs protected by a per-session CSRF token.
package web
