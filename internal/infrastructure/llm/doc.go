// Package llm implements summaries.Generator on top of a language-model
// server: Ollama's native chat endpoint or any OpenAI-compatible API.
package llm
