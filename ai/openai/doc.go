// Package openai provides AI service implementations backed by
// OpenAI-compatible HTTP APIs.
//
// The embedder targets any OpenAI-compatible embedding endpoint (a local
// Ollama or vLLM server, or a hosted service). The generator targets an
// OpenAI-compatible chat-completion endpoint; the default configuration
// points it at the Hugging Face inference router.
//
// Use SharedProvider to obtain the process-wide provider: the underlying
// model and client handles are created once and reused across concurrent
// pipeline invocations.
package openai
