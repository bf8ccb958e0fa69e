// Package narrative defines the generator capability the engine invokes to
// resolve actions into story text, plus the OpenAI-backed implementation.
package narrative
