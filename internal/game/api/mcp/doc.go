// Package mcp exposes the table engine over the Model Context Protocol.
//
// Tools cover every table event (submit, skip, scene, reset) plus read-only
// lookups, and the table://state resource publishes the current session
// snapshot for clients that prefer resources over tool calls.
package mcp
