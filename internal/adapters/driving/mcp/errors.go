// Package mcp provides an MCP (Model Context Protocol) server adapter for cartvoice.
// It lets AI assistants interpret shopping commands, match products and
// apply voice commands to the cart.
package mcp

import "errors"

// ErrMissingVoiceService is returned when the voice command service is not provided.
var ErrMissingVoiceService = errors.New("mcp: voice command service is required")

// ErrMatcherUnavailable is returned by the match tool when no matcher is configured.
var ErrMatcherUnavailable = errors.New("mcp: product matcher not configured")
