// Package driving declares the interfaces the CLI and TUI drive the
// application through. The implementations live in internal/core/services.
package driving
