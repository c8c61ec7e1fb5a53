// Package logging wires log/slog with the handlers and helpers the exporter
// uses everywhere: a console handler for interactive runs, a JSON handler for
// machine-readable logs, component-scoped loggers, and attribute helpers.
package logging
