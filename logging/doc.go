// Package logging provides a tiny abstraction over slog so memmesh code can
// depend on a minimal Logger interface while callers plug in any structured
// logger. A NoOpLogger is the default everywhere: the library stays silent
// unless a logger is supplied.
package logging
