// Package logging builds the zerolog logger shared by the service.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing to stdout at the given level. Pretty switches
// from JSON lines to zerolog's console writer.
func New(level string, pretty bool) (zerolog.Logger, error) {
	return NewWithWriter(os.Stdout, level, pretty)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string, pretty bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "productapi").Logger(), nil
}
