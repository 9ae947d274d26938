package commands

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/swagg-dev/swagg/parser"
)

// zerologAdapter implements parser.Logger on top of zerolog. Attributes
// are the key-value pairs of the parser.Logger convention.
type zerologAdapter struct {
	l zerolog.Logger
}

var _ parser.Logger = zerologAdapter{}

func newLogger(out io.Writer, level zerolog.Level) zerologAdapter {
	l := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
	return zerologAdapter{l: l}
}

func (z zerologAdapter) Debug(msg string, attrs ...any) { z.l.Debug().Fields(attrs).Msg(msg) }
func (z zerologAdapter) Info(msg string, attrs ...any)  { z.l.Info().Fields(attrs).Msg(msg) }
func (z zerologAdapter) Warn(msg string, attrs ...any)  { z.l.Warn().Fields(attrs).Msg(msg) }
func (z zerologAdapter) Error(msg string, attrs ...any) { z.l.Error().Fields(attrs).Msg(msg) }

func (z zerologAdapter) With(attrs ...any) parser.Logger {
	return zerologAdapter{l: z.l.With().Fields(attrs).Logger()}
}
