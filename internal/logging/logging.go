// Package logging configura o logger global zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configura o logger global em JSON no stderr, com timestamp Unix.
// Nível desconhecido cai para info.
func Init(level string) zerolog.Logger {
	return setup(os.Stderr, level)
}

// InitConsole é para a CLI: saída legível em vez de JSON.
func InitConsole(level string) zerolog.Logger {
	return setup(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}, level)
}

func setup(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(ParseLevel(level))
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return log.Logger
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
