package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

func setupLogging(stderr io.Writer, verbose bool, logFile string) {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}}
	if logFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    1,
			MaxBackups: 2,
		})
	}

	log.Logger = log.Output(io.MultiWriter(writers...)).
		With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		enableDebug()
	}
}

func enableDebug() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}
