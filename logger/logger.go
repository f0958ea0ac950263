package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to out (stdout when nil). Format "json" selects
// the JSON formatter, anything else the text formatter. Unknown levels fall
// back to info.
func New(level, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if out == nil {
		out = os.Stdout
	}
	log.SetOutput(out)
	return log
}

// Discard returns a logger that drops everything; tests and headless tools
// use it when they do not care about output.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
