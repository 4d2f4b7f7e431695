package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the log format, level and optional file sink
type Options struct {
	Level string // logrus level name, info when empty or unknown
	File  string // rotating log file, stdout only when empty
	JSON  bool   // JSON lines instead of text
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup configures the standard logrus logger. The returned closer flushes the file sink.
func Setup(opts Options) io.Closer {
	if opts.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if opts.File == "" {
		logrus.SetOutput(os.Stdout)
		return nopCloser{}
	}
	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    64, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, file))
	return file
}
