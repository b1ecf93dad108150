package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"github.com/vancomm/minefield/internal/config"
)

// New builds the process logger. Development mode logs coloured text at
// debug level or lower, otherwise entries are JSON. When cfg.File is set,
// entries are also written to a rotated log file.
func New(cfg config.Log, development bool) (*logrus.Logger, error) {
	return newLogger(os.Stderr, cfg, development)
}

func newLogger(out io.Writer, cfg config.Log, development bool) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(out)
	if development {
		level = max(level, logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	log.SetLevel(level)

	if cfg.File != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to open log file %s: %w", cfg.File, err)
		}
		log.AddHook(hook)
	}

	return log, nil
}
