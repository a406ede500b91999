// Package log writes rover's diagnostic log through logrus.
//
// The terminal belongs to the TUI, so logs go to a dated file under the
// logs directory, and only when logs.write is enabled. Otherwise every call
// is discarded.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/gwillem/rover/pkg/config"
	"github.com/gwillem/rover/pkg/filesystem"
	"github.com/gwillem/rover/pkg/where"
)

var enabled bool

// Setup opens today's log file and applies format and level from config.
func Setup() error {
	enabled = viper.GetBool(config.LogsWrite)
	if !enabled {
		logrus.SetOutput(io.Discard)
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(config.LogsJSON) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(config.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	return nil
}

// Enabled reports whether log output is being written.
func Enabled() bool {
	return enabled
}

// WithField starts an entry with a single field.
func WithField(key string, value any) *logrus.Entry {
	return logrus.WithField(key, value)
}

// WithFields starts an entry with several fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

func Error(args ...any)                 { logrus.Error(args...) }
func Errorf(format string, args ...any) { logrus.Errorf(format, args...) }
func Warn(args ...any)                  { logrus.Warn(args...) }
func Warnf(format string, args ...any)  { logrus.Warnf(format, args...) }
func Info(args ...any)                  { logrus.Info(args...) }
func Infof(format string, args ...any)  { logrus.Infof(format, args...) }
func Debug(args ...any)                 { logrus.Debug(args...) }
func Debugf(format string, args ...any) { logrus.Debugf(format, args...) }
