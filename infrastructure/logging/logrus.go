// Package logging adapts the process-wide logrus logger to the injected
// domain.Logger capability used by the classifiers.
package logging

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/versiongate/domain"
)

// LogrusLogger forwards to the standard logrus singleton.
type LogrusLogger struct{}

// NewLogrusLogger creates the logrus-backed domain logger.
func NewLogrusLogger() domain.Logger {
	return &LogrusLogger{}
}

func (l *LogrusLogger) Debugf(format string, args ...any) { logger.Debugf(format, args...) }
func (l *LogrusLogger) Infof(format string, args ...any)  { logger.Infof(format, args...) }
func (l *LogrusLogger) Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func (l *LogrusLogger) Errorf(format string, args ...any) { logger.Errorf(format, args...) }
