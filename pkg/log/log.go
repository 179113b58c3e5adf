// Package log provides the logging interface used throughout dmgcore,
// backed by logrus rather than bare fmt.Printf.
package log

import "github.com/sirupsen/logrus"

// Logger is the logging surface every component depends on.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	l *logrus.Logger
}

// New returns a Logger backed by a text-formatted logrus.Logger: no colors,
// no timestamp, field order preserved.
func New() Logger {
	l := logrus.New()
	l.Level = logrus.DebugLevel
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return &logger{l: l}
}

func (l *logger) Infof(format string, args ...interface{})  { l.l.Infof(format, args...) }
func (l *logger) Errorf(format string, args ...interface{}) { l.l.Errorf(format, args...) }
func (l *logger) Debugf(format string, args ...interface{}) { l.l.Debugf(format, args...) }
