// Package logger configures the process-wide structured logger.
package logger

import (
	"github.com/sirupsen/logrus"
)

// Init applies the configured level and format to the global logrus logger.
// Unknown levels fall back to info; format "json" switches to JSON output,
// anything else stays text.
func Init(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// For returns a logger entry tagged with the owning component.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
