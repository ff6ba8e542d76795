// Package applog builds the structured logger shared by the ethabi CLI
// commands, one *logrus.Entry per component so every line carries its
// origin without each call site repeating it.
package applog

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger scoped to component, configured from level/format
// (both case-insensitive; invalid values fall back to sane defaults).
func New(component, level, format string) *logrus.Entry {
	base := logrus.New()
	base.SetOutput(os.Stderr)

	if strings.EqualFold(format, "json") {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	return base.WithField("component", component)
}
