// Package logging configures the process-wide logrus logger.
package logging

import (
	log "github.com/sirupsen/logrus"
)

// Configure sets the log level and formatter. Unknown levels fall back to info.
func Configure(level string, production bool) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("unknown log level %q, using info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if production {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
