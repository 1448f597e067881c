package api

import "github.com/rs/zerolog/log"

// restyLogger routes resty's internal messages into zerolog. Failed calls
// are reported by the callers, so resty's own errors stay at warn.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	log.Warn().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	log.Warn().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	log.Debug().Str("component", "resty").Msgf(format, v...)
}
