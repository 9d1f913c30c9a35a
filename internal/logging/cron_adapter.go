// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// CronLogger satisfies robfig/cron's cron.Logger interface.
// cron reports schedule bookkeeping at Info, which is logged at debug here so
// that a 24h job does not produce a line per wake-up.
type CronLogger struct {
	logger zerolog.Logger
}

// NewCronLogger wraps the global logger with component=cron.
func NewCronLogger() CronLogger {
	return CronLogger{logger: WithComponent("cron")}
}

// Info logs routine scheduler messages.
func (c CronLogger) Info(msg string, keysAndValues ...interface{}) {
	event := c.logger.Debug()
	addKeysAndValues(event, keysAndValues).Msg(msg)
}

// Error logs scheduler failures, including recovered job panics.
func (c CronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	event := c.logger.Error().Err(err)
	addKeysAndValues(event, keysAndValues).Msg(msg)
}

func addKeysAndValues(event *zerolog.Event, kv []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		event = event.Interface(key, kv[i+1])
	}
	return event
}
