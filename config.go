package taskwake

import (
	"github.com/joeycumines/logiface"
)

const defaultNotifyValue = 1

// Config holds the options shared by TaskHandle and Tasks.
type Config struct {
	// logger receives diagnostics. Nil disables logging.
	logger *logiface.Logger[logiface.Event]

	// notifyValue is the payload word notifiers pass to Platform.Notify.
	notifyValue uint32
}

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(logger *logiface.Logger[logiface.Event]) func(*Config) {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithNotifyValue sets the payload notifiers deliver with each notification.
// Zero is ignored, since a zero payload is indistinguishable from no
// notification on platforms that accumulate the value.
func WithNotifyValue(value uint32) func(*Config) {
	return func(c *Config) {
		if value != 0 {
			c.notifyValue = value
		}
	}
}

func newConfig(options []func(*Config)) Config {
	c := Config{notifyValue: defaultNotifyValue}
	for _, o := range options {
		if o != nil {
			o(&c)
		}
	}
	return c
}
