package module

import "scribe/internal/platform/config"

// Options configures the personalisation module
type Options struct {
	MinCount int
	// Events writes learned corrections to ClickHouse when a client is configured
	Events bool
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CORE_PERSONALIZE_")
	return Options{
		MinCount: cf.MayInt("MIN_COUNT", 2),
		Events:   cf.MayBool("EVENTS", true),
	}
}
