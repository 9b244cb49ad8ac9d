package module

import "scribe/internal/platform/config"

// Options configures the corrections module
type Options struct {
	PageLimit int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CORE_CORRECTIONS_")
	return Options{
		PageLimit: cf.MayInt("PAGE_LIMIT", 500),
	}
}
