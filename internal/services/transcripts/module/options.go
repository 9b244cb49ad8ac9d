package module

import "scribe/internal/platform/config"

// Options configures the transcripts module
type Options struct {
	MaxChars  int
	PageLimit int
}

// FromConfig reads options from config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CORE_TRANSCRIPTS_")
	return Options{
		MaxChars:  cf.MayInt("MAX_CHARS", 200000),
		PageLimit: cf.MayInt("PAGE_LIMIT", 100),
	}
}
