package reconcile

import "time"

// Config holds the tunable reconciliation settings.
type Config struct {
	// AbsenceGraceDays expires a no-deadline posting after it has been
	// missing from the scrape for this many days. Zero keeps such
	// postings forever.
	AbsenceGraceDays int `mapstructure:"absence_grace_days" default:"0"`
}

// Options converts the configuration to engine options.
func (c Config) Options() Options {
	return Options{
		AbsenceGrace: time.Duration(c.AbsenceGraceDays) * 24 * time.Hour,
	}
}
