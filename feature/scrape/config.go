package scrape

import "strings"

// Config holds configuration for the listing-page extractor.
type Config struct {
	// BaseURL is the listing site root.
	BaseURL string `mapstructure:"base_url" default:"https://www.givemeoc.com"`
	// StartPage is the first listing page to fetch (1-based).
	StartPage int `mapstructure:"start_page" default:"1"`
	// EndPage is the last listing page to fetch, inclusive.
	EndPage int `mapstructure:"end_page" default:"6"`
	// MaxPagesPerSession caps how many pages one session fetches before
	// pausing; the site throttles long paging sequences.
	MaxPagesPerSession int `mapstructure:"max_pages_per_session" default:"2"`
	// SessionPauseSeconds is the pause between sessions.
	SessionPauseSeconds int `mapstructure:"session_pause_seconds" default:"5"`
	// RequestsPerSecond paces requests within a session.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"0.5"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"`
	// TargetYears is a comma-separated list of graduation years; when set,
	// only rows whose target mentions one of them are kept. This is a
	// pre-filter applied before candidates reach the reconciliation core.
	TargetYears string `mapstructure:"target_years" default:""`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"20"`
}

// Years returns the configured target years as a slice.
func (c Config) Years() []string {
	if strings.TrimSpace(c.TargetYears) == "" {
		return nil
	}
	parts := strings.Split(c.TargetYears, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
