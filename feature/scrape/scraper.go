package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"jobwatch/core/posting"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ExtractionFailure reports a listing page that could not be fetched or
// parsed. The core never retries it; the caller decides what a partial
// scrape is worth.
type ExtractionFailure struct {
	// Page is the listing page number that failed.
	Page int
	// Err is the underlying cause.
	Err error
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("extract page %d: %v", e.Page, e.Err)
}

func (e *ExtractionFailure) Unwrap() error { return e.Err }

// Scraper fetches listing pages and yields raw posting candidates.
type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New creates a scraper for the configured site.
func New(cfg Config, logger *zap.Logger) *Scraper {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 20
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 0.5
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: time.Duration(timeout) * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

// FetchAll walks the configured page range in sessions and returns every
// candidate row in page order. On a page failure it returns the rows from
// the pages that did complete together with an *ExtractionFailure, so the
// caller can choose between a partial run and an abort.
func (s *Scraper) FetchAll(ctx context.Context) ([]posting.Raw, error) {
	start := s.cfg.StartPage
	if start < 1 {
		start = 1
	}
	end := s.cfg.EndPage
	if end < start {
		end = start
	}
	perSession := s.cfg.MaxPagesPerSession
	if perSession < 1 {
		perSession = 1
	}

	var all []posting.Raw

	for sessionStart := start; sessionStart <= end; sessionStart += perSession {
		sessionEnd := sessionStart + perSession - 1
		if sessionEnd > end {
			sessionEnd = end
		}

		rows, err := s.fetchSession(ctx, sessionStart, sessionEnd)
		all = append(all, rows...)
		if err != nil {
			return all, err
		}

		if sessionEnd < end && s.cfg.SessionPauseSeconds > 0 {
			s.logger.Debug("Pausing between sessions",
				zap.Int("seconds", s.cfg.SessionPauseSeconds))
			select {
			case <-ctx.Done():
				return all, &ExtractionFailure{Page: sessionEnd + 1, Err: ctx.Err()}
			case <-time.After(time.Duration(s.cfg.SessionPauseSeconds) * time.Second):
			}
		}
	}

	return all, nil
}

// fetchSession fetches one session's pages concurrently but reassembles
// the rows in page order, so identical scrapes produce identically ordered
// candidate sequences.
func (s *Scraper) fetchSession(ctx context.Context, first, last int) ([]posting.Raw, error) {
	perPage := make([][]posting.Raw, last-first+1)

	g, gctx := errgroup.WithContext(ctx)
	for page := first; page <= last; page++ {
		slot := page - first
		page := page

		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return &ExtractionFailure{Page: page, Err: err}
			}
			rows, err := s.fetchPage(gctx, page)
			if err != nil {
				return err
			}
			perPage[slot] = rows
			return nil
		})
	}

	err := g.Wait()

	var rows []posting.Raw
	for _, pageRows := range perPage {
		rows = append(rows, pageRows...)
	}
	return rows, err
}

func (s *Scraper) fetchPage(ctx context.Context, page int) ([]posting.Raw, error) {
	url := fmt.Sprintf("%s/?page=%d", s.cfg.BaseURL, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &ExtractionFailure{Page: page, Err: err}
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	res, err := s.hc.Do(req)
	if err != nil {
		return nil, &ExtractionFailure{Page: page, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, &ExtractionFailure{Page: page, Err: fmt.Errorf("status %d", res.StatusCode)}
	}

	rows, skipped, err := ParseListing(res.Body)
	if err != nil {
		return nil, &ExtractionFailure{Page: page, Err: err}
	}
	if skipped > 0 {
		s.logger.Warn("Skipped malformed listing rows",
			zap.Int("page", page), zap.Int("skipped", skipped))
	}

	kept := s.filterTargets(rows)
	s.logger.Info("Fetched listing page",
		zap.Int("page", page),
		zap.Int("rows", len(rows)),
		zap.Int("kept", len(kept)),
	)
	return kept, nil
}

// filterTargets applies the cohort-year pre-filter. Rows without a target
// are kept: absence of a cohort is not evidence of irrelevance.
func (s *Scraper) filterTargets(rows []posting.Raw) []posting.Raw {
	years := s.cfg.Years()
	if len(years) == 0 {
		return rows
	}

	kept := rows[:0:0]
	for _, row := range rows {
		if MatchesTarget(row.Target, years) {
			kept = append(kept, row)
		}
	}
	return kept
}
