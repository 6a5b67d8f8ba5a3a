package api

import (
	"jobwatch/core/dataset"
	"jobwatch/core/posting"
	"jobwatch/core/report"
	"jobwatch/feature/export"

	"go.uber.org/zap"
)

// Service reads the dataset and report files for the HTTP handlers.
type Service struct {
	store      *dataset.Store
	reportPath string
	logger     *zap.Logger
}

// NewService creates the read-only dataset service.
func NewService(store *dataset.Store, reportPath string, logger *zap.Logger) *Service {
	return &Service{store: store, reportPath: reportPath, logger: logger}
}

// ListPostings returns every active posting, newest activity first.
func (s *Service) ListPostings() ([]posting.Record, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return export.Flatten(records), nil
}

// GetPosting returns one posting by identity key.
func (s *Service) GetPosting(key string) (posting.Record, bool, error) {
	records, err := s.store.Load()
	if err != nil {
		return posting.Record{}, false, err
	}
	rec, ok := records[key]
	return rec, ok, nil
}

// LatestReport returns the report persisted by the most recent run.
func (s *Service) LatestReport() (report.Report, error) {
	return report.Load(s.reportPath)
}
