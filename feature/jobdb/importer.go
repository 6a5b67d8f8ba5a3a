package jobdb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"jobwatch/core/posting"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Stats summarizes one import run.
type Stats struct {
	Total   int
	Added   int
	Skipped int
}

// Filter narrows a job query. Zero-value fields are ignored.
type Filter struct {
	Target   string
	Location string
	Skill    string
}

// Importer copies posting records into the relational mirror.
type Importer struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewImporter migrates the schema and returns an importer bound to db.
func NewImporter(db *gorm.DB, logger *zap.Logger) (*Importer, error) {
	if err := db.AutoMigrate(&Job{}, &JobSkill{}); err != nil {
		return nil, fmt.Errorf("migrate job schema: %w", err)
	}
	return &Importer{db: db, logger: logger}, nil
}

// Import inserts every record not yet present. Existing rows are left
// untouched and counted as skipped; a row that fails to insert is also
// skipped rather than aborting the run.
func (i *Importer) Import(ctx context.Context, records map[string]posting.Record) (Stats, error) {
	stats := Stats{Total: len(records)}

	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		rec := records[key]

		var existing Job
		err := i.db.WithContext(ctx).Select("id").First(&existing, "id = ?", key).Error
		switch {
		case err == nil:
			stats.Skipped++
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return stats, fmt.Errorf("look up job %s: %w", key, err)
		}

		job := jobFromRecord(key, rec)
		if err := i.db.WithContext(ctx).Create(&job).Error; err != nil {
			stats.Skipped++
			i.logger.Warn("Failed to import job",
				zap.String("id", key),
				zap.String("company", rec.Company),
				zap.Error(err),
			)
			continue
		}
		stats.Added++
	}

	i.logger.Info("Job import finished",
		zap.Int("total", stats.Total),
		zap.Int("added", stats.Added),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

// Query returns jobs matching the filter, most recently seen first,
// with their skill tags loaded.
func (i *Importer) Query(ctx context.Context, filter Filter) ([]Job, error) {
	q := i.db.WithContext(ctx).Model(&Job{}).Preload("Skills")

	if filter.Target != "" {
		q = q.Where("target LIKE ?", "%"+filter.Target+"%")
	}
	if filter.Location != "" {
		q = q.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.Skill != "" {
		q = q.Joins("JOIN job_skills ON job_skills.job_id = jobs.id").
			Where("job_skills.skill_tag = ?", filter.Skill)
	}

	var jobs []Job
	if err := q.Order("last_seen DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	return jobs, nil
}

// CleanStale deletes jobs not seen for more than the given number of
// days and returns how many were removed. Skill rows go with them.
func (i *Importer) CleanStale(ctx context.Context, days int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -days)

	res := i.db.WithContext(ctx).
		Where("last_seen < ?", threshold).
		Delete(&Job{})
	if res.Error != nil {
		return 0, fmt.Errorf("clean stale jobs: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		i.db.WithContext(ctx).
			Where("job_id NOT IN (?)", i.db.Model(&Job{}).Select("id")).
			Delete(&JobSkill{})
	}
	return res.RowsAffected, nil
}

func jobFromRecord(key string, rec posting.Record) Job {
	job := Job{
		ID:              key,
		Company:         rec.Company,
		CompanyType:     rec.CompanyType,
		Location:        rec.Location,
		RecruitmentType: rec.CategoryTag,
		Target:          rec.Target,
		Position:        rec.Title,
		UpdateTime:      rec.UpdateTime,
		Deadline:        rec.DeadlineRaw,
		Links:           rec.DetailURL,
		Notice:          rec.NoticeURL,
		Referral:        rec.Referral,
		Notes:           rec.Notes,
		FirstSeen:       rec.FirstSeenAt,
		LastSeen:        rec.LastSeenAt,
	}
	for _, skill := range ExtractSkills(rec.Title) {
		job.Skills = append(job.Skills, JobSkill{
			ID:       key + "-" + skill,
			JobID:    key,
			SkillTag: skill,
		})
	}
	return job
}
