package jobdb

import "time"

// Job is one imported posting.
type Job struct {
	ID              string `gorm:"primaryKey;size:100"`
	Company         string `gorm:"size:100;not null;index:idx_company"`
	CompanyType     string `gorm:"size:50"`
	Location        string `gorm:"size:100"`
	RecruitmentType string `gorm:"size:50"`
	Target          string `gorm:"size:100;index:idx_target"`
	Position        string `gorm:"type:text;not null"`
	// UpdateTime and Deadline keep the site's original strings; parsing
	// happens upstream and unparseable values are worth preserving.
	UpdateTime string `gorm:"size:50"`
	Deadline   string `gorm:"size:50"`
	Links      string `gorm:"size:255"`
	Notice     string `gorm:"size:255"`
	Referral   string `gorm:"size:100"`
	Notes      string `gorm:"type:text"`
	FirstSeen  time.Time
	LastSeen   time.Time `gorm:"index:idx_last_seen"`
	CreatedAt  time.Time

	Skills []JobSkill `gorm:"constraint:OnDelete:CASCADE"`
}

// JobSkill is one skill tag extracted from a job's position title.
type JobSkill struct {
	ID       string `gorm:"primaryKey;size:150"`
	JobID    string `gorm:"size:100;not null;index:idx_job_skill"`
	SkillTag string `gorm:"size:50;not null;index:idx_skill_tag"`
}
