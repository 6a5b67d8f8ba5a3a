package dataset

// Config holds configuration for the dataset store.
type Config struct {
	// Path is the dataset file location.
	Path string `mapstructure:"path" default:"data/postings.json"`
	// ReportPath is where the latest run report is persisted.
	ReportPath string `mapstructure:"report_path" default:"data/report.json"`
}
