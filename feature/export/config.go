package export

// Config holds the spreadsheet export settings.
type Config struct {
	// XLSXPath is the workbook the active dataset is written to.
	XLSXPath string `mapstructure:"xlsx_path" default:"data/招聘信息.xlsx"`
	// CSVPath is the plain-text export location.
	CSVPath string `mapstructure:"csv_path" default:"data/postings.csv"`
}
