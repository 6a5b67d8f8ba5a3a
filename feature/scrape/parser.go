package scrape

import (
	"fmt"
	"io"
	"strings"

	"jobwatch/core/posting"

	"github.com/PuerkitoBio/goquery"
)

// ParseListing extracts posting candidates from a listing page body.
// Rows missing their company or position cell are dropped and counted
// in skipped rather than aborting the whole page.
func ParseListing(body io.Reader) ([]posting.Raw, int, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, 0, fmt.Errorf("parse listing html: %w", err)
	}

	table := doc.Find("table.crt-table")
	if table.Length() == 0 {
		return nil, 0, fmt.Errorf("listing table not found")
	}

	var rows []posting.Raw
	skipped := 0

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		raw := posting.Raw{
			Company:     cellText(tr, "td.crt-col-company"),
			CompanyType: cellText(tr, "td.crt-col-type"),
			Location:    cellText(tr, "td.crt-col-location"),
			Category:    cellText(tr, "td.crt-col-recruitment-type"),
			Target:      cellText(tr, "td.crt-col-target"),
			Title:       cellText(tr, "td.crt-col-position"),
			UpdateTime:  cellText(tr, "td.crt-col-update-time"),
			Deadline:    cellText(tr, "td.crt-col-deadline"),
			DetailURL:   cellHref(tr, "td.crt-col-links a"),
			NoticeURL:   cellHref(tr, "td.crt-col-notice a"),
			Referral:    cellText(tr, "td.crt-col-referral"),
			Notes:       cellText(tr, "td.crt-col-notes"),
		}

		if strings.TrimSpace(raw.Company) == "" || strings.TrimSpace(raw.Title) == "" {
			skipped++
			return
		}
		rows = append(rows, raw)
	})

	return rows, skipped, nil
}

// MatchesTarget reports whether a cohort target mentions any of the
// configured years. Empty targets always match.
func MatchesTarget(target string, years []string) bool {
	if strings.TrimSpace(target) == "" {
		return true
	}
	for _, year := range years {
		if strings.Contains(target, year) {
			return true
		}
	}
	return false
}

func cellText(tr *goquery.Selection, selector string) string {
	return strings.TrimSpace(tr.Find(selector).First().Text())
}

func cellHref(tr *goquery.Selection, selector string) string {
	href, _ := tr.Find(selector).First().Attr("href")
	return strings.TrimSpace(href)
}
