package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagesift/pagesift"
)

// Ensure TableExtractor implements pagesift.Extractor at compile time.
var _ pagesift.Extractor = (*TableExtractor)(nil)

// TableExtractor extracts rows from the table with the most rows on a
// page classified as tabular.
type TableExtractor struct{}

// NewTableExtractor creates a new TableExtractor.
func NewTableExtractor() *TableExtractor {
	return &TableExtractor{}
}

// Extract selects the table element with the maximum row count and turns
// each data row into one record. Header cell texts become field names:
// a dedicated thead wins, otherwise the first row is promoted to header
// and excluded from data. Empty header cells get positional col_<index>
// names. Rows whose cells are all empty after trimming are dropped; row
// order is preserved.
func (e *TableExtractor) Extract(markup string, baseURL string) ([]pagesift.Record, error) {
	doc, err := parse(markup)
	if err != nil {
		return nil, pagesift.Errorf(pagesift.EINVALID, "parsing markup: %v", err)
	}

	var target *goquery.Selection
	maxRows := -1
	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		if rows := t.Find("tr").Length(); rows > maxRows {
			maxRows = rows
			target = t
		}
	})
	if target == nil {
		return []pagesift.Record{}, nil
	}

	var headers []string
	fromHead := false
	head := target.Find("thead").First()
	if head.Length() > 0 {
		head.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(cell.Text()))
		})
		fromHead = len(headers) > 0
	}

	rows := target.Find("tr")
	if fromHead {
		// Header rows must not reappear as data.
		rows = rows.FilterFunction(func(_ int, row *goquery.Selection) bool {
			return row.ParentsFiltered("thead").Length() == 0
		})
	} else if rows.Length() > 0 {
		rows.Eq(0).Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(cell.Text()))
		})
		rows = rows.Slice(1, rows.Length())
	}

	for i, h := range headers {
		if h == "" {
			headers[i] = fmt.Sprintf("col_%d", i)
		}
	}

	var records []pagesift.Record
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("th, td")
		if cells.Length() == 0 {
			return
		}

		rec := pagesift.Record{}
		empty := true
		cells.Each(func(i int, cell *goquery.Selection) {
			if i >= len(headers) {
				return
			}
			v := strings.TrimSpace(cell.Text())
			rec[headers[i]] = v
			if v != "" {
				empty = false
			}
		})

		if !empty {
			records = append(records, rec)
		}
	})

	if records == nil {
		records = []pagesift.Record{}
	}
	return records, nil
}
