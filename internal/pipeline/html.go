package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"psikotes/internal"
	"psikotes/internal/util"
)

// ParseHTMLTable handles rosters pasted or exported as an HTML table. The
// first table with at least two rows is used; cells go through the shared
// header locator and record builder.
func ParseHTMLTable(html string, scanLimit int) (internal.ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return internal.ParseResult{}, err
	}

	var rows [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		trs := table.Find("tr")
		if trs.Length() < 2 {
			return true
		}
		trs.Each(func(_ int, tr *goquery.Selection) {
			cells := []string{}
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, util.NormalizeSpaces(cell.Text()))
			})
			rows = append(rows, cells)
		})
		return false
	})

	return buildResult(dropEmptyRows(rows), scanLimit)
}
