package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"psikotes/internal"
)

const DefaultHeaderScanLines = 10

var ErrEmptyInput = errors.New("input contains no rows")

type HeaderNotFoundError struct {
	Expected []string
	Lines    int
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("header row not found (%d lines scanned), expected columns: %s", e.Lines, strings.Join(e.Expected, ", "))
}

func ParseCSV(text string, scanLimit int) (internal.ParseResult, error) {
	lines := splitLines(text)
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, SplitCSVLine(line))
	}
	return buildResult(rows, scanLimit)
}

// SplitCSVLine is a quote-aware comma splitter. A doubled quote inside a
// quoted field emits one literal quote; an unterminated quote swallows the
// rest of the line. It never fails.
func SplitCSVLine(line string) []string {
	fields := make([]string, 0, 8)
	var field strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(ch)
		}
	}
	return append(fields, field.String())
}

func buildResult(rows [][]string, scanLimit int) (internal.ParseResult, error) {
	if len(rows) == 0 {
		return internal.ParseResult{}, ErrEmptyInput
	}
	if scanLimit <= 0 {
		scanLimit = DefaultHeaderScanLines
	}

	headerIdx := findHeaderRow(rows, scanLimit)
	if headerIdx < 0 {
		return internal.ParseResult{TotalRows: len(rows)}, &HeaderNotFoundError{Expected: MarkerLabels(), Lines: min(scanLimit, len(rows))}
	}

	headers := trimFields(rows[headerIdx])
	records := make([]internal.RawRecord, 0, len(rows)-headerIdx-1)
	for i := headerIdx + 1; i < len(rows); i++ {
		values := map[string]string{}
		empty := true
		for c, h := range headers {
			v := ""
			if c < len(rows[i]) {
				v = strings.TrimSpace(rows[i][c])
			}
			if v != "" {
				empty = false
			}
			values[h] = v
		}
		if empty {
			continue
		}
		records = append(records, internal.RawRecord{RowNumber: i - headerIdx, Values: values})
	}

	return internal.ParseResult{
		Headers:      headers,
		Records:      records,
		TotalRows:    len(records),
		HeaderRow:    headerIdx + 1,
		DataStartRow: headerIdx + 2,
	}, nil
}

func findHeaderRow(rows [][]string, scanLimit int) int {
	markers := map[string]struct{}{}
	for _, label := range MarkerLabels() {
		markers[label] = struct{}{}
	}

	limit := min(scanLimit, len(rows))
	for i := 0; i < limit; i++ {
		for _, field := range trimFields(rows[i]) {
			if _, ok := markers[field]; ok {
				return i
			}
		}
	}
	return -1
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func trimFields(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, strings.TrimSpace(f))
	}
	return out
}

func dropEmptyRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		keep := false
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				keep = true
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}
