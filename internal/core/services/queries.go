package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

// QueriesHeading introduces the supplier-search section of a model answer.
const QueriesHeading = "Поисковые запросы"

var queryLine = regexp.MustCompile(`^\s*\d+\.\s*(.+?):\s*(.+)$`)

// markdown emphasis and heading characters tolerated around labels.
const markdownChars = "*_#`> "

// ParseSearchQueries extracts the enumerated "N. label: query" lines that
// follow the search-query heading. Non-matching lines are skipped. A missing
// heading yields nil.
func ParseSearchQueries(text string) []domain.SearchQuery {
	heading := strings.ToLower(QueriesHeading)
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), heading) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var out []domain.SearchQuery
	for _, line := range lines[start:] {
		m := queryLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label := strings.Trim(m[1], markdownChars)
		query := strings.Trim(m[2], markdownChars)
		if label == "" || query == "" {
			continue
		}
		out = append(out, domain.SearchQuery{Label: label, Query: query})
	}
	return out
}

// PaginateSummary splits text into pages of at most size characters for
// front-ends with a message length limit. Pages break after the last newline
// in the second half of a page when there is one. Concatenating the pages
// reproduces text.
func PaginateSummary(text string, size int) []string {
	if size <= 0 {
		size = domain.DefaultPageSize
	}
	if text == "" {
		return nil
	}

	runes := []rune(text)
	var pages []string
	for len(runes) > size {
		cut := size
		for i := size - 1; i >= size/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		pages = append(pages, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		pages = append(pages, string(runes))
	}
	return pages
}
