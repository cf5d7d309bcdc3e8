package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tendera/internal/core/domain"
)

func TestParseSearchQueries(t *testing.T) {
	summary := "Поисковые запросы:\n1. Цемент: цемент м500 купить оптом\n2. Песок: песок речной цена"

	queries := ParseSearchQueries(summary)

	require.Len(t, queries, 2)
	assert.Equal(t, domain.SearchQuery{Label: "Цемент", Query: "цемент м500 купить оптом"}, queries[0])
	assert.Equal(t, domain.SearchQuery{Label: "Песок", Query: "песок речной цена"}, queries[1])

	result := domain.AnalysisResult{SearchQueries: queries}
	assert.Equal(t, map[string]string{
		"Цемент": "цемент м500 купить оптом",
		"Песок":  "песок речной цена",
	}, result.QueriesMap())
}

func TestParseSearchQueries_NoHeading(t *testing.T) {
	summary := "1. Цемент: цемент м500\n2. Песок: песок речной"

	assert.Empty(t, ParseSearchQueries(summary))
	assert.Empty(t, ParseSearchQueries(""))
}

func TestParseSearchQueries_IgnoresItemsBeforeHeading(t *testing.T) {
	summary := strings.Join([]string{
		"1. **Резюме закупки**: поставка цемента",
		"2. Риски: штрафы",
		"",
		"Поисковые запросы:",
		"1. Цемент: цемент м500",
	}, "\n")

	queries := ParseSearchQueries(summary)

	require.Len(t, queries, 1)
	assert.Equal(t, "Цемент", queries[0].Label)
}

func TestParseSearchQueries_Markdown(t *testing.T) {
	tests := []struct {
		name    string
		summary string
		want    []domain.SearchQuery
	}{
		{
			name:    "bold heading",
			summary: "**Поисковые запросы:**\n1. **Цемент**: цемент м500",
			want:    []domain.SearchQuery{{Label: "Цемент", Query: "цемент м500"}},
		},
		{
			name:    "markdown heading lowercase",
			summary: "### поисковые запросы\n1. Песок: песок речной\n",
			want:    []domain.SearchQuery{{Label: "Песок", Query: "песок речной"}},
		},
		{
			name:    "numbered heading",
			summary: "4. **Поисковые запросы:**\n1. Щебень: щебень гранитный 20-40",
			want:    []domain.SearchQuery{{Label: "Щебень", Query: "щебень гранитный 20-40"}},
		},
		{
			name:    "windows line endings",
			summary: "Поисковые запросы:\r\n1. Цемент: цемент м500\r\n",
			want:    []domain.SearchQuery{{Label: "Цемент", Query: "цемент м500"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSearchQueries(tt.summary))
		})
	}
}

func TestParseSearchQueries_SkipsNonMatchingLines(t *testing.T) {
	summary := strings.Join([]string{
		"Поисковые запросы:",
		"По одной строке на позицию",
		"- Цемент: не нумерованная строка",
		"1. Цемент: цемент м500",
		"два. Песок: песок",
		"2. Без двоеточия",
		"3. Доска обрезная: доска 50x150: сосна",
	}, "\n")

	queries := ParseSearchQueries(summary)

	require.Len(t, queries, 2)
	assert.Equal(t, "Цемент", queries[0].Label)
	assert.Equal(t, "Доска обрезная", queries[1].Label)
	assert.Equal(t, "доска 50x150: сосна", queries[1].Query)
}

func TestParseSearchQueries_DuplicateLabelsLastWinsInMap(t *testing.T) {
	summary := "Поисковые запросы:\n1. Цемент: первый\n2. Цемент: второй"

	queries := ParseSearchQueries(summary)
	require.Len(t, queries, 2)

	result := domain.AnalysisResult{SearchQueries: queries}
	assert.Equal(t, "второй", result.QueriesMap()["Цемент"])
}

func TestPaginateSummary(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, PaginateSummary("", 10))
	})

	t.Run("short text is one page", func(t *testing.T) {
		assert.Equal(t, []string{"короткий"}, PaginateSummary("короткий", 4000))
	})

	t.Run("hard split without newlines", func(t *testing.T) {
		text := strings.Repeat("я", 25)
		pages := PaginateSummary(text, 10)
		require.Len(t, pages, 3)
		assert.Equal(t, strings.Repeat("я", 10), pages[0])
		assert.Equal(t, strings.Repeat("я", 5), pages[2])
	})

	t.Run("prefers newline in second half", func(t *testing.T) {
		text := "абвгдеж\nзийклмнопрст"
		pages := PaginateSummary(text, 10)
		assert.Equal(t, "абвгдеж\n", pages[0])
		assert.Equal(t, text, strings.Join(pages, ""))
	})

	t.Run("concatenation reproduces text", func(t *testing.T) {
		text := strings.Repeat("строка анализа тендера\n", 500)
		pages := PaginateSummary(text, domain.DefaultPageSize)
		assert.Equal(t, text, strings.Join(pages, ""))
		for _, p := range pages {
			assert.LessOrEqual(t, len([]rune(p)), domain.DefaultPageSize)
		}
	})

	t.Run("non-positive size uses default", func(t *testing.T) {
		text := strings.Repeat("a", domain.DefaultPageSize+1)
		assert.Len(t, PaginateSummary(text, 0), 2)
	})
}
