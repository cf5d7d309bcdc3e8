package compressor

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.maxLineLength != 120 {
			t.Errorf("expected maxLineLength 120, got %d", p.maxLineLength)
		}
		if p.minLines != 30 {
			t.Errorf("expected minLines 30, got %d", p.minLines)
		}
		if p.truncateThreshold != 20000 || p.head != 10000 || p.tail != 5000 {
			t.Errorf("unexpected truncation %d/%d/%d", p.truncateThreshold, p.head, p.tail)
		}
		if p.targetLength != 15000 {
			t.Errorf("expected target length 15000, got %d", p.targetLength)
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		p := New(WithMaxLineLength(0), WithMinLines(-1), WithTruncation(10, 8, 8), WithKeywords(nil))
		if p.maxLineLength != 120 {
			t.Errorf("expected default maxLineLength, got %d", p.maxLineLength)
		}
		if p.minLines != 30 {
			t.Errorf("expected default minLines, got %d", p.minLines)
		}
		if p.truncateThreshold != 20000 {
			t.Errorf("expected default threshold, got %d", p.truncateThreshold)
		}
		if len(p.keywords) == 0 {
			t.Error("expected default keywords")
		}
	})

	t.Run("keywords lowered", func(t *testing.T) {
		p := New(WithKeywords([]string{" ГОСТ ", ""}))
		if len(p.keywords) != 1 || p.keywords[0] != "гост" {
			t.Errorf("unexpected keywords %q", p.keywords)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	if New().Name() != "compressor" {
		t.Errorf("expected name 'compressor', got '%s'", New().Name())
	}
}

func TestCompress_ShortKeywordTextUnchanged(t *testing.T) {
	text := "Требования к товару: бумага офисная А4\n" +
		"Количество: 100 пачек, цена за единицу 350 руб\n" +
		"Срок поставки: 10 рабочих дней с даты заключения контракта\n" +
		"Упаковка: заводская, маркировка по ГОСТ 17527-2020"
	if n := utf8.RuneCountInString(text); n < 150 || n > 250 {
		t.Fatalf("fixture should be about 200 characters, got %d", n)
	}

	got := New().Compress(text)
	if got != text {
		t.Errorf("expected text unchanged, got %q", got)
	}

	// Compressing again is a no-op.
	if again := New().Compress(got); again != got {
		t.Errorf("expected idempotent output, got %q", again)
	}
}

func TestCompress_FallbackWhenFewLinesQualify(t *testing.T) {
	var lines []string
	for i := 0; i < 100; i++ {
		if i%10 == 0 {
			lines = append(lines, fmt.Sprintf("Цена позиции %d", i))
		} else {
			lines = append(lines, fmt.Sprintf("Обычная строка номер %d", i))
		}
	}
	text := strings.Join(lines, "\n")

	got := New().Compress(text)

	if got != text {
		t.Errorf("expected all 100 lines, got %d lines", len(strings.Split(got, "\n")))
	}
}

func TestCompress_FiltersWhenEnoughLinesQualify(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("Требование %d: соответствие ГОСТ", i))
		lines = append(lines, fmt.Sprintf("Вода вода вода %d", i))
	}

	got := New().Compress(strings.Join(lines, "\n"))

	out := strings.Split(got, "\n")
	if len(out) != 40 {
		t.Fatalf("expected 40 kept lines, got %d", len(out))
	}
	for _, line := range out {
		if strings.HasPrefix(line, "Вода") {
			t.Errorf("filler line kept: %q", line)
		}
	}
}

func TestCompress_TabularLinesKept(t *testing.T) {
	p := New(WithMinLines(1))
	text := "1;Бумага;100;пачка\nпросто текст\na|b|c\nдва; разделителя; всего"

	got := p.Compress(text)

	if got != "1;Бумага;100;пачка" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestCompress_MixedSeparatorsCount(t *testing.T) {
	p := New(WithMinLines(1))

	got := p.Compress("a;b|c\td")

	if got != "a;b|c\td" {
		t.Errorf("expected mixed separators to qualify, got %q", got)
	}
}

func TestCompress_DeduplicatesCaseInsensitive(t *testing.T) {
	p := New(WithMinLines(1))
	text := "Срок поставки 10 дней\nСРОК ПОСТАВКИ 10 ДНЕЙ\nЦена 5 руб\nсрок поставки 10 дней"

	got := p.Compress(text)

	if got != "Срок поставки 10 дней\nЦена 5 руб" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestCompress_DropsLongAndEmptyLines(t *testing.T) {
	p := New(WithMinLines(1))
	long := "цена " + strings.Repeat("я", 120)
	cyrillic120 := "цена " + strings.Repeat("я", 115)
	text := "\n   \n" + long + "\n" + cyrillic120 + "\n"

	got := p.Compress(text)

	if got != cyrillic120 {
		t.Errorf("expected only the 120-character line, got %q", got)
	}
}

func TestCompress_FallbackUsesLengthFilteredLines(t *testing.T) {
	long := strings.Repeat("x", 121)
	text := "a\n\n" + long + "\nb"

	got := New().Compress(text)

	if got != "a\nb" {
		t.Errorf("expected step-one lines, got %q", got)
	}
}

func TestCompress_EmptyInput(t *testing.T) {
	if got := New().Compress(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestCompress_Truncation(t *testing.T) {
	var lines []string
	for i := 0; len(strings.Join(lines, "\n")) < 60000; i++ {
		lines = append(lines, fmt.Sprintf("Позиция %05d; количество; цена; срок", i))
	}
	text := strings.Join(lines, "\n")

	got := New().Compress(text)

	runes := []rune(text)
	want := string(runes[:10000]) + EllipsisMarker + string(runes[len(runes)-5000:])
	if got != want {
		t.Errorf("unexpected truncation: got %d runes", utf8.RuneCountInString(got))
	}
	if !strings.HasPrefix(got, lines[0]) {
		t.Error("head should start with the first line")
	}
	if !strings.HasSuffix(got, lines[len(lines)-1]) {
		t.Error("tail should end with the last line")
	}
}

func TestCompress_TruncationCustom(t *testing.T) {
	p := New(WithMinLines(1), WithTruncation(10, 3, 2))

	got := p.Compress("абвгдежзийклм")

	if got != "абв"+EllipsisMarker+"лм" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestProcessor_Process(t *testing.T) {
	got, err := New().Process(context.Background(), "Цена: 1 руб")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Цена: 1 руб" {
		t.Errorf("unexpected output %q", got)
	}
}

func BenchmarkCompress(b *testing.B) {
	text := strings.Repeat("Технические требования; ГОСТ 123; упаковка\nпрочий текст документа\n", 5000)
	p := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Compress(text)
	}
}
