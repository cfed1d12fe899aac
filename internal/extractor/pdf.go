// Package extractor pulls plain text out of uploaded PDF statements. Bank
// PDFs vary wildly in how their text streams are encoded, so extraction
// tries several methods in decreasing order of layout fidelity and keeps the
// first result that looks like readable statement text.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ErrExtraction is returned when no method produced readable text, typically
// for scanned/image-based PDFs or custom font encodings.
var ErrExtraction = errors.New("no readable text could be extracted from the PDF")

// ExtractText returns the text of all pages joined with blank lines.
func ExtractText(data []byte) (string, error) {
	pages, err := extractPages(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if !isReadableText(pages) {
		return "", ErrExtraction
	}
	return strings.Join(pages, "\n\n"), nil
}

// extractPages runs the extraction methods in order. The pdf library panics
// on some malformed files, so the whole thing runs under recover.
func extractPages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, errors.New("pdf has no pages")
	}

	if pages = extractByRow(reader, numPages); isReadableText(pages) {
		return pages, nil
	}
	if pages = extractByContent(reader, numPages); isReadableText(pages) {
		return pages, nil
	}
	if text := extractPlainText(reader); text != "" {
		return []string{text}, nil
	}
	return pages, nil
}

// extractByRow uses the library's row grouping, which preserves tabular
// statement layout best.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}

		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByContent reads raw text objects and reconstructs rows from their
// coordinates: group by rounded Y, order left to right by X. PDF Y grows
// bottom-to-top, so rows sort descending.
func extractByContent(r *pdf.Reader, numPages int) []string {
	type textItem struct {
		x float64
		s string
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

			var parts []string
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					// wide gap means a column boundary
					parts = append(parts, "  ")
				}
				parts = append(parts, item.s)
				prevX = item.x
			}
			if line := strings.TrimSpace(strings.Join(parts, "")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractPlainText is the whole-document last resort.
func extractPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// statementWords appear in virtually every Argentine bank statement. Text
// containing none of them is almost certainly decode garbage.
var statementWords = []string{
	"banco", "resumen", "cuenta", "saldo", "fecha", "pago",
	"cuota", "consumo", "vencimiento", "total", "tarjeta",
	"movimiento", "importe", "periodo", "período", "cliente",
}

// isReadableText requires a minimum amount of text, a readable-character
// ratio above 60%, and at least one recognizable statement word.
func isReadableText(pages []string) bool {
	total := 0
	for _, p := range pages {
		total += len(strings.TrimSpace(p))
	}
	if total <= 50 {
		return false
	}
	if textQuality(pages) <= 0.6 {
		return false
	}

	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// textQuality is the ratio of plain readable characters to total characters.
// The check is deliberately strict ASCII plus currency symbols: identity
// encoded fonts decode to accented garbage that unicode.IsLetter accepts.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
				readable++
			case unicode.IsSpace(r):
				readable++
			case strings.ContainsRune(".,-/:;()'\"$%&@#!?+=*áéíóúñÁÉÍÓÚÑ", r):
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
