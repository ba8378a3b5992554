package notegrid

import "strings"

const (
	charComma = ','
	charQuote = '"'
)

// normalizeLineEndings converts \r\n and lone \r to \n
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// DetectPasteDelimiter picks the field delimiter of a pasted block: tab
// when the block contains a tab outside quoted fields, comma otherwise.
// spreadsheet applications put tabs between cells on the clipboard while
// exported text uses commas
func DetectPasteDelimiter(text string) rune {
	inQuotes := false
	atFieldStart := true
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case inQuotes:
			if ch == charQuote {
				if i+1 < len(text) && text[i+1] == charQuote {
					i++ // escaped quote
				} else {
					inQuotes = false
				}
			}
		case ch == charTab:
			return charTab
		case ch == charQuote && atFieldStart:
			inQuotes = true
		}
		atFieldStart = ch == charTab || ch == charComma || ch == charNewline || ch == charReturn
	}
	return charComma
}

// ReadDelimited splits delimited text into rows of fields. it is the
// inverse of the export encoding:
//   - line endings are normalized and one trailing line terminator is dropped
//   - a field starting with a double quote runs to the matching closing
//     quote, may span lines, and uses "" for a literal quote
//   - blank lines are kept as rows with a single empty field
//
// empty text yields one row with one empty field
func ReadDelimited(text string, delim rune) [][]string {
	text = normalizeLineEndings(text)
	text = strings.TrimSuffix(text, "\n")

	var rows [][]string
	var row []string
	var field strings.Builder

	inQuotes := false
	quoted := false // current field started with a quote

	endField := func() {
		row = append(row, field.String())
		field.Reset()
		quoted = false
	}
	endRow := func() {
		endField()
		rows = append(rows, row)
		row = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inQuotes {
			if ch == charQuote {
				if i+1 < len(runes) && runes[i+1] == charQuote {
					field.WriteRune(charQuote)
					i++
				} else {
					inQuotes = false
				}
				continue
			}
			field.WriteRune(ch)
			continue
		}

		switch {
		case ch == delim:
			endField()
		case ch == charNewline:
			endRow()
		case ch == charQuote && field.Len() == 0 && !quoted:
			inQuotes = true
			quoted = true
		default:
			// text after a closing quote is kept as is
			field.WriteRune(ch)
		}
	}
	endRow()

	return rows
}

// needsQuoting reports whether a field has to be wrapped in quotes to
// survive a round trip through ReadDelimited
func needsQuoting(field string, delim rune) bool {
	return strings.ContainsRune(field, delim) ||
		strings.ContainsAny(field, "\",\n\r\t")
}

// quoteField wraps a field in double quotes when needed, doubling any
// quotes inside it
func quoteField(field string, delim rune) string {
	if !needsQuoting(field, delim) {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// WriteDelimited joins rows of fields with the delimiter, one row per
// line and without a trailing newline
func WriteDelimited(rows [][]string, delim rune) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte(charNewline)
		}
		for j, field := range row {
			if j > 0 {
				b.WriteRune(delim)
			}
			b.WriteString(quoteField(field, delim))
		}
	}
	return b.String()
}
