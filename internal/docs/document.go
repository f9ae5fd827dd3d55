package docs

import "strings"

// Document is a provider content tree flattened to what the generator needs:
// paragraphs and tables carrying text runs with absolute index ranges.
type Document struct {
	ID   string
	Body []Element
}

// Element is a tagged union: exactly one of Paragraph or Table is set.
type Element struct {
	Paragraph *Paragraph
	Table     *Table
}

// Paragraph is a sequence of text runs.
type Paragraph struct {
	Runs []TextRun
}

// TextRun is a contiguous span of document text. EndIndex is exclusive.
type TextRun struct {
	StartIndex int64
	EndIndex   int64
	Content    string
}

// Table nests further elements inside cells.
type Table struct {
	Rows []TableRow
}

type TableRow struct {
	Cells []TableCell
}

type TableCell struct {
	Elements []Element
}

// Range is a half-open [Start, End) span of document content.
type Range struct {
	Start int64
	End   int64
}

// ForEachRun visits every text run in body order, descending into table cells.
// The visitor returns false to stop early.
func (d *Document) ForEachRun(fn func(TextRun) bool) {
	walkElements(d.Body, fn)
}

func walkElements(elements []Element, fn func(TextRun) bool) bool {
	for _, el := range elements {
		switch {
		case el.Paragraph != nil:
			for _, run := range el.Paragraph.Runs {
				if !fn(run) {
					return false
				}
			}
		case el.Table != nil:
			for _, row := range el.Table.Rows {
				for _, cell := range row.Cells {
					if !walkElements(cell.Elements, fn) {
						return false
					}
				}
			}
		}
	}
	return true
}

// FindText returns the ranges of every occurrence of text within single runs,
// in document order. foldCase matches case-insensitively. Occurrences split
// across run boundaries are not found; placeholder tokens and names are always
// written as one run in practice.
func (d *Document) FindText(text string, foldCase bool) []Range {
	if text == "" {
		return nil
	}
	needle := text
	if foldCase {
		needle = strings.ToLower(needle)
	}

	var ranges []Range
	d.ForEachRun(func(run TextRun) bool {
		content := run.Content
		if foldCase {
			content = strings.ToLower(content)
		}
		offset := 0
		for {
			i := strings.Index(content[offset:], needle)
			if i < 0 {
				break
			}
			start := run.StartIndex + int64(offset+i)
			ranges = append(ranges, Range{Start: start, End: start + int64(len(needle))})
			offset += i + len(needle)
		}
		return true
	})
	return ranges
}

// FindFirst returns the first occurrence of text, or ok=false.
func (d *Document) FindFirst(text string, foldCase bool) (Range, bool) {
	ranges := d.FindText(text, foldCase)
	if len(ranges) == 0 {
		return Range{}, false
	}
	return ranges[0], true
}
