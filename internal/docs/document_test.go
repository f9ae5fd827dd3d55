package docs

import "testing"

func sampleDocument() *Document {
	return &Document{
		ID: "doc-1",
		Body: []Element{
			{Paragraph: &Paragraph{Runs: []TextRun{
				{StartIndex: 1, EndIndex: 30, Content: "Republic of the Philippines\n"},
			}}},
			{Paragraph: &Paragraph{Runs: []TextRun{
				{StartIndex: 30, EndIndex: 52, Content: "This certifies <name>\n"},
			}}},
			{Table: &Table{Rows: []TableRow{
				{Cells: []TableCell{
					{Elements: []Element{
						{Paragraph: &Paragraph{Runs: []TextRun{
							{StartIndex: 60, EndIndex: 75, Content: "JUAN DELA CRUZ\n"},
						}}},
					}},
					{Elements: []Element{
						{Paragraph: &Paragraph{Runs: []TextRun{
							{StartIndex: 80, EndIndex: 90, Content: "<picture>\n"},
						}}},
					}},
				}},
			}}},
		},
	}
}

func TestFindTextInParagraph(t *testing.T) {
	doc := sampleDocument()

	r, ok := doc.FindFirst("<name>", false)
	if !ok {
		t.Fatalf("expected to find <name>")
	}
	if r.Start != 45 || r.End != 51 {
		t.Fatalf("unexpected range %+v", r)
	}
}

func TestFindTextInsideTableCell(t *testing.T) {
	doc := sampleDocument()

	ranges := doc.FindText("JUAN DELA CRUZ", false)
	if len(ranges) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(ranges))
	}
	if ranges[0].Start != 60 {
		t.Fatalf("unexpected start %d", ranges[0].Start)
	}

	if _, ok := doc.FindFirst("<picture>", false); !ok {
		t.Fatalf("expected to find <picture> inside table cell")
	}
}

func TestFindTextFoldsCase(t *testing.T) {
	doc := sampleDocument()

	if _, ok := doc.FindFirst("juan dela cruz", false); ok {
		t.Fatalf("case-sensitive search should not match")
	}
	if _, ok := doc.FindFirst("juan dela cruz", true); !ok {
		t.Fatalf("case-insensitive search should match")
	}
}

func TestFindTextMultipleOccurrences(t *testing.T) {
	doc := &Document{Body: []Element{
		{Paragraph: &Paragraph{Runs: []TextRun{
			{StartIndex: 1, EndIndex: 20, Content: "ana and ana again"},
		}}},
	}}

	ranges := doc.FindText("ana", false)
	if len(ranges) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(ranges))
	}
	if ranges[0].Start != 1 || ranges[1].Start != 9 {
		t.Fatalf("unexpected starts %+v", ranges)
	}
}

func TestFindTextMissing(t *testing.T) {
	doc := sampleDocument()
	if ranges := doc.FindText("<nonexistent>", false); ranges != nil {
		t.Fatalf("expected nil, got %+v", ranges)
	}
}
