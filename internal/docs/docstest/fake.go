// Package docstest provides an in-memory docs.Provider for unit tests. It
// keeps document contents as plain text, records every call in order, and can
// inject rate-limit failures, which is enough to assert the generator's
// sequencing and retry behavior without a live provider.
package docstest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"barangay/internal/docs"
	"barangay/pkg/platform/sentinel"
)

// Fake implements docs.Provider backed by maps.
type Fake struct {
	mu sync.Mutex

	templates map[string]string // template ID -> text
	documents map[string]string // document ID -> text
	files     map[string][]docs.File

	nextID int

	// Calls records method names in invocation order.
	Calls []string
	// Replacements records every batch passed to ReplaceAllText.
	Replacements [][]docs.Replacement
	// InsertedImages records image URLs passed to InsertInlineImage.
	InsertedImages []string
	// StyledRanges records ranges passed to UpdateTextStyle.
	StyledRanges []docs.Range

	// CopyRateLimits makes the first N CopyTemplate calls fail with
	// sentinel.ErrRateLimited before succeeding.
	CopyRateLimits int
	// CopyErr, when set, makes CopyTemplate fail unconditionally.
	CopyErr error
	// StyleErr, when set, makes UpdateTextStyle fail.
	StyleErr error
}

// New builds a Fake with the given template texts.
func New(templates map[string]string) *Fake {
	return &Fake{
		templates: templates,
		documents: make(map[string]string),
		files:     make(map[string][]docs.File),
	}
}

// AddFile registers a file in a folder listing.
func (f *Fake) AddFile(folderID, fileID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[folderID] = append(f.files[folderID], docs.File{ID: fileID, Name: name})
}

// Text returns the current text of a document.
func (f *Fake) Text(documentID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.documents[documentID]
}

func (f *Fake) record(call string) {
	f.Calls = append(f.Calls, call)
}

func (f *Fake) CopyTemplate(_ context.Context, templateID, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CopyTemplate")

	if f.CopyErr != nil {
		return "", f.CopyErr
	}
	if f.CopyRateLimits > 0 {
		f.CopyRateLimits--
		return "", sentinel.ErrRateLimited
	}
	text, ok := f.templates[templateID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	f.nextID++
	id := fmt.Sprintf("doc-%d", f.nextID)
	f.documents[id] = text
	return id, nil
}

func (f *Fake) ReplaceAllText(_ context.Context, documentID string, replacements []docs.Replacement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ReplaceAllText")

	text, ok := f.documents[documentID]
	if !ok {
		return sentinel.ErrNotFound
	}
	f.Replacements = append(f.Replacements, replacements)
	for _, rep := range replacements {
		text = strings.ReplaceAll(text, rep.Match, rep.Value)
	}
	f.documents[documentID] = text
	return nil
}

func (f *Fake) GetDocument(_ context.Context, documentID string) (*docs.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetDocument")

	text, ok := f.documents[documentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	// One paragraph, one run, content starting at index 1 like the live body.
	return &docs.Document{
		ID: documentID,
		Body: []docs.Element{
			{Paragraph: &docs.Paragraph{Runs: []docs.TextRun{
				{StartIndex: 1, EndIndex: 1 + int64(len(text)), Content: text},
			}}},
		},
	}, nil
}

func (f *Fake) InsertInlineImage(_ context.Context, documentID string, _ int64, imageURL string, _ docs.Size) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertInlineImage")

	if _, ok := f.documents[documentID]; !ok {
		return sentinel.ErrNotFound
	}
	f.InsertedImages = append(f.InsertedImages, imageURL)
	return nil
}

func (f *Fake) UpdateTextStyle(_ context.Context, documentID string, start, end int64, _ docs.TextStyle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateTextStyle")

	if f.StyleErr != nil {
		return f.StyleErr
	}
	if _, ok := f.documents[documentID]; !ok {
		return sentinel.ErrNotFound
	}
	f.StyledRanges = append(f.StyledRanges, docs.Range{Start: start, End: end})
	return nil
}

func (f *Fake) DeleteRange(_ context.Context, documentID string, start, end int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteRange")

	text, ok := f.documents[documentID]
	if !ok {
		return sentinel.ErrNotFound
	}
	from := int(start - 1)
	to := int(end - 1)
	if from < 0 || to > len(text) || from > to {
		return sentinel.ErrInvalidState
	}
	f.documents[documentID] = text[:from] + text[to:]
	return nil
}

func (f *Fake) ListFiles(_ context.Context, folderID string) ([]docs.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListFiles")
	return f.files[folderID], nil
}

func (f *Fake) DocumentURL(documentID string) string {
	return "https://docs.test/" + documentID
}

func (f *Fake) FileURL(fileID string) string {
	return "https://files.test/" + fileID
}
