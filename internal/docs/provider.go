// Package docs defines the document-editing provider surface the clearance
// generator drives, plus a structured view of live document content. The
// provider itself is an external black box; this package only fixes the
// contract: copy a template, batch-replace text, insert an inline image,
// style a range, read the content tree.
package docs

import "context"

// Replacement is one exact-text, case-sensitive substitution.
type Replacement struct {
	Match string
	Value string
}

// Size is an image size in points.
type Size struct {
	WidthPt  float64
	HeightPt float64
}

// TextStyle carries the style updates the generator applies. Only bold is
// needed today.
type TextStyle struct {
	Bold bool
}

// File is a flat listing entry from the provider's file store.
type File struct {
	ID   string
	Name string
}

// Provider is the capability surface consumed by the generator.
//
// Implementations must treat ReplaceAllText as a single batch: one call, all
// substitutions, so a partially-applied table is never visible in a document.
type Provider interface {
	// CopyTemplate copies templateID into folderID under name and returns the
	// new document ID.
	CopyTemplate(ctx context.Context, templateID, folderID, name string) (string, error)

	// ReplaceAllText applies every replacement as an exact literal match.
	ReplaceAllText(ctx context.Context, documentID string, replacements []Replacement) error

	// GetDocument returns the structured content tree for locating tokens and
	// literal text, including inside tables.
	GetDocument(ctx context.Context, documentID string) (*Document, error)

	// InsertInlineImage places an image at an absolute content index.
	InsertInlineImage(ctx context.Context, documentID string, index int64, imageURL string, size Size) error

	// UpdateTextStyle styles the half-open range [start, end).
	UpdateTextStyle(ctx context.Context, documentID string, start, end int64, style TextStyle) error

	// DeleteRange removes the half-open range [start, end) of content.
	DeleteRange(ctx context.Context, documentID string, start, end int64) error

	// ListFiles returns the flat file listing of a folder.
	ListFiles(ctx context.Context, folderID string) ([]File, error)

	// DocumentURL returns the shareable URL for a document ID.
	DocumentURL(documentID string) string

	// FileURL returns a fetchable content URL for a stored file (used as the
	// image source for inline insertion).
	FileURL(fileID string) string
}
