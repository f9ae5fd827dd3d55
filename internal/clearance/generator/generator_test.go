package generator

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangay/internal/clearance/policy"
	"barangay/internal/docs/docstest"
	dErrors "barangay/pkg/domain-errors"
)

var testNow = time.Date(2025, time.June, 21, 9, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestGenerator(fake *docstest.Fake, templates map[policy.Type]string) *Generator {
	g := New(fake, Config{
		Templates:     templates,
		FolderID:      "folder-out",
		PhotoFolderID: "folder-photos",
	}, testLogger())
	g.retryInterval = time.Millisecond
	return g
}

func TestGenerateSubstitutesPlaceholders(t *testing.T) {
	fake := docstest.New(map[string]string{
		"tpl-residency": "This certifies that <first> <middle> <last> of <purok> has resided here since <Year>.",
	})
	g := newTestGenerator(fake, map[policy.Type]string{policy.TypeResidency: "tpl-residency"})

	res, err := g.Generate(context.Background(), policy.Input{
		Type: policy.TypeResidency,
		Name: "Juan Santos Dela Cruz",
		Form: map[string]string{"purok": "Purok 5"},
		Now:  testNow,
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.DocumentID)
	assert.Equal(t, "https://docs.test/"+res.DocumentID, res.DocumentURL)

	text := fake.Text(res.DocumentID)
	assert.Contains(t, text, "Juan Santos Dela Cruz of Purok 5")
	assert.Contains(t, text, "since 2025")
	assert.NotContains(t, text, "<")
}

func TestGenerateUnconfiguredTypeAbortsBeforeProviderCalls(t *testing.T) {
	fake := docstest.New(nil)
	g := newTestGenerator(fake, map[policy.Type]string{policy.TypeResidency: "tpl-residency"})

	_, err := g.Generate(context.Background(), policy.Input{
		Type: policy.TypeIndigency,
		Name: "Juan Dela Cruz",
		Now:  testNow,
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Empty(t, fake.Calls, "no provider call may happen for an unconfigured type")
}

func TestGenerateImageInsertionPrecedesTextSubstitution(t *testing.T) {
	fake := docstest.New(map[string]string{
		"tpl-id": "<FULLNAME>\n<picture>\n<ADDRESS>",
	})
	fake.AddFile("folder-photos", "photo-1", "DELA-CRUZ-JUAN.jpg")
	g := newTestGenerator(fake, map[policy.Type]string{policy.TypeBarangayID: "tpl-id"})

	res, err := g.Generate(context.Background(), policy.Input{
		Type: policy.TypeBarangayID,
		Name: "Juan Dela Cruz",
		Now:  testNow,
	})
	require.NoError(t, err)

	insertAt := indexOf(fake.Calls, "InsertInlineImage")
	replaceAt := indexOf(fake.Calls, "ReplaceAllText")
	require.GreaterOrEqual(t, insertAt, 0, "image must be inserted")
	require.GreaterOrEqual(t, replaceAt, 0)
	assert.Less(t, insertAt, replaceAt, "image insertion must precede text substitution")

	// The picture token is consumed by image insertion, never by the batch.
	for _, batch := range fake.Replacements {
		for _, rep := range batch {
			assert.NotEqual(t, "<picture>", rep.Match)
			assert.NotEqual(t, "<pic>", rep.Match)
		}
	}
	assert.NotContains(t, fake.Text(res.DocumentID), "<picture>")
	assert.Equal(t, []string{"https://files.test/photo-1"}, fake.InsertedImages)
}

func TestGenerateRemovesPictureTokenWhenNoPhotoMatches(t *testing.T) {
	fake := docstest.New(map[string]string{
		"tpl-id": "<FULLNAME>\n<picture>\n<ADDRESS>",
	})
	g := newTestGenerator(fake, map[policy.Type]string{policy.TypeBarangayID: "tpl-id"})

	res, err := g.Generate(context.Background(), policy.Input{
		Type: policy.TypeBarangayID,
		Name: "Juan Dela Cruz",
		Now:  testNow,
	})
	require.NoError(t, err)
	assert.NotContains(t, fake.Text(res.DocumentID), "<picture>")
	assert.Empty(t, fake.InsertedImages)
}

func TestGenerateLegacyPictureToken(t *testing.T) {
	fake := docstest.New(map[string]string{
		"tpl-id": "<FULLNAME>\n<pic>\n<ADDRESS>",
	})
	fake.AddFile("folder-photos", "photo-9", "DELA-CRUZ-JUAN.png")
	g := newTestGenerator(fake, map[policy.Type]string{policy.TypeBarangayID: "tpl-id"})

	res, err := g.Generate(context.Background(), policy.Input{
		Type: policy.TypeBarangayID,
		Name: "Juan Dela Cruz",
		Now:  testNow,
	})
	require.NoError(t, err)
	assert.NotContains(t, fake.Text(res.DocumentID), "<pic>")
	assert.Len(t, fake.InsertedImages, 1)
}

func TestGenerateBoldsNameBestEffort(t *testing.T) {
	fake := docstest.New(map[string]string{
		"tpl-id": "ID of <FULLNAME> issued to <FULLNAME>",
	})
	g := newTestGenerator(fake, map[policy.Type]string{policy.TypeBarangayID: "tpl-id"})

	_, err := g.Generate(context.Background(), policy.Input{
		Type: policy.TypeBarangayID,
		Name: "Juan Dela Cruz",
		Now:  testNow,
	})
	require.NoError(t, err)
	assert.Len(t, fake.StyledRanges, 2, "both occurrences of the upper-cased name get bolded")

	// Styling failures never fail the generation.
	failing := docstest.New(map[string]string{"tpl-id": "ID of <FULLNAME>"})
	failing.StyleErr = assert.AnError
	g2 := newTestGenerator(failing, map[policy.Type]string{policy.TypeBarangayID: "tpl-id"})
	_, err = g2.Generate(context.Background(), policy.Input{
		Type: policy.TypeBarangayID,
		Name: "Juan Dela Cruz",
		Now:  testNow,
	})
	require.NoError(t, err)
}

func TestGenerateRetriesRateLimitedCopy(t *testing.T) {
	fake := docstest.New(map[string]string{"tpl-barangay": "<name>, <purpose>"})
	fake.CopyRateLimits = 2
	g := newTestGenerator(fake, map[policy.Type]string{policy.TypeBarangay: "tpl-barangay"})

	_, err := g.Generate(context.Background(), policy.Input{
		Type: policy.TypeBarangay,
		Name: "Juan Dela Cruz",
		Now:  testNow,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, countOf(fake.Calls, "CopyTemplate"))
}

func TestGenerateRateLimitExhaustionEscalates(t *testing.T) {
	fake := docstest.New(map[string]string{"tpl-barangay": "<name>"})
	fake.CopyRateLimits = 10
	g := newTestGenerator(fake, map[policy.Type]string{policy.TypeBarangay: "tpl-barangay"})

	_, err := g.Generate(context.Background(), policy.Input{
		Type: policy.TypeBarangay,
		Name: "Juan Dela Cruz",
		Now:  testNow,
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	assert.Equal(t, 4, countOf(fake.Calls, "CopyTemplate"), "initial attempt plus three retries")
}

func TestGenerateTwiceCreatesTwoDocuments(t *testing.T) {
	fake := docstest.New(map[string]string{"tpl-barangay": "<name>"})
	g := newTestGenerator(fake, map[policy.Type]string{policy.TypeBarangay: "tpl-barangay"})

	in := policy.Input{Type: policy.TypeBarangay, Name: "Juan Dela Cruz", Now: testNow}
	first, err := g.Generate(context.Background(), in)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), in)
	require.NoError(t, err)

	// Generation is not idempotent at the document level: each run creates a
	// fresh external document.
	assert.NotEqual(t, first.DocumentID, second.DocumentID)
}

func indexOf(calls []string, name string) int {
	for i, c := range calls {
		if c == name {
			return i
		}
	}
	return -1
}

func countOf(calls []string, name string) int {
	n := 0
	for _, c := range calls {
		if strings.HasPrefix(c, name) {
			n++
		}
	}
	return n
}
