package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangay/internal/docs"
	"barangay/pkg/names"
)

func TestCandidateStems(t *testing.T) {
	p := names.Parts{First: "Juan", Middle: "Santos", Last: "Dela Cruz", Suffix: "Jr."}
	stems := candidateStems(p)

	require.NotEmpty(t, stems)
	assert.Equal(t, "DELA-CRUZ-JUAN-SANTOS-JR", stems[0], "most specific ordering first")
	assert.Contains(t, stems, "DELA-CRUZ-JUAN")
	assert.Contains(t, stems, "JUAN-DELA-CRUZ")
}

func TestMatchPhotoExactBeatsPrefixBeatsSubstring(t *testing.T) {
	p := names.Parts{First: "Juan", Last: "Dela Cruz"}
	files := []docs.File{
		{ID: "sub", Name: "old-DELA-CRUZ-JUAN-2019.jpg"},
		{ID: "prefix", Name: "DELA-CRUZ-JUAN-2024.jpg"},
		{ID: "exact", Name: "dela-cruz-juan.JPG"},
	}

	got, ok := matchPhoto(files, p)
	require.True(t, ok)
	assert.Equal(t, "exact", got.ID, "exact stem match wins, case-insensitively")

	got, ok = matchPhoto(files[:2], p)
	require.True(t, ok)
	assert.Equal(t, "prefix", got.ID, "prefix match wins over substring")

	got, ok = matchPhoto(files[:1], p)
	require.True(t, ok)
	assert.Equal(t, "sub", got.ID)
}

func TestMatchPhotoAlternateOrder(t *testing.T) {
	p := names.Parts{First: "Maria", Last: "Reyes"}
	files := []docs.File{{ID: "alt", Name: "MARIA-REYES.png"}}

	got, ok := matchPhoto(files, p)
	require.True(t, ok)
	assert.Equal(t, "alt", got.ID)
}

func TestMatchPhotoStripsDiacritics(t *testing.T) {
	p := names.Parts{First: "José", Last: "Peña"}
	files := []docs.File{{ID: "pena", Name: "PENA-JOSE.jpg"}}

	got, ok := matchPhoto(files, p)
	require.True(t, ok)
	assert.Equal(t, "pena", got.ID)
}

func TestMatchPhotoGivesUp(t *testing.T) {
	p := names.Parts{First: "Juan", Last: "Dela Cruz"}
	files := []docs.File{{ID: "other", Name: "SANTOS-PEDRO.jpg"}}

	_, ok := matchPhoto(files, p)
	assert.False(t, ok)

	_, ok = matchPhoto(nil, p)
	assert.False(t, ok)

	_, ok = matchPhoto(files, names.Parts{})
	assert.False(t, ok)
}
