//go:build unit
// +build unit

package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookValidation(t *testing.T) {
	tests := []struct {
		name    string
		book    *Book
		wantErr bool
	}{
		{"valid catalog result", &Book{Title: "Dune", UpstreamID: "B1hSG45JCX4C"}, false},
		{"catalog result without title", &Book{UpstreamID: "x"}, false},
		{"invalid user id", &Book{Title: "Dune", UserID: "user-1"}, true},
		{"invalid link", &Book{Title: "Dune", UpstreamLink: "not a url"}, true},
		{"isbn10 too long", &Book{Title: "Dune", ISBN10: "97804411729"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.book.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBook_CustomCategories(t *testing.T) {
	b := &Book{Title: "Dune"}

	assert.True(t, b.AddCustomCategory("scifi"))
	assert.False(t, b.AddCustomCategory("scifi"))
	assert.False(t, b.AddCustomCategory(""))
	assert.True(t, b.HasCustomCategory("scifi"))

	assert.True(t, b.RemoveCustomCategory("scifi"))
	assert.False(t, b.RemoveCustomCategory("scifi"))
	assert.Empty(t, b.CustomCategories)
}

func TestBook_AuthorListAndCover(t *testing.T) {
	b := &Book{Authors: []string{"Frank Herbert", "Brian Herbert"}, SmallThumbnail: "http://img/s"}

	assert.Equal(t, "Frank Herbert, Brian Herbert", b.AuthorList())
	assert.Equal(t, "http://img/s", b.CoverImage())
}

func TestParseSearchKind(t *testing.T) {
	kind, err := ParseSearchKind("author")
	require.NoError(t, err)
	assert.Equal(t, SearchByAuthor, kind)

	_, err = ParseSearchKind("publisher")
	assert.Error(t, err)
}
