package scrape

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips fragment", "https://docs.example.com/api#section", "https://docs.example.com/api"},
		{"strips query", "https://docs.example.com/api?v=2", "https://docs.example.com/api"},
		{"strips non-root trailing slash", "https://docs.example.com/api/", "https://docs.example.com/api"},
		{"keeps root slash", "https://docs.example.com/", "https://docs.example.com/"},
		{"already normal", "https://docs.example.com/api", "https://docs.example.com/api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeURL(tt.in))
		})
	}
}

func TestTitleFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"last segment", "https://docs.example.com/guide/getting-started", "Getting Started"},
		{"strips html extension", "https://docs.example.com/api_reference.html", "Api Reference"},
		{"underscores to spaces", "https://docs.example.com/user_guide", "User Guide"},
		{"root is home", "https://docs.example.com/", "Home"},
		{"no path is home", "https://docs.example.com", "Home"},
		{"multi-byte first letter", "https://docs.example.com/éditeur", "Éditeur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, titleFromURL(tt.in))
		})
	}
}

func TestSameScope(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://docs.example.com/en/latest/")
	require.NoError(t, err)

	t.Run("same host under prefix", func(t *testing.T) {
		t.Parallel()
		assert.True(t, sameScope(base, "https://docs.example.com/en/latest/api"))
	})

	t.Run("same host outside prefix", func(t *testing.T) {
		t.Parallel()
		assert.False(t, sameScope(base, "https://docs.example.com/en/stable/api"))
	})

	t.Run("prefix boundary is a path segment", func(t *testing.T) {
		t.Parallel()
		assert.False(t, sameScope(base, "https://docs.example.com/en/latest-extras/api"))
	})

	t.Run("different host", func(t *testing.T) {
		t.Parallel()
		assert.False(t, sameScope(base, "https://other.example.com/en/latest/api"))
	})

	t.Run("root base accepts any path", func(t *testing.T) {
		t.Parallel()
		root, err := url.Parse("https://docs.example.com/")
		require.NoError(t, err)
		assert.True(t, sameScope(root, "https://docs.example.com/anything"))
	})
}
