package goquery_test

import (
	"testing"

	"github.com/pagesift/pagesift"
	"github.com/pagesift/pagesift/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Paginator implements pagesift.PaginationResolver at compile time.
var _ pagesift.PaginationResolver = (*goquery.Paginator)(nil)

func TestPaginator_NextPage(t *testing.T) {
	t.Parallel()

	current := "https://example.com/catalog?page=2"

	t.Run("link relation wins over anchor text", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<link rel="next" href="/catalog?page=3">
</head><body>
<a href="/catalog?page=9">Next</a>
</body></html>`

		p := goquery.NewPaginator()
		next, ok := p.NextPage(html, current)

		require.True(t, ok)
		assert.Equal(t, "https://example.com/catalog?page=3", next)
	})

	t.Run("matches Next anchor text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/catalog?page=1">Previous</a>
<a href="/catalog?page=3">Next page</a>
</body></html>`

		p := goquery.NewPaginator()
		next, ok := p.NextPage(html, current)

		require.True(t, ok)
		assert.Equal(t, "https://example.com/catalog?page=3", next)
	})

	t.Run("matches chevron marker", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/catalog?page=3">&raquo;</a>
</body></html>`

		p := goquery.NewPaginator()
		next, ok := p.NextPage(html, current)

		require.True(t, ok)
		assert.Equal(t, "https://example.com/catalog?page=3", next)
	})

	t.Run("relative links resolve against the current URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="?page=3">Next</a></body></html>`

		p := goquery.NewPaginator()
		next, ok := p.NextPage(html, current)

		require.True(t, ok)
		assert.Equal(t, "https://example.com/catalog?page=3", next)
	})

	t.Run("candidate equal to current URL is rejected", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="?page=2">Next</a></body></html>`

		p := goquery.NewPaginator()
		_, ok := p.NextPage(html, current)

		assert.False(t, ok)
	})

	t.Run("no candidate yields no next page", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="/about">About the shop</a></body></html>`

		p := goquery.NewPaginator()
		_, ok := p.NextPage(html, current)

		assert.False(t, ok)
	})

	t.Run("anchors without text are skipped", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="/catalog?page=9"></a>
<a href="/catalog?page=3">Next</a>
</body></html>`

		p := goquery.NewPaginator()
		next, ok := p.NextPage(html, current)

		require.True(t, ok)
		assert.Equal(t, "https://example.com/catalog?page=3", next)
	})
}
