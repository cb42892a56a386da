package bloom_test

import (
	"testing"

	"github.com/fwojciec/sitesearch/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://example.com/a.html"))

	f.Add("https://example.com/a.html")

	assert.True(t, f.Test("https://example.com/a.html"))
	assert.False(t, f.Test("https://example.com/b.html"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://example.com/a.html")
	f.Add("https://example.com/b.html")
	f.Add("https://example.com/c.html")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	f.Add("https://example.com/a.html")
	f.Add("https://example.com/a.html")
	f.Add("https://example.com/a.html")

	assert.True(t, f.Test("https://example.com/a.html"))
	count := f.EstimatedCount()
	assert.True(t, count <= 2, "repeated adds should not inflate the count, got %d", count)
}
