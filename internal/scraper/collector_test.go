package scraper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestURLCollectorUnbounded(t *testing.T) {
	c := NewURLCollector(0)
	require.True(t, c.Add([]string{"a", "b"}))
	require.True(t, c.Add([]string{"c"}))
	require.False(t, c.Full())
	require.Equal(t, []string{"a", "b", "c"}, c.URLs())
}

func TestURLCollectorTruncatesAtLimit(t *testing.T) {
	c := NewURLCollector(3)
	require.True(t, c.Add([]string{"a", "b"}))
	require.False(t, c.Add([]string{"c", "d", "e"}), "crossing the cap must report stop")
	require.Equal(t, []string{"a", "b", "c"}, c.URLs(), "only the first remaining elements are kept, in order")
	require.True(t, c.Full())
}

func TestURLCollectorExactFill(t *testing.T) {
	c := NewURLCollector(2)
	require.True(t, c.Add([]string{"a", "b"}), "filling exactly to the cap still reports continue")
	require.True(t, c.Full())
	require.False(t, c.Add([]string{"c"}))
	require.Equal(t, []string{"a", "b"}, c.URLs())
}

func TestURLCollectorFullStaysUnchanged(t *testing.T) {
	c := NewURLCollector(1)
	c.Add([]string{"a"})
	for i := 0; i < 10; i++ {
		require.False(t, c.Add([]string{"b", "c"}))
		require.Equal(t, []string{"a"}, c.URLs())
	}
}

func TestURLCollectorNeverExceedsLimit(t *testing.T) {
	// Arbitrary call sequences must keep len(urls) <= limit at all times.
	for limit := 1; limit <= 5; limit++ {
		c := NewURLCollector(limit)
		for _, batch := range [][]string{{"a"}, {"b", "c"}, {}, {"d", "e", "f"}, {"g"}} {
			c.Add(batch)
			require.LessOrEqual(t, len(c.URLs()), limit)
		}
	}
}

func TestURLCollectorAllowsDuplicates(t *testing.T) {
	c := NewURLCollector(0)
	c.Add([]string{"a", "a"})
	require.Equal(t, []string{"a", "a"}, c.URLs(), "duplicates pass through")
}
