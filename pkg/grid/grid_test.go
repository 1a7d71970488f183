package grid

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPadsAndTruncates(t *testing.T) {
	g, err := New("ab\nabcdefg\n", 4, 3)
	require.NoError(t, err)

	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, "ab  ", g.Row(0))
	assert.Equal(t, "abcd", g.Row(1))
	assert.Equal(t, "    ", g.Row(2))
}

func TestNewDropsExtraRows(t *testing.T) {
	g, err := New("1\n2\n3\n4", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "1\n2", g.String())
}

func TestNewLineEndings(t *testing.T) {
	for _, src := range []string{"ab\ncd", "ab\r\ncd", "ab\rcd", "ab\ncd\n"} {
		g, err := New(src, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, "ab", g.Row(0), "source %q", src)
		assert.Equal(t, "cd", g.Row(1), "source %q", src)
	}
}

func TestNewRunes(t *testing.T) {
	g, err := New("λé>", 3, 1)
	require.NoError(t, err)
	assert.Equal(t, 'λ', g.At(0, 0))
	assert.Equal(t, 'é', g.At(1, 0))
	assert.Equal(t, '>', g.At(2, 0))
}

func TestNewInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-3, 5}} {
		_, err := New("", dims[0], dims[1])
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidDimensions))
	}
}

func TestEmptySource(t *testing.T) {
	g, err := New("", 80, 25)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat(" ", 80), g.Row(24))
	assert.Equal(t, "", g.String())
}

func TestWrap(t *testing.T) {
	g, err := New("", 5, 3)
	require.NoError(t, err)

	tests := []struct {
		x, y, wx, wy int
	}{
		{0, 0, 0, 0},
		{5, 3, 0, 0},
		{-1, -1, 4, 2},
		{12, 7, 2, 1},
		{-11, -4, 4, 2},
	}
	for _, tt := range tests {
		x, y := g.Wrap(tt.x, tt.y)
		assert.Equal(t, tt.wx, x, "x for (%d, %d)", tt.x, tt.y)
		assert.Equal(t, tt.wy, y, "y for (%d, %d)", tt.x, tt.y)
	}
}

func TestSetAt(t *testing.T) {
	g, err := New("", 3, 3)
	require.NoError(t, err)

	g.Set(2, 1, '@')
	assert.Equal(t, '@', g.At(2, 1))
	assert.Equal(t, "\n  @", g.String())
}
