package colorconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelLuminance(t *testing.T) {
	assert.Equal(t, 0.0, ChannelLuminance(0))
	assert.InDelta(t, 1.0, ChannelLuminance(255), 1e-12)
	// Linear segment.
	assert.InDelta(t, (10.0/255)/12.92, ChannelLuminance(10), 1e-12)
	// Masked before normalizing.
	assert.Equal(t, ChannelLuminance(1), ChannelLuminance(257))
}

func TestLuminance(t *testing.T) {
	assert.Equal(t, 0.0, Luminance(0x000000))
	assert.InDelta(t, 1.0, Luminance(0xffffff), 1e-9)
	assert.InDelta(t, 0.2126, Luminance(0xff0000), 1e-9)
	assert.InDelta(t, 0.7152, Luminance(0x00ff00), 1e-9)
	assert.InDelta(t, 0.0722, Luminance(0x0000ff), 1e-9)
}

func TestContrastRatio(t *testing.T) {
	assert.InDelta(t, 21.0, ContrastRatio(0x000000, 0xffffff), 1e-9)
	assert.InDelta(t, MaxContrastRatio(), ContrastRatio(0xffffff, 0x000000), 1e-12)

	colors := []Color{0x000000, 0xffffff, 0x808080, 0x336699, 0xff0080, 0x00ff00}
	for _, a := range colors {
		assert.Equal(t, 1.0, ContrastRatio(a, a), "self ratio of %s", a)
		for _, b := range colors {
			assert.Equal(t, ContrastRatio(a, b), ContrastRatio(b, a), "%s vs %s", a, b)
			assert.LessOrEqual(t, ContrastRatio(a, b), MaxContrastRatio()+1e-9)
		}
	}
}

func TestContrastColor(t *testing.T) {
	t.Run("white beats gray on black", func(t *testing.T) {
		got, ok := ContrastColor(0x000000, []Color{0xffffff, 0x808080})
		require.True(t, ok)
		assert.Equal(t, "#ffffff", got)
	})

	t.Run("black wins on white", func(t *testing.T) {
		got, ok := ContrastColor(0xffffff, []Color{0x808080, 0x000000, 0xeeeeee})
		require.True(t, ok)
		assert.Equal(t, "#000000", got)
	})

	t.Run("ties keep the first candidate", func(t *testing.T) {
		// Same masked color, different raw values.
		candidates := []Color{0x0123456, 0x1123456, 0xff123456}
		assert.Equal(t, 0, ContrastIndex(0x808080, candidates))

		got, ok := ContrastColor(0x808080, candidates)
		require.True(t, ok)
		assert.Equal(t, "#123456", got)
	})

	t.Run("later strictly better candidate wins", func(t *testing.T) {
		assert.Equal(t, 2, ContrastIndex(0x000000, []Color{0x808080, 0x00ff00, 0xffffff, 0xfefefe}))
	})

	t.Run("equal to base still selected", func(t *testing.T) {
		got, ok := ContrastColor(0x336699, []Color{0x336699})
		require.True(t, ok)
		assert.Equal(t, "#336699", got)
	})

	t.Run("empty list", func(t *testing.T) {
		got, ok := ContrastColor(0x000000, nil)
		assert.False(t, ok)
		assert.Equal(t, -1, ContrastIndex(0x000000, nil))
		assert.Empty(t, got)
	})
}

func TestContrastColorOf(t *testing.T) {
	got, ok, err := ContrastColorOf("#000000", "#ffffff", 0x808080)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "#ffffff", got)

	_, _, err = ContrastColorOf("#000000", "bogus")
	assert.ErrorIs(t, err, ErrInvalidColorFormat)

	_, ok, err = ContrastColorOf(0)
	require.NoError(t, err)
	assert.False(t, ok)
}
