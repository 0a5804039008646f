package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "₽599.99", formatMoney(59999))
	assert.Equal(t, "₽120.00", formatMoney(12000))
	assert.Equal(t, "₽0.05", formatMoney(5))
	assert.Equal(t, "-₽1.50", formatMoney(-150))
}

func TestRenderStars(t *testing.T) {
	assert.Equal(t, "★★★★☆", renderStars(4))
	assert.Equal(t, "☆☆☆☆☆", renderStars(0))
	assert.Equal(t, "★★★★★", renderStars(7))
	assert.Equal(t, "☆☆☆☆☆", renderStars(-1))
}
