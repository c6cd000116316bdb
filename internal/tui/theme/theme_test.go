package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByNameFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "catppuccin-mocha", ByName("catppuccin-mocha").Name)
	assert.Equal(t, FlexokiDark.Name, ByName("solarized").Name)
	assert.True(t, Valid("terminal"))
	assert.False(t, Valid(""))
	assert.Equal(t, []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}, Names())
}

func TestSpendColor(t *testing.T) {
	th := FlexokiDark
	assert.Equal(t, th.Green, th.Spend(0))
	assert.Equal(t, th.Yellow, th.Spend(70))
	assert.Equal(t, th.Orange, th.Spend(95))
	assert.Equal(t, th.Red, th.Spend(100))
	assert.Equal(t, th.Red, th.Spend(140))
}
