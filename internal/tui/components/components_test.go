package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/finmate/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	widths := LayoutRow(101, 4)
	if len(widths) != 4 {
		t.Fatalf("got %d widths, want 4", len(widths))
	}
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 101 {
		t.Errorf("sum = %d, want 101", sum)
	}
	if widths[0] != 26 || widths[3] != 25 {
		t.Errorf("widths = %v, want remainder on the first items", widths)
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowMatchesTallestCard(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	if len(lines) != tallLines {
		t.Fatalf("joined height = %d, want %d", len(lines), tallLines)
	}

	// padding below the short card must still carry background styling
	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI codes", i)
		}
	}
}

func TestCardRowSkipsEmpty(t *testing.T) {
	card := ContentCard("Only", "x", 20)
	if got := CardRow([]string{"", card, ""}); lipgloss.Width(got) != lipgloss.Width(card) {
		t.Errorf("width = %d, want %d", lipgloss.Width(got), lipgloss.Width(card))
	}
	if CardRow(nil) != "" {
		t.Error("CardRow(nil) should be empty")
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Errorf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
	}
	if TabIdxByKey('z') != -1 {
		t.Error("unknown key should return -1")
	}
}

func TestRenderTabBarWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	want := 0
	for i, tab := range Tabs {
		want += TabVisualWidth(tab)
		if i < len(Tabs)-1 {
			want++
		}
	}
	bar := RenderTabBar(1, want)
	if got := lipgloss.Width(bar); got != want {
		t.Errorf("tab bar width = %d, want %d", got, want)
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.5, "$0.50"},
		{20, "$20"},
		{1000, "$1k"},
		{1500, "$1.5k"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.in); got != tt.want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBudgetBarClamps(t *testing.T) {
	theme.SetActive("flexoki-dark")
	over := BudgetBar("Food", 140, "", 10, 20)
	if !strings.Contains(over, "100%") {
		t.Errorf("over-budget bar should show 100%%, got %q", over)
	}
	under := BudgetBar("Food", -5, "", 10, 20)
	if !strings.Contains(under, "  0%") {
		t.Errorf("negative pct should clamp to 0%%, got %q", under)
	}
}

func TestChartScale(t *testing.T) {
	ceiling, step, intervals := chartScale(47, 8)
	if ceiling != 60 || step != 20 || intervals != 3 {
		t.Errorf("chartScale(47, 8) = %v, %v, %d; want 60, 20, 3", ceiling, step, intervals)
	}
}

func TestBarChartWeek(t *testing.T) {
	theme.SetActive("flexoki-dark")
	vals := []float64{12, 0, 47, 5, 0, 0, 20}
	labels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

	out := BarChart(vals, labels, theme.Active.Blue, 60, 8)
	for _, want := range []string{"$20", "$60", "Mon", "Sun", "└"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q:\n%s", want, out)
		}
	}
	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 60 {
			t.Errorf("line %d is %d wide, want <= 60", i, w)
		}
	}

	small := BarChart(vals, labels, theme.Active.Blue, 12, 8)
	if strings.Contains(small, "│") || strings.Count(small, "\n") != 0 {
		t.Errorf("narrow chart should fall back to a sparkline, got %q", small)
	}
}
