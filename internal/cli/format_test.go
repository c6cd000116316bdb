package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"5.5", "$5.50"},
		{"447.5", "$447.50"},
		{"1234.56", "$1,234.56"},
		{"1000000", "$1,000,000.00"},
		{"-5", "-$5.00"},
		{"-1234.5", "-$1,234.50"},
		{"-0.001", "$0.00"},
		{"2.005", "$2.01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestParseMoney(t *testing.T) {
	d, err := ParseMoney(" $1,200.50 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("1200.50")))

	_, err = ParseMoney("")
	assert.Error(t, err)
	_, err = ParseMoney("twelve")
	assert.Error(t, err)
}

func TestParseBudget(t *testing.T) {
	d, err := ParseBudget("500")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(500)))

	d, err = ParseBudget("0.005")
	require.NoError(t, err)
	assert.Equal(t, "0.01", d.StringFixed(2))

	for _, in := range []string{"0", "-10", "", "abc", "0.004", "$0.001"} {
		_, err := ParseBudget(in)
		assert.ErrorIs(t, err, ErrInvalidBudget, in)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "$5.50", want: "5.50"},
		{in: "8.999", want: "9.00"},
		{in: "0.005", want: "0.01"},
		{in: "0.004", wantErr: ErrNonPositiveAmount},
		{in: "0", wantErr: ErrNonPositiveAmount},
		{in: "-3", wantErr: ErrNonPositiveAmount},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}

	_, err := ParseAmount("abc")
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "-12,345", FormatNumber(-12345))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "2.8%", FormatPercent(decimal.RequireFromString("2.75")))
	assert.Equal(t, "0.0%", FormatPercent(decimal.Zero))
}

func TestFormatDayOfWeek(t *testing.T) {
	assert.Equal(t, "Mon", FormatDayOfWeek(time.Monday))
	assert.Equal(t, "Sun", FormatDayOfWeek(time.Sunday))
	assert.Equal(t, "???", FormatDayOfWeek(time.Weekday(9)))
}

func TestRenderSparkline(t *testing.T) {
	vals := []decimal.Decimal{decimal.Zero, decimal.NewFromInt(7), decimal.NewFromInt(14)}
	assert.Equal(t, "▁▄█", RenderSparkline(vals))
	assert.Equal(t, "", RenderSparkline(nil))
	assert.Equal(t, "▁▁", RenderSparkline([]decimal.Decimal{decimal.Zero, decimal.Zero}))
}
