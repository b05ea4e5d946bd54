package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/payplanhq/payplan/internal/money"
)

func TestParse(t *testing.T) {
	type testCase struct {
		name  string
		input string
		want  int64
	}

	tests := []testCase{
		{name: "PlainInteger", input: "1500", want: 150000},
		{name: "DotDecimal", input: "12.34", want: 1234},
		{name: "CommaDecimal", input: "12,34", want: 1234},
		{name: "ThousandsDotCommaDecimal", input: "1.234,56", want: 123456},
		{name: "ThousandsCommaDotDecimal", input: "1,234.56", want: 123456},
		{name: "CurrencySymbolPrefix", input: "€ 99.90", want: 9990},
		{name: "CurrencySymbolSuffix", input: "99.90€", want: 9990},
		{name: "ThirdDecimalRoundsHalfUp", input: "12.345", want: 1235},
		{name: "Whitespace", input: "  42.00 ", want: 4200},
		{name: "Empty", input: "", want: 0},
		{name: "Garbage", input: "abc", want: 0},
		{name: "MixedGarbage", input: "12x4", want: 0},
		{name: "Zero", input: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Parse(tt.input))
		})
	}
}

func TestParseStrict(t *testing.T) {
	got, err := money.ParseStrict("10.50")
	assert.NoError(t, err)
	assert.Equal(t, int64(1050), got)

	_, err = money.ParseStrict("not money")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.ParseStrict("")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.34", money.Format(1234))
	assert.Equal(t, "0.00", money.Format(0))
	assert.Equal(t, "0.05", money.Format(5))
	assert.Equal(t, "1000.00", money.Format(100000))
	assert.Equal(t, "-3.50", money.Format(-350))
}

// Parsing then formatting must not drift, even through a split/re-sum
// round trip at odd totals.
func TestParseFormatRoundTrip(t *testing.T) {
	for _, s := range []string{"0.01", "99999999.99", "1234567.89"} {
		cents := money.Parse(s)
		assert.Equal(t, s, money.Format(cents))
	}
}
