package ligovka

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ratePage = `<html><body>
<table class="money_table">
  <tr>
    <td class="money_quantity">от 1000</td>
    <td class="money_price buy_price">91.80</td>
    <td class="money_price">93.40</td>
  </tr>
  <tr>
    <td class="money_quantity"> от 1 </td>
    <td class="money_price buy_price">92.15</td>
    <td class="money_change">+0.05</td>
    <td class="money_price">93,75</td>
  </tr>
</table>
</body></html>`

func TestParseRates_QuantityRow(t *testing.T) {
	obs, err := ParseRates(strings.NewReader(ratePage), "от 1")
	require.NoError(t, err)

	assert.Equal(t, "92.15", obs.Buy.String())
	assert.Equal(t, "93.75", obs.Sell.String())
}

func TestParseRates_OtherQuantity(t *testing.T) {
	obs, err := ParseRates(strings.NewReader(ratePage), "от 1000")
	require.NoError(t, err)

	assert.Equal(t, "91.8", obs.Buy.String())
	assert.Equal(t, "93.4", obs.Sell.String())
}

func TestParseRates_Errors(t *testing.T) {
	tests := []struct {
		name   string
		html   string
		reason string
	}{
		{
			name:   "no quantity row",
			html:   `<table><tr><td class="money_quantity">от 500</td></tr></table>`,
			reason: "quantity row not found",
		},
		{
			name:   "no buy cell",
			html:   `<table><tr><td class="money_quantity">от 1</td><td class="money_price">93.75</td></tr></table>`,
			reason: "buy cell not found",
		},
		{
			name:   "no sell cell",
			html:   `<table><tr><td class="money_quantity">от 1</td><td class="money_price buy_price">92.15</td></tr></table>`,
			reason: "sell cell not found",
		},
		{
			name:   "garbage number",
			html:   `<table><tr><td class="money_quantity">от 1</td><td class="money_price buy_price">n/a</td><td class="money_price">93.75</td></tr></table>`,
			reason: "invalid price",
		},
		{
			name:   "empty number",
			html:   `<table><tr><td class="money_quantity">от 1</td><td class="money_price buy_price">92.15</td><td class="money_price"> </td></tr></table>`,
			reason: "empty price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRates(strings.NewReader(tt.html), "от 1")
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tt.reason, parseErr.Reason)
			assert.Equal(t, "parse", Kind(err))
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"92.15", "92.15"},
		{" 92,15 ", "92.15"},
		{"1 092.15", "1092.15"},
		{"1\u00a0092.15", "1092.15"},
	}

	for _, tt := range tests {
		got, err := parsePrice(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got.String())
	}

	_, err := parsePrice("-1")
	assert.Error(t, err)
}

func TestPriceCells(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(ratePage))
	require.NoError(t, err)

	cells := PriceCells(doc)
	require.Len(t, cells, 4)
	assert.Equal(t, "91.80", cells[0].Text)
	assert.Equal(t, "money_price buy_price", cells[0].Classes)
	assert.Equal(t, "93,75", cells[3].Text)
}
