package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"junket/internal/domain"
)

func d(v string) decimal.Decimal {
	dec, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return dec
}

func TestAgentCommission(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		net  string
		rate string
		want string
	}{
		{"customer loses, agent earns", "-300", "10", "30"},
		{"customer wins, agent bears loss", "500", "10", "-50"},
		{"break-even customer", "0", "10", "0"},
		{"zero rate", "-300", "0", "0"},
		{"fractional rate", "-1000", "12.5", "125"},
		{"fractional net", "-333.33", "10", "33.333"},
		{"full rate", "-200", "100", "200"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AgentCommission(d(tc.net), d(tc.rate))
			assert.True(t, got.Equal(d(tc.want)),
				"AgentCommission(%s, %s) = %s, want %s", tc.net, tc.rate, got, tc.want)
		})
	}
}

func TestSharePercentages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		agent       string
		company     string
		wantAgent   string
		wantCompany string
	}{
		{"even split", "100", "100", "50", "50"},
		{"ten ninety", "20", "180", "10", "90"},
		{"both zero", "0", "0", "0", "0"},
		{"company only", "0", "250", "0", "100"},
		{"agent only", "75", "0", "100", "0"},
		{"signs use magnitudes", "-50", "-422", "10.59", "89.41"},
		{"mixed signs", "-50", "150", "25", "75"},
		{"rounded to two places", "1", "2", "33.33", "66.67"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			agentPct, companyPct := SharePercentages(d(tc.agent), d(tc.company))
			assert.True(t, agentPct.Equal(d(tc.wantAgent)),
				"agent pct = %s, want %s", agentPct, tc.wantAgent)
			assert.True(t, companyPct.Equal(d(tc.wantCompany)),
				"company pct = %s, want %s", companyPct, tc.wantCompany)
		})
	}
}

func TestComputeTripTotals(t *testing.T) {
	t.Parallel()

	svc := NewStatsService()

	totals := svc.ComputeTripTotals(nil)
	assert.True(t, totals.NetProfit.IsZero(), "empty list should yield zero totals")

	totals = svc.ComputeTripTotals([]*domain.TripCustomerStats{
		{TotalBuyIn: d("1000"), TotalCashOut: d("1500")},
		{TotalBuyIn: d("300"), TotalLoss: d("200")},
		{TotalWin: d("100")},
	})
	assert.True(t, totals.TotalBuyIn.Equal(d("1300")), "buy-in = %s", totals.TotalBuyIn)
	assert.True(t, totals.TotalCashOut.Equal(d("1500")), "cash-out = %s", totals.TotalCashOut)
	assert.True(t, totals.TotalWin.Equal(d("100")), "win = %s", totals.TotalWin)
	assert.True(t, totals.TotalLoss.Equal(d("200")), "loss = %s", totals.TotalLoss)
	// net = (1500 + 100) - (1300 + 200) = 100.
	assert.True(t, totals.NetProfit.Equal(d("100")), "net profit = %s", totals.NetProfit)
}
