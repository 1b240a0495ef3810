package probability

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProfitGovernor_WouldExceedLimit(t *testing.T) {
	d := decimal.NewFromInt
	tests := []struct {
		name      string
		ratio     float64
		absolute  float64
		maxPayout decimal.Decimal
		balance   decimal.Decimal
		want      bool
	}{
		{"within ratio", 10, 0, d(1000), d(100), false},
		{"over ratio", 10, 0, d(1001), d(100), true},
		{"zero balance", 10, 0, d(1), d(0), true},
		{"absolute cap", 10, 500, d(600), d(1000), true},
		{"under absolute cap", 10, 500, d(400), d(1000), false},
		{"default ratio", 0, 0, d(1000), d(100), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewProfitGovernor(tt.ratio, tt.absolute)
			assert.Equal(t, tt.want, g.WouldExceedLimit("u1", tt.maxPayout, tt.balance))
		})
	}
}
