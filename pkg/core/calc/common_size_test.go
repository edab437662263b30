package calc

import (
	"math"
	"testing"

	"hospitality_proforma/pkg/core/projection"
)

func TestCalculateCommonSize(t *testing.T) {
	y := YearlyFinancials{MonthlyFinancials: projection.MonthlyFinancials{
		RevenueRooms:         800,
		RevenueFB:            150,
		RevenueEvents:        30,
		RevenueOther:         20,
		RevenueTotal:         1000,
		ExpenseRooms:         200,
		ExpenseFB:            90,
		ExpenseAdmin:         80,
		ExpenseMarketing:     20,
		ExpenseInsurance:     15,
		ExpensePropertyTaxes: 25,
		GOP:                  400,
		FeeBase:              50,
		FeeIncentive:         20,
		FeesByCategory:       map[string]float64{"Accounting": 10},
		ExpenseFFE:           40,
		NOI:                  290,
		DebtService:          200,
		DebtOutstanding:      2900,
		NetIncome:            100,
	}}

	cs := CalculateCommonSize(y)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"RoomsShare", cs.RoomsShare, 0.80},
		{"RoomsCost", cs.RoomsCost, 0.25},
		{"FBCost", cs.FBCost, 0.60},
		{"Undist", cs.Undist, 0.10},
		{"FixedCharge", cs.FixedCharge, 0.04},
		{"GOPMargin", cs.GOPMargin, 0.40},
		{"FeeLoad", cs.FeeLoad, 0.07},
		{"FFEReserve", cs.FFEReserve, 0.04},
		{"NOIMargin", cs.NOIMargin, 0.29},
		{"NetMargin", cs.NetMargin, 0.10},
		{"DSCR", cs.DSCR, 1.45},
		{"DebtYield", cs.DebtYield, 0.10},
		{"Accounting", cs.FeeByService["Accounting"], 0.01},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s expected %f, got %f", tt.name, tt.want, tt.got)
		}
	}
}

func TestCalculateCommonSize_ZeroRevenue(t *testing.T) {
	cs := CalculateCommonSize(YearlyFinancials{})
	if cs.GOPMargin != 0 || cs.DSCR != 0 || cs.DebtYield != 0 || cs.FeeByService != nil {
		t.Errorf("expected zero ratios for an empty year, got %+v", cs)
	}
	if got := CommonSizeSeries([]YearlyFinancials{{}, {}}); len(got) != 2 {
		t.Errorf("expected one row per year, got %d", len(got))
	}
}
