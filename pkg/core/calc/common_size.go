package calc

// CommonSize expresses one year's statement lines as shares of total revenue,
// plus the lender ratios. Ratios with a zero denominator are 0.
type CommonSize struct {
	RoomsShare  float64 // room revenue / total revenue
	RoomsCost   float64 // rooms department expense / room revenue
	FBCost      float64 // F&B department expense / F&B revenue
	Undist      float64 // undistributed expenses / total revenue
	FixedCharge float64 // insurance + property taxes / total revenue

	GOPMargin    float64
	FeeLoad      float64 // management fees / total revenue
	FFEReserve   float64
	NOIMargin    float64
	NetMargin    float64
	FeeByService map[string]float64 // service-fee category / total revenue

	DSCR      float64 // NOI / debt service
	DebtYield float64 // NOI / debt outstanding
}

// CalculateCommonSize derives the common-size view of a yearly row
func CalculateCommonSize(y YearlyFinancials) CommonSize {
	rev := y.RevenueTotal
	undistributed := y.ExpenseAdmin + y.ExpenseMarketing + y.ExpensePropertyOps + y.ExpenseUtilitiesVariable +
		y.ExpenseUtilitiesFixed + y.ExpenseIT + y.ExpenseOtherCosts

	cs := CommonSize{
		RoomsShare:  safeDiv(y.RevenueRooms, rev),
		RoomsCost:   safeDiv(y.ExpenseRooms, y.RevenueRooms),
		FBCost:      safeDiv(y.ExpenseFB, y.RevenueFB),
		Undist:      safeDiv(undistributed, rev),
		FixedCharge: safeDiv(y.ExpenseInsurance+y.ExpensePropertyTaxes, rev),

		GOPMargin:  safeDiv(y.GOP, rev),
		FeeLoad:    safeDiv(y.ManagementFees(), rev),
		FFEReserve: safeDiv(y.ExpenseFFE, rev),
		NOIMargin:  safeDiv(y.NOI, rev),
		NetMargin:  safeDiv(y.NetIncome, rev),

		DSCR:      safeDiv(y.NOI, y.DebtService),
		DebtYield: safeDiv(y.NOI, y.DebtOutstanding),
	}

	if len(y.FeesByCategory) > 0 {
		cs.FeeByService = make(map[string]float64, len(y.FeesByCategory))
		for name, v := range y.FeesByCategory {
			cs.FeeByService[name] = safeDiv(v, rev)
		}
	}
	return cs
}

// CommonSizeSeries maps CalculateCommonSize over a yearly series
func CommonSizeSeries(years []YearlyFinancials) []CommonSize {
	out := make([]CommonSize, len(years))
	for i, y := range years {
		out[i] = CalculateCommonSize(y)
	}
	return out
}

func safeDiv(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}
