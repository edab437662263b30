package valuation

import (
	"math"

	"hospitality_proforma/pkg/core/assumption"
)

// =============================================================================
// LP/GP DISTRIBUTION
// =============================================================================

// TierDistribution is the cash that flowed through one promote tier
type TierDistribution struct {
	Label     string  `json:"label"`
	HurdleIRR float64 `json:"hurdle_irr"`
	LPSplit   float64 `json:"lp_split"`
	GPSplit   float64 `json:"gp_split"`
	Amount    float64 `json:"amount"`
	LPAmount  float64 `json:"lp_amount"`
	GPAmount  float64 `json:"gp_amount"`
}

// Distribution splits total distributions between the limited partners and
// the general partner
type Distribution struct {
	TotalDistributable float64            `json:"total_distributable"`
	LPEquity           float64            `json:"lp_equity"`
	GPEquity           float64            `json:"gp_equity"`
	ReturnOfCapital    float64            `json:"return_of_capital"`
	PreferredReturn    float64            `json:"preferred_return"`
	PreferredShortfall float64            `json:"preferred_shortfall"`
	CatchUp            float64            `json:"catch_up"`
	Tiers              []TierDistribution `json:"tiers"`
	ToLP               float64            `json:"to_lp"`
	ToGP               float64            `json:"to_gp"`
	LPMultiple         float64            `json:"lp_multiple"`
	GPMultiple         float64            `json:"gp_multiple"`
	Residual           float64            `json:"residual"` // left over when no tier is configured
}

// Distribute runs the waterfall over a returns summary:
//
//	1. return of capital, pro rata to contributed equity
//	2. preferred return, simple annual accrual on equity over the hold
//	3. GP catch-up toward CatchUpToGPShare of profit, at CatchUpRate
//	4. promote tiers; tier k takes profit until total profit reaches
//	   equity × hurdle(k+1) × years, the last tier takes the rest
func Distribute(s ReturnsSummary, terms assumption.InvestmentTerms) Distribution {
	equity := math.Max(s.InitialEquity, 0)
	years := float64(len(s.CashFlows))
	gpShare := terms.GPEquityShare
	lpShare := 1 - gpShare

	d := Distribution{
		TotalDistributable: s.TotalDistributions,
		GPEquity:           equity * gpShare,
		LPEquity:           equity * lpShare,
	}
	remaining := math.Max(s.TotalDistributions, 0)
	prorata := func(amount float64) {
		d.ToLP += amount * lpShare
		d.ToGP += amount * gpShare
		remaining -= amount
	}

	// 1. Return of capital
	d.ReturnOfCapital = math.Min(remaining, equity)
	prorata(d.ReturnOfCapital)

	// 2. Preferred return
	target := equity * terms.PreferredReturn * years
	d.PreferredReturn = math.Min(remaining, target)
	d.PreferredShortfall = target - d.PreferredReturn
	prorata(d.PreferredReturn)

	// 3. Catch-up: GP profit reaches share s of total profit once
	//    prefGP + c·rate = s·(pref + c)
	if rate, share := terms.CatchUpRate, terms.CatchUpToGPShare; rate > share && remaining > 0 {
		needed := (share*d.PreferredReturn - d.PreferredReturn*gpShare) / (rate - share)
		d.CatchUp = math.Min(remaining, math.Max(needed, 0))
		d.ToGP += d.CatchUp * rate
		d.ToLP += d.CatchUp * (1 - rate)
		remaining -= d.CatchUp
	}

	// 4. Promote tiers
	profit := d.PreferredReturn + d.CatchUp
	for i, tier := range terms.PromoteTiers {
		amount := remaining
		if i+1 < len(terms.PromoteTiers) {
			ceiling := equity*terms.PromoteTiers[i+1].HurdleIRR*years - profit
			amount = math.Min(remaining, math.Max(ceiling, 0))
		}
		td := TierDistribution{
			Label:     tier.Label,
			HurdleIRR: tier.HurdleIRR,
			LPSplit:   tier.LPSplit,
			GPSplit:   tier.GPSplit,
			Amount:    amount,
			LPAmount:  amount * tier.LPSplit,
			GPAmount:  amount * tier.GPSplit,
		}
		d.Tiers = append(d.Tiers, td)
		d.ToLP += td.LPAmount
		d.ToGP += td.GPAmount
		profit += amount
		remaining -= amount
	}
	d.Residual = remaining

	if d.LPEquity > 0 {
		d.LPMultiple = d.ToLP / d.LPEquity
	}
	if d.GPEquity > 0 {
		d.GPMultiple = d.ToGP / d.GPEquity
	}
	return d
}
