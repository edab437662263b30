package projection

import (
	"math"

	"hospitality_proforma/pkg/core/assumption"
)

// DaysPerMonth is the fixed day count of every month
const DaysPerMonth = 30.5

// Revenue is one operating month of revenue
type Revenue struct {
	Occupancy           float64
	ADR                 float64
	AvailableRoomNights float64
	SoldRoomNights      float64
	Rooms               float64
	FB                  float64
	Events              float64
	Other               float64
	Total               float64
}

// Occupancy steps up every OccupancyRampMonths from the start occupancy and
// is capped at MaxOccupancy. k is months since operations start.
func Occupancy(p *assumption.ResolvedProperty, k int) float64 {
	if k < 0 {
		return 0
	}
	occ := p.StartOccupancy
	if p.OccupancyRampMonths > 0 {
		occ += float64(k/p.OccupancyRampMonths) * p.OccupancyGrowthStep
	}
	return math.Min(p.MaxOccupancy, occ)
}

// ADR compounds once per 12 months of operations
func ADR(p *assumption.ResolvedProperty, k int) float64 {
	if k < 0 {
		return 0
	}
	return p.StartADR * math.Pow(1+p.ADRGrowthRate, float64(k/12))
}

// ProjectRevenue computes the four revenue streams for operating month k
func ProjectRevenue(p *assumption.ResolvedProperty, k int) Revenue {
	if k < 0 {
		return Revenue{}
	}
	r := Revenue{
		Occupancy:           Occupancy(p, k),
		ADR:                 ADR(p, k),
		AvailableRoomNights: float64(p.RoomCount) * DaysPerMonth,
	}
	r.SoldRoomNights = r.AvailableRoomNights * r.Occupancy
	r.Rooms = float64(p.RoomCount) * r.ADR * r.Occupancy * DaysPerMonth
	r.FB = r.Rooms * p.RevShareFB * (1 + p.CateringBoostPct)
	r.Events = r.Rooms * p.RevShareEvents
	r.Other = r.Rooms * p.RevShareOther
	r.Total = r.Rooms + r.FB + r.Events + r.Other
	return r
}

// stabilizedRevenue is total monthly revenue at start ADR and start occupancy.
// Fixed costs are anchored to it.
func stabilizedRevenue(p *assumption.ResolvedProperty) float64 {
	rooms := float64(p.RoomCount) * p.StartADR * p.StartOccupancy * DaysPerMonth
	return rooms * (1 + p.RevShareFB*(1+p.CateringBoostPct) + p.RevShareEvents + p.RevShareOther)
}
