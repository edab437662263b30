package scenario

import "hospitality_proforma/pkg/core/assumption"

// Example is a small two-property portfolio used as a starting template.
// Every call returns a fresh copy.
func Example() *Scenario {
	return &Scenario{
		Name:   "example",
		Global: assumption.GlobalAssumptions{
			ModelStartDate:      "2026-01-01",
			ProjectionYears:     10,
			InflationRate:       0.03,
			CompanyOpsStartDate: "2026-01-01",
			SafeTranches:        []assumption.SafeTranche{
				{Date: "2026-01-01", Amount: assumption.Float(1_000_000)},
				{Date: "2027-01-01", Amount: assumption.Float(800_000)},
			},
		},
		Properties: []assumption.PropertyAssumptions{
			{
				ID:                   "harbor-inn",
				Name:                 "Harbor Inn",
				Market:               "Coastal",
				RoomCount:            24,
				AcquisitionDate:      "2026-03-01",
				OperationsStartDate:  "2026-06-01",
				PurchasePrice:        3_200_000,
				BuildingImprovements: 400_000,
				PreOpeningCosts:      60_000,
				OperatingReserve:     350_000,
				Financing:            assumption.Financed,
				StartADR:             265,
				ADRGrowthRate:        0.03,
				StartOccupancy:       0.58,
				MaxOccupancy:         0.82,
				OccupancyGrowthStep:  0.04,
				WillRefinance:        true,
			},
			{
				ID:                  "ridge-lodge",
				Name:                "Ridge Lodge",
				Market:              "Mountain",
				RoomCount:           14,
				AcquisitionDate:     "2026-09-01",
				OperationsStartDate: "2026-11-01",
				PurchasePrice:       1_700_000,
				PreOpeningCosts:     25_000,
				OperatingReserve:    200_000,
				Financing:           assumption.FullEquity,
				StartADR:            210,
				ADRGrowthRate:       0.025,
				StartOccupancy:      0.55,
				MaxOccupancy:        0.78,
				OccupancyGrowthStep: 0.05,
			},
		},
	}
}
