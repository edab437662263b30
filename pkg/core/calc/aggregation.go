package calc

import (
	"reflect"
	"time"

	"hospitality_proforma/pkg/core/assumption"
	"hospitality_proforma/pkg/core/projection"
)

// MonthsPerYear is the length of a model year
const MonthsPerYear = 12

// YearlyFinancials is 12 consecutive months of one property, or of the
// consolidated portfolio
type YearlyFinancials struct {
	Year       int `json:"year"` // 0-based model year
	FiscalYear int `json:"fiscal_year"`
	projection.MonthlyFinancials
}

// CompanyYearly is one model year of the management company
type CompanyYearly struct {
	Year       int `json:"year"`
	FiscalYear int `json:"fiscal_year"`
	projection.CompanyMonthly
}

// =============================================================================
// FIELD-ENUMERATION FOLD
// =============================================================================

type foldMode int

const (
	overTime       foldMode = iota // stocks keep first/last month
	acrossEntities                 // stocks add up
)

// fold adds src into dst for every float64 and map[string]float64 field,
// honouring the agg tag. Other kinds (ints, bools, times) are left to the caller.
func fold(dst, src reflect.Value, mode foldMode, isFirst bool) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("agg")
		if tag == "-" {
			continue
		}
		d, s := dst.Field(i), src.Field(i)

		switch f.Type.Kind() {
		case reflect.Struct:
			if f.Anonymous {
				fold(d, s, mode, isFirst)
			}
		case reflect.Float64:
			switch {
			case mode == overTime && tag == "last":
				d.SetFloat(s.Float())
			case mode == overTime && tag == "first":
				if isFirst {
					d.SetFloat(s.Float())
				}
			default:
				d.SetFloat(d.Float() + s.Float())
			}
		case reflect.Map:
			if f.Type.Key().Kind() != reflect.String || f.Type.Elem().Kind() != reflect.Float64 || s.Len() == 0 {
				continue
			}
			if d.IsNil() {
				d.Set(reflect.MakeMap(f.Type))
			}
			iter := s.MapRange()
			for iter.Next() {
				prev := d.MapIndex(iter.Key())
				sum := iter.Value().Float()
				if prev.IsValid() {
					sum += prev.Float()
				}
				d.SetMapIndex(iter.Key(), reflect.ValueOf(sum).Convert(f.Type.Elem()))
			}
		}
	}
}

// SumOverTime folds consecutive periods of one entity: flows add, stocks take
// the period's first or last value
func SumOverTime[T any](periods []T) T {
	var out T
	dst := reflect.ValueOf(&out).Elem()
	for i := range periods {
		fold(dst, reflect.ValueOf(&periods[i]).Elem(), overTime, i == 0)
	}
	return out
}

// SumAcross folds the same period of several entities: every field adds
func SumAcross[T any](entities []T) T {
	var out T
	dst := reflect.ValueOf(&out).Elem()
	for i := range entities {
		fold(dst, reflect.ValueOf(&entities[i]).Elem(), acrossEntities, i == 0)
	}
	return out
}

// =============================================================================
// FISCAL YEARS
// =============================================================================

// FiscalYearLabel names the fiscal year containing month index m. A fiscal
// year is labelled by the calendar year it starts in.
func FiscalYearLabel(modelStart time.Time, fiscalYearStartMonth, m int) int {
	d := assumption.MonthDate(modelStart, m)
	if fiscalYearStartMonth <= 1 || int(d.Month()) >= fiscalYearStartMonth {
		return d.Year()
	}
	return d.Year() - 1
}

// FiscalYearForYear labels model year y by its first month
func FiscalYearForYear(modelStart time.Time, fiscalYearStartMonth, y int) int {
	return FiscalYearLabel(modelStart, fiscalYearStartMonth, y*MonthsPerYear)
}

// =============================================================================
// YEARLY AND PORTFOLIO ROLL-UPS
// =============================================================================

// AggregateYears rolls a monthly series into model years. A trailing partial
// year is kept.
func AggregateYears(months []projection.MonthlyFinancials, g *assumption.ResolvedGlobal) []YearlyFinancials {
	out := make([]YearlyFinancials, 0, (len(months)+MonthsPerYear-1)/MonthsPerYear)
	for y := 0; y*MonthsPerYear < len(months); y++ {
		chunk := months[y*MonthsPerYear : min((y+1)*MonthsPerYear, len(months))]
		agg := SumOverTime(chunk)
		agg.Month = chunk[0].Month
		agg.Date = chunk[0].Date
		agg.Acquired = chunk[len(chunk)-1].Acquired
		for _, m := range chunk {
			agg.Operating = agg.Operating || m.Operating
			agg.Refinanced = agg.Refinanced || m.Refinanced
		}
		agg.Derive()
		out = append(out, YearlyFinancials{
			Year:              y,
			FiscalYear:        FiscalYearForYear(g.ModelStart, g.FiscalYearStartMonth, y),
			MonthlyFinancials: agg,
		})
	}
	return out
}

// Consolidate sums per-property yearly series into the portfolio, year by year.
// Per-property series are read, never modified.
func Consolidate(perProperty [][]YearlyFinancials) []YearlyFinancials {
	years := 0
	for _, s := range perProperty {
		years = max(years, len(s))
	}
	out := make([]YearlyFinancials, 0, years)
	for y := 0; y < years; y++ {
		slice := make([]projection.MonthlyFinancials, 0, len(perProperty))
		row := YearlyFinancials{Year: y}
		for _, s := range perProperty {
			if y >= len(s) {
				continue
			}
			slice = append(slice, s[y].MonthlyFinancials)
			row.FiscalYear = s[y].FiscalYear
		}
		agg := SumAcross(slice)
		if len(slice) > 0 {
			agg.Month = slice[0].Month
			agg.Date = slice[0].Date
		}
		for _, m := range slice {
			agg.Acquired = agg.Acquired || m.Acquired
			agg.Operating = agg.Operating || m.Operating
			agg.Refinanced = agg.Refinanced || m.Refinanced
		}
		agg.Derive()
		row.MonthlyFinancials = agg
		out = append(out, row)
	}
	return out
}

// ConsolidateMonths sums per-property monthly series month by month
func ConsolidateMonths(perProperty [][]projection.MonthlyFinancials) []projection.MonthlyFinancials {
	months := 0
	for _, s := range perProperty {
		months = max(months, len(s))
	}
	out := make([]projection.MonthlyFinancials, 0, months)
	for m := 0; m < months; m++ {
		slice := make([]projection.MonthlyFinancials, 0, len(perProperty))
		for _, s := range perProperty {
			if m < len(s) {
				slice = append(slice, s[m])
			}
		}
		agg := SumAcross(slice)
		if len(slice) > 0 {
			agg.Month = slice[0].Month
			agg.Date = slice[0].Date
		}
		for _, rec := range slice {
			agg.Acquired = agg.Acquired || rec.Acquired
			agg.Operating = agg.Operating || rec.Operating
			agg.Refinanced = agg.Refinanced || rec.Refinanced
		}
		agg.Derive()
		out = append(out, agg)
	}
	return out
}

// AggregateCompanyYears rolls the management company into model years
func AggregateCompanyYears(months []projection.CompanyMonthly, g *assumption.ResolvedGlobal) []CompanyYearly {
	out := make([]CompanyYearly, 0, (len(months)+MonthsPerYear-1)/MonthsPerYear)
	for y := 0; y*MonthsPerYear < len(months); y++ {
		chunk := months[y*MonthsPerYear : min((y+1)*MonthsPerYear, len(months))]
		agg := SumOverTime(chunk)
		agg.Month = chunk[0].Month
		agg.Date = chunk[0].Date
		for _, c := range chunk {
			agg.Operating = agg.Operating || c.Operating
			agg.ActiveProperties = max(agg.ActiveProperties, c.ActiveProperties)
		}
		out = append(out, CompanyYearly{
			Year:           y,
			FiscalYear:     FiscalYearForYear(g.ModelStart, g.FiscalYearStartMonth, y),
			CompanyMonthly: agg,
		})
	}
	return out
}
