package assumption

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	structValidator *validator.Validate
	validatorOnce   sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("isodate", validateISODate)
		structValidator = v
	})
	return structValidator
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// ValidateGlobal checks the global record. It returns ConfigErrors or nil.
func ValidateGlobal(g *GlobalAssumptions) error {
	if g == nil {
		return ConfigErrors{{Field: "global", Reason: "is required"}}
	}
	errs, err := structErrors("", g)
	if err != nil {
		return err
	}

	for i, tier := range g.Company.StaffingTiers {
		if tier.MaxProperties == 0 && i != len(g.Company.StaffingTiers)-1 {
			errs = append(errs, ConfigError{
				Field:  fmt.Sprintf("company.staffing_tiers[%d].max_properties", i),
				Value:  0,
				Reason: "may be unbounded (0) only on the last tier",
			})
		}
		if i > 0 && tier.MaxProperties != 0 && tier.MaxProperties <= g.Company.StaffingTiers[i-1].MaxProperties {
			errs = append(errs, ConfigError{
				Field:  fmt.Sprintf("company.staffing_tiers[%d].max_properties", i),
				Value:  tier.MaxProperties,
				Reason: "must increase from tier to tier",
			})
		}
	}

	for i, tier := range g.Investment.PromoteTiers {
		if math.Abs(tier.LPSplit+tier.GPSplit-1) > 1e-9 {
			errs = append(errs, ConfigError{
				Field:  fmt.Sprintf("investment.promote_tiers[%d]", i),
				Value:  tier.LPSplit + tier.GPSplit,
				Reason: "lp_split and gp_split must add up to 1",
			})
		}
		if i > 0 && tier.HurdleIRR <= g.Investment.PromoteTiers[i-1].HurdleIRR {
			errs = append(errs, ConfigError{
				Field:  fmt.Sprintf("investment.promote_tiers[%d].hurdle_irr", i),
				Value:  tier.HurdleIRR,
				Reason: "must increase from tier to tier",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateProperty checks one property record. Explicitly provided values are
// never clamped: anything out of domain is reported.
func ValidateProperty(p *PropertyAssumptions) error {
	if p == nil {
		return ConfigErrors{{Field: "property", Reason: "is required"}}
	}
	errs, err := structErrors(p.ID, p)
	if err != nil {
		return err
	}

	// Cross-field rules
	ops, opsErr := ParseDate(p.OperationsStartDate)
	acq := ops
	if p.AcquisitionDate != "" {
		if d, err := ParseDate(p.AcquisitionDate); err == nil {
			acq = d
			if opsErr == nil && d.After(ops) {
				errs = append(errs, ConfigError{
					PropertyID: p.ID,
					Field:      "acquisition_date",
					Value:      p.AcquisitionDate,
					Reason:     fmt.Sprintf("must not be after operations_start_date (%s)", p.OperationsStartDate),
				})
			}
		}
	}
	if p.MaxOccupancy < p.StartOccupancy {
		errs = append(errs, ConfigError{
			PropertyID: p.ID,
			Field:      "max_occupancy",
			Value:      p.MaxOccupancy,
			Reason:     fmt.Sprintf("must be >= start_occupancy (%v)", p.StartOccupancy),
		})
	}
	if p.Financing == FullEquity && p.AcquisitionLTV != nil && *p.AcquisitionLTV > 0 {
		errs = append(errs, ConfigError{
			PropertyID: p.ID,
			Field:      "acquisition_ltv",
			Value:      *p.AcquisitionLTV,
			Reason:     "must be 0 or unset for full_equity financing",
		})
	}
	if p.WillRefinance && p.RefinanceDate != "" && opsErr == nil {
		if d, err := ParseDate(p.RefinanceDate); err == nil && d.Before(acq) {
			errs = append(errs, ConfigError{
				PropertyID: p.ID,
				Field:      "refinance_date",
				Value:      p.RefinanceDate,
				Reason:     "must not be before acquisition",
			})
		}
	}
	seen := make(map[string]bool)
	for i, c := range p.FeeCategories {
		if seen[c.Name] {
			errs = append(errs, ConfigError{
				PropertyID: p.ID,
				Field:      fmt.Sprintf("fee_categories[%d].name", i),
				Value:      c.Name,
				Reason:     "is duplicated",
			})
		}
		seen[c.Name] = true
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// structErrors runs the tag rules and converts failures to ConfigErrors
func structErrors(propertyID string, s interface{}) (ConfigErrors, error) {
	err := getValidator().Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validate assumptions: %w", err)
	}
	out := make(ConfigErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ConfigError{
			PropertyID: propertyID,
			Field:      fieldPath(fe.Namespace()),
			Value:      fe.Value(),
			Reason:     reason(fe),
		})
	}
	return out, nil
}

// fieldPath drops the root struct name: "PropertyAssumptions.cost_rates.fb" → "cost_rates.fb"
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lt":
		return "must be < " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "isodate":
		return "must be a YYYY-MM-DD date"
	default:
		return "failed '" + fe.Tag() + "' rule"
	}
}
