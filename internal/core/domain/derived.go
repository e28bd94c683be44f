package domain

import "fmt"

// TimePeriod is the recurrence of a monetized amount
type TimePeriod string

const (
	PerDay   TimePeriod = "per_day"
	PerWeek  TimePeriod = "per_week"
	PerMonth TimePeriod = "per_month"
	PerYear  TimePeriod = "per_year"
)

var periodsPerYear = map[TimePeriod]float64{
	PerDay:   365,
	PerWeek:  52,
	PerMonth: 12,
	PerYear:  1,
}

// Multiplier returns how many periods fit in a year
func (p TimePeriod) Multiplier() (float64, bool) {
	m, ok := periodsPerYear[p]
	return m, ok
}

// ParseTimePeriod validates a time period string
func ParseTimePeriod(s string) (TimePeriod, error) {
	p := TimePeriod(s)
	if _, ok := p.Multiplier(); !ok {
		return "", fmt.Errorf("unknown time period %q (expected per_day, per_week, per_month or per_year)", s)
	}
	return p, nil
}

// YearlyValue converts an amount over a period to a yearly amount.
// Returns nil when either input is missing or the period is unknown.
func YearlyValue(amount *float64, period TimePeriod) *float64 {
	if amount == nil || period == "" {
		return nil
	}
	m, ok := period.Multiplier()
	if !ok {
		return nil
	}
	v := *amount * m
	return &v
}

// YearlyValue is the item's amount normalised to one year
func (m MonetizedItem) YearlyValue() *float64 {
	return YearlyValue(m.Amount, m.TimePeriod)
}

// AnnualTotal sums the yearly values of items, skipping incomplete ones
func AnnualTotal(items []MonetizedItem) float64 {
	var total float64
	for _, item := range items {
		if v := item.YearlyValue(); v != nil {
			total += *v
		}
	}
	return total
}

// UnitVolume is length × width × height, nil if any dimension is missing
func (d Dimensions) UnitVolume() *float64 {
	if d.Length == nil || d.Width == nil || d.Height == nil {
		return nil
	}
	v := *d.Length * *d.Width * *d.Height
	return &v
}

// AnnualInputCost sums input costs per year
func (e Economics) AnnualInputCost() float64 {
	return AnnualTotal(e.InputCosts)
}

// AnnualOutputValue sums output values per year
func (e Economics) AnnualOutputValue() float64 {
	return AnnualTotal(e.OutputValues)
}

// AnnualNetValue is output value minus input cost per year
func (e Economics) AnnualNetValue() float64 {
	return e.AnnualOutputValue() - e.AnnualInputCost()
}

// FormatOptional renders a nullable number for display
func FormatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v
func Int(v int) *int { return &v }
