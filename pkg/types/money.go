package types

import "fmt"

// Paise is a monetary amount in the smallest INR unit.
type Paise int64

// Rupees returns the amount in whole-rupee units as a float for display math.
func (p Paise) Rupees() float64 {
	return float64(p) / 100
}

// DisplayINR renders the amount the way customer-facing documents show it.
func (p Paise) DisplayINR() string {
	return fmt.Sprintf("Rs %.2f", p.Rupees())
}
