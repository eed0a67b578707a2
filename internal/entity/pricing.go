package domain

import "math"

// PricingResult is the derived price for an order with at most one reward
// applied. It is recomputed on every order or reward change and never
// persisted.
type PricingResult struct {
	Subtotal     float64
	FinalPrice   float64
	PointsEarned int
	// Applied reports whether the named reward actually took effect.
	// An unknown reward or an unmet eligibility check leaves the price
	// untouched and Applied false.
	Applied bool
}

// Round2 rounds a dollar amount to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Subtotal computes the pre-discount total for an order against a catalog
// snapshot. Items missing from the catalog price as 0 and are returned so
// the caller can log the gap; the sum itself is kept unrounded.
func Subtotal(order *Order, catalog *Catalog) (float64, []string) {
	var sum float64
	var missing []string
	for name, qty := range order.Items() {
		price, ok := catalog.UnitPrice(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		sum += price * float64(qty)
	}
	return sum, missing
}
