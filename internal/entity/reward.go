package domain

// RewardID names a redeemable promotion. The empty string means no reward
// is applied. At most one reward is active per order; redeeming another
// replaces the current one rather than stacking.
type RewardID string

const (
	RewardTenPercent    RewardID = "10% Discount on Purchase"
	RewardSpringRolls   RewardID = "Spring Rolls"
	RewardRangoons      RewardID = "Rangoons"
	RewardFountainDrink RewardID = "Large Fountain Drink"
	RewardBottledSoda   RewardID = "Bottled Soda"
	RewardShake         RewardID = "Chocolate Shake"
	RewardBOGOEntree    RewardID = "BOGO Entree!"
)

// promotion is one row of the reward table: an eligibility predicate over
// the order plus a price adjustment and the points the redemption earns.
type promotion struct {
	eligible func(order *Order, entrees map[string]struct{}) bool
	adjust   func(subtotal float64) float64
	points   int
}

func requiresItem(name string) func(*Order, map[string]struct{}) bool {
	return func(o *Order, _ map[string]struct{}) bool { return o.Contains(name) }
}

func flatOff(amount float64) func(float64) float64 {
	return func(subtotal float64) float64 { return subtotal - amount }
}

var promotions = map[RewardID]promotion{
	RewardTenPercent: {
		eligible: func(*Order, map[string]struct{}) bool { return true },
		adjust:   func(subtotal float64) float64 { return subtotal * 0.9 },
		points:   100,
	},
	RewardSpringRolls: {
		eligible: requiresItem("Spring Rolls"),
		adjust:   flatOff(3.99),
		points:   200,
	},
	RewardRangoons: {
		eligible: requiresItem("Rangoons"),
		adjust:   flatOff(10.00),
		points:   300,
	},
	RewardFountainDrink: {
		eligible: requiresItem("Fountain Drink"),
		adjust:   flatOff(4.00),
		points:   400,
	},
	RewardBottledSoda: {
		eligible: requiresItem("Bottled Soda"),
		adjust:   flatOff(4.50),
		points:   700,
	},
	RewardShake: {
		eligible: requiresItem("Chocolate Shake"),
		adjust:   flatOff(5.00),
		points:   700,
	},
	RewardBOGOEntree: {
		// Two distinct entrees in the order unlock the BOGO price.
		eligible: func(o *Order, entrees map[string]struct{}) bool {
			count := 0
			for name := range o.Items() {
				if _, ok := entrees[name]; ok {
					count++
				}
			}
			return count >= 2
		},
		adjust: flatOff(12.99),
		points: 1500,
	},
}

// KnownReward reports whether id names a promotion in the table.
func KnownReward(id RewardID) bool {
	_, ok := promotions[id]
	return ok
}

// ApplyReward maps (reward, subtotal, order, entree set) to the final
// price and points earned. Unknown rewards and unmet eligibility leave the
// subtotal unchanged with zero points; the result reports this through
// Applied so callers can surface it. The final price is clamped at zero
// and both amounts are rounded to cents.
func ApplyReward(id RewardID, subtotal float64, order *Order, entrees map[string]struct{}) PricingResult {
	res := PricingResult{
		Subtotal:   Round2(subtotal),
		FinalPrice: Round2(subtotal),
	}

	p, ok := promotions[id]
	if !ok || !p.eligible(order, entrees) {
		return res
	}

	final := p.adjust(subtotal)
	if final < 0 {
		final = 0
	}
	res.FinalPrice = Round2(final)
	res.PointsEarned = p.points
	res.Applied = true
	return res
}
