// README: Budget value object shared by the itinerary flow and its handlers.
package types

const (
	DefaultBudgetLow  int64 = 500
	DefaultBudgetHigh int64 = 1500
)

// Budget is a per-trip cost range in the traveller's currency.
type Budget struct {
	Low  int64
	High int64
}

// NewBudget reads a cost range of zero, one or two values. Missing ends fall
// back to the defaults; a reversed pair is swapped.
func NewBudget(costRange []int64) Budget {
	b := Budget{Low: DefaultBudgetLow, High: DefaultBudgetHigh}
	if len(costRange) > 0 {
		b.Low = costRange[0]
	}
	if len(costRange) > 1 {
		b.High = costRange[1]
	}
	if b.Low > b.High {
		b.Low, b.High = b.High, b.Low
	}
	return b
}
