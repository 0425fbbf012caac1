package billing

import (
	"github.com/shopspring/decimal"

	"table-order-api/models"
)

// Charges is the receipt breakdown for one check.
type Charges struct {
	AdultTotal    decimal.Decimal `json:"adult_total"`
	ChildTotal    decimal.Decimal `json:"child_total"`
	RefillTotal   decimal.Decimal `json:"refill_total"`
	AlaCarteTotal decimal.Decimal `json:"ala_carte_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Compute derives the full bill for a check from its stored head counts,
// price snapshots and line items. The refill charge applies to every seated
// guest. Cancelled lines never bill; buffet-included lines carry a zero unit
// price and contribute nothing beyond the per-head charges.
//
// Every surface that shows a total goes through this function, and checkout
// persists its result rather than anything a client sent.
func Compute(order models.Order, items []models.OrderItem, refillPrice decimal.Decimal) Charges {
	adultTotal := order.AdultPrice.Mul(decimal.NewFromInt(int64(order.NumAdults)))
	childTotal := order.ChildPrice.Mul(decimal.NewFromInt(int64(order.NumChildren)))
	refillTotal := refillPrice.Mul(decimal.NewFromInt(int64(order.NumOfCustomers)))

	alaCarteTotal := decimal.Zero
	for _, item := range items {
		if item.Status == models.ItemCancelled {
			continue
		}
		if item.UnitPrice.IsPositive() {
			lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			alaCarteTotal = alaCarteTotal.Add(lineTotal)
		}
	}

	return Charges{
		AdultTotal:    adultTotal,
		ChildTotal:    childTotal,
		RefillTotal:   refillTotal,
		AlaCarteTotal: alaCarteTotal,
		GrandTotal:    adultTotal.Add(childTotal).Add(refillTotal).Add(alaCarteTotal),
	}
}
