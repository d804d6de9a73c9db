// README: Delivery rate model.
package pricing

// Rate is the per-vendor delivery pricing row. Amounts are minor units.
type Rate struct {
	BaseFee  int64
	PerKm    int64
	Currency string
}
