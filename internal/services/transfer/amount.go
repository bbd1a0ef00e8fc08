package transfer

import (
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "quickpay/internal/errors"
)

// ParseAmount accepts a strictly positive decimal with at most two
// fractional digits, returned rounded to the minor unit.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, domainErrors.ErrInvalidAmount.Wrap(err)
	}
	if !d.IsPositive() {
		return decimal.Zero, domainErrors.ErrInvalidAmount
	}
	rounded := d.Round(AmountPlaces)
	if !rounded.Equal(d) {
		return decimal.Zero, domainErrors.ErrInvalidAmount.WithMessage("amount has more than two decimal places")
	}
	return rounded, nil
}
