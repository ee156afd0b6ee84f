package order

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"station/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ShortageFlagThreshold is the shortage percentage from which a delivery is flagged.
// Only shortages count; surplus deliveries are never flagged.
const ShortageFlagThreshold = 3.0

// thousandsSeparators are removed from volume and amount strings before parsing.
var thousandsSeparators = strings.NewReplacer(",", "", " ", "", "_", "", "\u00a0", "", "'", "")

// ParseVolume parses a textual litre amount such as "33,000" or "32 700".
// The result must be a finite, non-negative number.
func ParseVolume(raw string) (float64, error) {
	cleaned := thousandsSeparators.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, errs.NewValueIsRequiredError("volume")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("volume", fmt.Errorf("%q is not a number", raw))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("volume", fmt.Errorf("%q is not a valid volume", raw))
	}
	return v, nil
}

// ParseAmount parses a textual decimal amount (price, total) with thousands separators stripped.
func ParseAmount(paramName, raw string) (decimal.Decimal, error) {
	cleaned := thousandsSeparators.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, errs.NewValueIsRequiredError(paramName)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%q is not a decimal", raw))
	}
	if d.IsNegative() {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%q is negative", raw))
	}
	return d, nil
}

// ComputeTotal multiplies quantity by price per litre and returns the total with two decimals.
func ComputeTotal(quantity, pricePerLitre string) (string, error) {
	q, err := ParseAmount("quantity", quantity)
	if err != nil {
		return "", err
	}
	p, err := ParseAmount("pricePerLitre", pricePerLitre)
	if err != nil {
		return "", err
	}
	return q.Mul(p).StringFixed(2), nil
}

// Reconciliation is the outcome of comparing the loaded and delivered volumes.
type Reconciliation struct {
	VolumeAtLoading  float64
	VolumeAtDelivery float64
	// DiffPercent is positive for a shortage and negative for a surplus.
	DiffPercent float64
	Flagged     bool
	Note        string
}

// Reconcile applies the shortage rule to an order quantity and the delivered volume.
//
// diffPct = (loading - delivered) / loading * 100; a diffPct of 3 or more flags the
// delivery. The loaded quantity must be positive.
//
// Example:
//
//	r, _ := order.Reconcile("33,000", "32,000")
//	r.Flagged // true, DiffPercent ≈ 3.03
func Reconcile(quantity, volumeDelivered string) (Reconciliation, error) {
	delivered, err := ParseVolume(volumeDelivered)
	if err != nil {
		return Reconciliation{}, err
	}

	loading, err := ParseVolume(quantity)
	if err != nil {
		return Reconciliation{}, err
	}
	if loading <= 0 {
		return Reconciliation{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%q is not greater than 0", quantity))
	}

	diffPct := (loading - delivered) / loading * 100
	r := Reconciliation{
		VolumeAtLoading:  loading,
		VolumeAtDelivery: delivered,
		DiffPercent:      diffPct,
		Flagged:          diffPct >= ShortageFlagThreshold,
	}

	if r.Flagged {
		r.Note = fmt.Sprintf("Volume discrepancy of %.2f%% detected: loaded %s L, delivered %s L",
			diffPct, formatLitres(loading), formatLitres(delivered))
	} else {
		r.Note = fmt.Sprintf("Delivery volume confirmed: loaded %s L, delivered %s L (%.2f%% variance)",
			formatLitres(loading), formatLitres(delivered), diffPct)
	}
	return r, nil
}

func formatLitres(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
