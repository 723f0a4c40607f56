// Package ledger holds the pure money arithmetic for the funding ledger:
// processor fees, net amounts, loyalty points and the compliance threshold.
// All amounts are integer centavos.
package ledger

const (
	// Fee schedule: 3% below ₱1,000 gross, 5% from ₱1,000 up.
	feeTierThreshold = 1_000 * 100
	lowTierFeeBPS    = 300
	highTierFeeBPS   = 500

	// One loyalty point per ₱100 donated.
	centavosPerPoint = 100 * 100

	// Donations of ₱500,000 and above are flagged for compliance review.
	highValueThreshold = 500_000 * 100
)

// Fee returns the payment-processor fee for a gross donation amount.
// The schedule is tiered: 3% under ₱1,000, 5% otherwise.
func Fee(gross int64) int64 {
	bps := int64(lowTierFeeBPS)
	if gross >= feeTierThreshold {
		bps = highTierFeeBPS
	}
	return gross * bps / 10_000
}

// Net returns the amount credited to a campaign after the fee is deducted.
func Net(gross int64) int64 {
	return gross - Fee(gross)
}

// Points returns the loyalty points earned for a gross donation amount.
func Points(gross int64) int64 {
	return gross / centavosPerPoint
}

// HighValue reports whether a donation must be flagged for compliance
// review. It never blocks the donation itself.
func HighValue(gross int64) bool {
	return gross >= highValueThreshold
}
