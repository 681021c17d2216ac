package register

// TotalWithTax applies the consumption tax rate to a pre-tax total in whole
// currency units, rounding half-up: 455 at 10% is 500.5 and yields 501.
func TotalWithTax(total, ratePercent int64) int64 {
	return (total*(100+ratePercent) + 50) / 100
}
