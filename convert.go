package cashflowr

// Convert converts a monetary value into the target currency using the
// pivot-relative rates of the snapshot.
//
// Policy is identity-fallback: when the snapshot is nil, or either currency
// has no usable rate in it, the amount is returned unchanged (relabeled to
// the target currency). The system favors showing an unconverted-but-present
// number over blocking, at the cost of silently mixing currencies while
// rates are incomplete.
//
// Only pivot-relative rates are cached, so the cross rate always goes
// through the pivot: amount / rates[from] * rates[to]. No rounding is
// applied; presentation rounds for display.
func Convert(m Money, to string, snap *RateSnapshot) Money {
	from := m.Currency()
	if from == "" {
		from = DefaultCurrency
	}
	if from == to {
		return M(m.Amount(), to)
	}
	fromRate, okFrom := snap.Rate(from)
	toRate, okTo := snap.Rate(to)
	if !okFrom || !okTo || !fromRate.IsPositive() || !toRate.IsPositive() {
		return M(m.Amount(), to)
	}
	inPivot := m.Amount().Div(fromRate)
	return M(inPivot.Mul(toRate), to)
}
