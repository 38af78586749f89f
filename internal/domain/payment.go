package domain

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentState is the derived view of an order's money fields. It is never
// stored authoritatively: DerivePaymentState recomputes it from the total,
// the sum of recorded payments and the deposit threshold.
type PaymentState struct {
	BalanceDue int64
	Status     PaymentStatus
	DepositMet bool
}

// DerivePaymentState computes the payment view. All amounts are cents.
//
// Exactly one status holds at a time: paid when the balance is cleared on a
// non-zero total, unpaid when nothing has been paid, partial otherwise. The
// balance is floor-clamped at zero so overpayments never show negative.
func DerivePaymentState(totalAmount, amountPaid, depositAmount int64) PaymentState {
	balance := totalAmount - amountPaid
	if balance < 0 {
		balance = 0
	}

	var status PaymentStatus
	switch {
	case balance <= 0 && totalAmount > 0:
		status = PaymentPaid
	case amountPaid == 0:
		status = PaymentUnpaid
	default:
		status = PaymentPartial
	}

	depositMet := true
	if depositAmount > 0 {
		depositMet = amountPaid >= depositAmount
	}

	return PaymentState{
		BalanceDue: balance,
		Status:     status,
		DepositMet: depositMet,
	}
}

// PaymentProgress returns the paid percentage, 0..100. Zero or missing
// totals report 0 rather than dividing by zero.
func PaymentProgress(totalAmount, amountPaid int64) int {
	if totalAmount <= 0 {
		return 0
	}
	pct := amountPaid * 100 / totalAmount
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return int(pct)
}
