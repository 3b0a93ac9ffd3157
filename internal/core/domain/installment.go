package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentCategory is the ledger category assigned to installment payments.
const InstallmentCategory = "Cuotas"

// Installment is a card purchase paid over a fixed number of equal monthly
// payments. InstallmentsPaid mirrors the payment journal; MarkPaid recomputes
// it as COUNT(*) of journal rows so the stored count is self-healing. The
// manual UpdatePaidCount override bypasses the journal and may desynchronize
// the two, so "next unpaid number" is always derived from the journal.
type Installment struct {
	ID                   int64           `json:"id"`
	Description          string          `json:"description"`
	CardName             string          `json:"card_name"`
	AmountPerInstallment decimal.Decimal `json:"amount_per_installment"`
	TotalInstallments    int             `json:"total_installments"`
	InstallmentsPaid     int             `json:"installments_paid"`
	StartDate            time.Time       `json:"start_date"`
	IsActive             bool            `json:"is_active"`
	Currency             Currency        `json:"currency"`
}

// DeriveActive computes the active flag from the paid count: a plan stays
// active while payments remain. Called after every mutation of the paid count.
func DeriveActive(paid, total int) bool {
	return paid < total
}

// PaymentDescription formats the ledger description of a numbered payment,
// e.g. "Heladera (3/12)".
func (i Installment) PaymentDescription(number int) string {
	return fmt.Sprintf("%s (%d/%d)", i.Description, number, i.TotalInstallments)
}

// InstallmentPayment is an entry of the append-only payment journal proving
// that a given installment number has been paid. (installment_id,
// installment_number) is unique: the at-most-once guarantee.
type InstallmentPayment struct {
	ID                int64     `json:"id"`
	InstallmentID     int64     `json:"installment_id"`
	TransactionID     int64     `json:"transaction_id"`
	InstallmentNumber int       `json:"installment_number"`
	PaymentDate       time.Time `json:"payment_date"`
	CreatedAt         time.Time `json:"created_at"`
}

// PaymentDetail is a journal row joined with the monetary fields of the ledger
// transaction it references, as returned to the UI.
type PaymentDetail struct {
	InstallmentPayment
	Amount       decimal.Decimal `json:"amount"`
	Currency     Currency        `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// NextUnpaidNumber scans 1..total and returns the first number absent from the
// journal, so out-of-order manual payments are supported. Returns 0 when every
// number is paid.
func NextUnpaidNumber(total int, payments []InstallmentPayment) int {
	paid := make(map[int]bool, len(payments))
	for _, p := range payments {
		paid[p.InstallmentNumber] = true
	}
	for n := 1; n <= total; n++ {
		if !paid[n] {
			return n
		}
	}
	return 0
}
