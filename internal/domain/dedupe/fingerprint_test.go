package dedupe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

func makeTransaction(id string, amount float64, date time.Time, merchant string) ledger.Transaction {
	tx := ledger.Transaction{
		ID:         id,
		AccountID:  "acc1",
		ExternalID: "ext-" + id,
		Amount:     amount,
		Category:   ledger.Uncategorized,
		Date:       date,
		Currency:   "GBP",
	}
	if merchant != "" {
		tx.MerchantName = &merchant
	}
	return tx
}

var testDay = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

func TestFingerprint_Deterministic(t *testing.T) {
	tx := makeTransaction("tx1", -25.50, testDay, "Tesco")
	same := makeTransaction("tx1", -25.50, testDay, "Tesco")

	assert.Equal(t, Fingerprint(tx), Fingerprint(same))
}

func TestFingerprint_SignInvariant(t *testing.T) {
	debit := makeTransaction("tx1", -25.50, testDay, "Tesco")
	credit := makeTransaction("tx2", 25.50, testDay, "Tesco")

	assert.Equal(t, Fingerprint(debit), Fingerprint(credit))
}

func TestFingerprint_IgnoresExternalIDAndDescription(t *testing.T) {
	a := makeTransaction("tx1", -25.50, testDay, "Tesco")
	b := makeTransaction("tx1", -25.50, testDay, "Tesco")
	b.ExternalID = "completely-different"
	desc := "card payment"
	b.Description = &desc

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_MerchantCaseAndWhitespaceFolded(t *testing.T) {
	a := makeTransaction("tx1", -25.50, testDay, "TESCO  STORES")
	b := makeTransaction("tx2", -25.50, testDay, "tesco stores")

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprint_DistinguishesAmountDateAccount(t *testing.T) {
	base := makeTransaction("tx1", -25.50, testDay, "Tesco")

	differentAmount := makeTransaction("tx2", -25.51, testDay, "Tesco")
	assert.NotEqual(t, Fingerprint(base), Fingerprint(differentAmount))

	differentDate := makeTransaction("tx3", -25.50, testDay.AddDate(0, 0, 1), "Tesco")
	assert.NotEqual(t, Fingerprint(base), Fingerprint(differentDate))

	differentAccount := makeTransaction("tx4", -25.50, testDay, "Tesco")
	differentAccount.AccountID = "acc2"
	assert.NotEqual(t, Fingerprint(base), Fingerprint(differentAccount))
}

func TestFuzzyFingerprint_ToleratesCentsAndSuffixes(t *testing.T) {
	a := makeTransaction("tx1", -25.40, testDay, "Tesco Stores Ltd")
	b := makeTransaction("tx2", -25.45, testDay, "TESCO STORES")

	assert.Equal(t, FuzzyFingerprint(a), FuzzyFingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFuzzyFingerprint_WholeUnitBoundary(t *testing.T) {
	a := makeTransaction("tx1", -25.40, testDay, "Tesco")
	b := makeTransaction("tx2", -26.40, testDay, "Tesco")

	assert.NotEqual(t, FuzzyFingerprint(a), FuzzyFingerprint(b))
}
