// Package dedupe detects re-delivered and near-duplicate bank
// transactions and decides which records survive.
//
// Detection runs in two stages: an exact fingerprint pass that catches
// byte-for-byte re-deliveries under fresh provider ids, then a fuzzy
// similarity pass within a small date window that catches provider
// quirks like amount drift and merchant-name variants.
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/vishalnatekar/myfinancepal/internal/domain/ledger"
)

// Fingerprint computes a deterministic identity key for a transaction.
//
// The key covers account, absolute amount rounded to cents, calendar
// date, and the normalized merchant name. ExternalID and description are
// deliberately excluded: a provider re-delivering the same transaction
// under a new id must still collide. Amount sign is stripped so a
// sign-flipped re-delivery collides too.
func Fingerprint(tx ledger.Transaction) string {
	parts := []string{
		"account:" + tx.AccountID,
		fmt.Sprintf("amount:%.2f", ledger.RoundToCents(tx.AbsAmount())),
		"date:" + tx.DayKey(),
		"merchant:" + ledger.NormalizeMerchant(tx.Merchant()),
	}
	return hashParts("fp", parts)
}

// FuzzyFingerprint computes a looser identity key tolerant of small
// variation: the amount is rounded to the nearest whole currency unit
// and the merchant name is simplified (corporate suffixes and
// punctuation stripped). Transactions a few cents apart, or "Tesco"
// versus "TESCO Stores Ltd", collide under this key. Date is not part
// of the key; the similarity pass applies its own date window.
func FuzzyFingerprint(tx ledger.Transaction) string {
	parts := []string{
		"account:" + tx.AccountID,
		fmt.Sprintf("amount:%.0f", math.Round(tx.AbsAmount())),
		"merchant:" + ledger.SimplifyMerchant(tx.Merchant()),
	}
	return hashParts("fz", parts)
}

func hashParts(prefix string, parts []string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return prefix + "_" + hex.EncodeToString(sum[:])
}
