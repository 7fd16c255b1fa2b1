package core

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// ReceiptID derives the short audit token for an expense: the first 8 hex
// characters of the MD5 digest of description+amountText+timestampKey,
// uppercased. The token is deterministic for identical inputs and is an
// advisory reference, not a storage key; collisions within the same
// wall-clock second are accepted.
func ReceiptID(description, amountText, timestampKey string) string {
	sum := md5.Sum([]byte(description + amountText + timestampKey))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:8])
}
