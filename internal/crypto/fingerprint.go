package crypto

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/blake2b"

	"stockpick/internal/domain"
)

// digestBytes is how much of the BLAKE2b-256 sum is kept (16 hex chars).
const digestBytes = 8

// Fingerprint returns a short hex fingerprint of raw bytes.
//
// It hashes with BLAKE2b-256 and truncates to 8 bytes.
func Fingerprint(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:digestBytes])
}

// SnapshotDigest fingerprints an ordered item list together with a ceiling.
// Equal inputs (including order) always produce the same digest.
func SnapshotDigest(items []domain.Item, ceiling decimal.Decimal) domain.Digest {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(it.ID.String())
		b.WriteByte('\x1f')
		b.WriteString(it.Name)
		b.WriteByte('\x1f')
		b.WriteString(strconv.Itoa(it.Stock))
		b.WriteByte('\x1f')
		b.WriteString(it.UnitPrice.String())
		b.WriteByte('\x1f')
		b.WriteString(it.Importer)
		b.WriteByte('\x1f')
		b.WriteString(it.StockForAllUnit.String())
		b.WriteByte('\x1e')
	}
	b.WriteString("ceiling=")
	b.WriteString(ceiling.String())
	return domain.Digest(Fingerprint([]byte(b.String())))
}
