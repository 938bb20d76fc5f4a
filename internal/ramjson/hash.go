package ramjson

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/relmach/ramc/internal/ram"
)

// DomainRAMTree is the domain-separation prefix for RAM tree content
// addressing, mirroring the store's hashWithDomain scheme: a version
// suffix allows the hashing algorithm to change without colliding with
// old ids.
const DomainRAMTree = "ramc/ram-tree/v1"

// hashWithDomain computes SHA-256(domain + 0x00 + data). The null
// separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash computes a stable content-addressed id for a RAM statement: the
// same tree, translated twice, hashes identically (§8 Determinism).
func Hash(stmt ram.Statement) (string, error) {
	val, err := EncodeStatement(stmt)
	if err != nil {
		return "", err
	}
	canonical, err := Marshal(val)
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainRAMTree, canonical), nil
}

// MustHash is like Hash but panics on error. Use only in tests or once the
// tree is known well-formed.
func MustHash(stmt ram.Statement) string {
	id, err := Hash(stmt)
	if err != nil {
		panic(err)
	}
	return id
}
