package util

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

// encMode encodes with CBOR core deterministic encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer form, no indefinite-length items.
// The same logical value always produces the same bytes, so digests
// computed over it are stable across runs and platforms.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("util: CBOR encoder initialization failed: " + err.Error())
	}
}

// domainKey pads an ASCII domain name to the 32 bytes BLAKE3 keyed
// hashing requires. Distinct domains make equal inputs hash differently
// in different contexts, and readable keys stay inspectable in hex dumps.
func domainKey(domain string) []byte {
	if len(domain) > 32 {
		panic("util: hash domain longer than 32 bytes: " + domain)
	}
	key := make([]byte, 32)
	copy(key, domain)
	return key
}

// CanonicalDigest hashes the canonical CBOR encoding of v with BLAKE3
// keyed by domain. A value that cannot be encoded is a programmer error,
// so encoding failures panic instead of returning an error.
func CanonicalDigest(domain string, v any) [32]byte {
	data, err := encMode.Marshal(v)
	if err != nil {
		panic("util: canonical digest of unencodable value: " + err.Error())
	}
	hasher, err := blake3.NewKeyed(domainKey(domain))
	if err != nil {
		panic("util: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// ShortHash returns the first 16 hex characters of the canonical digest
// of v under domain, the size used for filename disambiguation suffixes.
func ShortHash(domain string, v any) string {
	digest := CanonicalDigest(domain, v)
	return hex.EncodeToString(digest[:8])
}

// CanonicalMarshal returns the canonical CBOR encoding of v.
func CanonicalMarshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// CanonicalUnmarshal decodes CBOR data into v.
func CanonicalUnmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}
