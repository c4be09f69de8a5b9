package service

import (
	"crypto/rand"
	"math/big"
)

// suffixAlphabet excludes visually ambiguous characters (0/O, 1/l/I).
const suffixAlphabet = "23456789abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ"

// suffixLength gives 54^5 (~459M) combinations per base value, keeping the
// collision probability negligible; the unique index is the final guard.
const suffixLength = 5

// randomSuffix returns a short random identifier suffix.
func randomSuffix() string {
	max := big.NewInt(int64(len(suffixAlphabet)))
	b := make([]byte, suffixLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic(err)
		}
		b[i] = suffixAlphabet[n.Int64()]
	}
	return string(b)
}
