package utils

import (
	"crypto/rand"
	"math/big"
)

const uniqueIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueID returns n random characters from [A-Z0-9].
func GenerateUniqueID(n int) string {
	max := big.NewInt(int64(len(uniqueIDAlphabet)))
	id := make([]byte, n)
	for i := range id {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		id[i] = uniqueIDAlphabet[idx.Int64()]
	}
	return string(id)
}
