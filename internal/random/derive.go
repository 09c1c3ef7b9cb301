package random

import "github.com/google/uuid"

var deriveSpace = uuid.MustParse("5b7f3c9e-8d1a-4e2f-9c6b-0a4d7e1f2b83")

// Derive names a child stream of seed. Seeds that differ only in their last
// characters hash to neighbouring states and open with nearly equal draws, so
// the parent and label are mixed through SHA-1 first.
func Derive(seed, label string) string {
	return uuid.NewSHA1(deriveSpace, []byte(seed+"\x00"+label)).String()
}
