// Package password hashes and verifies user passwords with bcrypt. The digest
// carries algorithm, cost and salt, so verification needs no other state.
package password

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used by Hash. Set it through SetCost at
// startup; tests may assign it directly.
var Cost = 12

// SetCost changes the work factor and rebuilds the dummy digest right away,
// so the first login for an unknown user does not pay for it.
func SetCost(c int) {
	Cost = c
	dummy()
}

var ErrTooLong = errors.New("password exceeds 72 bytes")

func Hash(plain string) (string, error) {
	if len(plain) > 72 {
		return "", ErrTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Compare reports whether plain matches digest. Malformed digests never match.
func Compare(plain, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

var (
	dummyMu     sync.Mutex
	dummyCost   int
	dummyDigest []byte
)

// dummy returns a digest hashed at the current Cost. It is rebuilt whenever
// Cost changes, so unknown usernames cost exactly as much as wrong passwords.
func dummy() []byte {
	dummyMu.Lock()
	defer dummyMu.Unlock()
	if dummyDigest != nil && dummyCost == Cost {
		return dummyDigest
	}
	d, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), Cost)
	if err != nil {
		d, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	}
	dummyDigest, dummyCost = d, Cost
	return dummyDigest
}

// CompareDummy burns one comparison so unknown usernames take as long as wrong passwords.
func CompareDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword(dummy(), []byte(plain))
}
