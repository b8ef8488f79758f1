// Package gen generates contact names and collision-free email addresses.
// All randomness uses crypto/rand, never math/rand.
package gen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Generator produces random contact data.
type Generator struct{}

// New creates a generator.
func New() *Generator {
	return &Generator{}
}

// Name returns a random full name from the built-in pool.
func (g *Generator) Name() string {
	return g.NameFrom(nil)
}

// NameFrom returns a random full name from pool, falling back to the
// built-in pool when pool is empty.
func (g *Generator) NameFrom(pool []string) string {
	if len(pool) == 0 {
		pool = fullNames
	}
	return pick(pool)
}

// UniqueEmail builds an address from a full name and a random domain,
// guaranteed absent from existing at call time. The local part is
// "<first>.<last>" lowercased; a single-token name doubles as both. On
// collision an integer suffix is appended, starting at 1, until a free
// candidate is found. The chosen address is added to existing before
// returning so repeated calls against the same set never collide.
func (g *Generator) UniqueEmail(name string, domains []string, existing map[string]bool) string {
	parts := strings.Fields(strings.ToLower(name))
	local := "unknown.unknown"
	if len(parts) > 0 {
		local = parts[0] + "." + parts[len(parts)-1]
	}

	domain := defaultDomain
	if len(domains) > 0 {
		domain = pick(domains)
	}

	email := local + "@" + domain
	for n := 1; existing[email]; n++ {
		email = fmt.Sprintf("%s%d@%s", local, n, domain)
	}

	existing[email] = true
	return email
}

// pick returns a random element from a string slice.
func pick(s []string) string {
	return s[randIntn(len(s))]
}

// randIntn returns a cryptographically random int in [0, n).
func randIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}
