package hash

import "golang.org/x/crypto/bcrypt"

// Hasher wraps bcrypt with a tunable cost factor. Zero cost means
// bcrypt.DefaultCost.
type Hasher struct {
	Cost int
}

func (h Hasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check is constant-time with respect to the hash comparison.
func (h Hasher) Check(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
