package randomgenerator

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/mikiasgoitom/Convene/internal/domain/contract"
)

type RandomGenerator struct{}

func NewRandomGenerator() contract.IRandomGenerator {
	return &RandomGenerator{}
}

var _ contract.IRandomGenerator = (*RandomGenerator)(nil)

// GenerateRandomToken returns n random bytes, base64url encoded without padding.
func (rg *RandomGenerator) GenerateRandomToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid token length %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
