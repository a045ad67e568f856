package security

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// RandomString draws length characters uniformly from alphabet using the
// system CSPRNG. Bytes that would bias the distribution via modulo are
// rejected and redrawn.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errors.New("length must be non-negative")
	}
	if length == 0 {
		return "", nil
	}
	size := len(alphabet)
	if size == 0 || size > 256 {
		return "", fmt.Errorf("alphabet size %d out of range", size)
	}

	// Largest multiple of size that fits in a byte; anything above it is
	// rejected to keep the draw uniform.
	ceiling := byte(256 - (256 % size))

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if ceiling != 0 && b >= ceiling {
				continue
			}
			out = append(out, alphabet[int(b)%size])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}
