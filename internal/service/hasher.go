package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/taskvault/internal/config"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes bounds the input to the hash function. Longer passwords
// are truncated at the last UTF-8 rune boundary at or below this length.
const MaxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A malformed hash is a mismatch.
	Verify(password, hash string) bool
}

// NewPasswordHasher returns the hasher selected by cfg.
func NewPasswordHasher(cfg *config.Config) (PasswordHasher, error) {
	switch cfg.PasswordHasher {
	case "argon2id":
		return NewArgon2Hasher(cfg.Argon2MemoryKiB, cfg.Argon2Iterations, cfg.Argon2Parallelism), nil
	case "bcrypt":
		return NewBcryptHasher(cfg.BcryptCost), nil
	}
	return nil, fmt.Errorf("unsupported password hasher %q", cfg.PasswordHasher)
}

func truncatePassword(password string) string {
	if len(password) <= MaxPasswordBytes {
		return password
	}
	i := MaxPasswordBytes
	for i > 0 && !utf8.RuneStart(password[i]) {
		i--
	}
	return password[:i]
}

// Upper bounds on the cost parameters Verify accepts from a stored hash,
// unless the hasher itself is configured above them.
const (
	maxArgon2MemoryKiB  = 1 << 20
	maxArgon2Iterations = 16
	minArgon2Bytes      = 16
	maxArgon2Bytes      = 64
)

// Argon2Hasher produces PHC-formatted Argon2id hashes.
type Argon2Hasher struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLen     int
	keyLen      uint32
}

func NewArgon2Hasher(memoryKiB, iterations uint32, parallelism uint8) *Argon2Hasher {
	return &Argon2Hasher{
		memory:      memoryKiB,
		iterations:  iterations,
		parallelism: parallelism,
		saltLen:     16,
		keyLen:      32,
	}
}

var b64 = base64.RawStdEncoding

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(truncatePassword(password)), salt, h.iterations, h.memory, h.parallelism, h.keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.iterations, h.parallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

func (h *Argon2Hasher) Verify(password, hash string) bool {
	// "", "argon2id", "v=19", "m=…,t=…,p=…", salt, key
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false
	}
	if memory == 0 || iterations == 0 || parallelism == 0 {
		return false
	}
	if memory > max(h.memory, maxArgon2MemoryKiB) || iterations > max(h.iterations, maxArgon2Iterations) {
		return false
	}

	salt, err := b64.DecodeString(parts[4])
	if err != nil || !validArgon2Len(salt) {
		return false
	}
	want, err := b64.DecodeString(parts[5])
	if err != nil || !validArgon2Len(want) {
		return false
	}

	got := argon2.IDKey([]byte(truncatePassword(password)), salt, iterations, memory, parallelism, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

func validArgon2Len(b []byte) bool {
	return len(b) >= minArgon2Bytes && len(b) <= maxArgon2Bytes
}

// BcryptHasher wraps golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(truncatePassword(password)), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(truncatePassword(password))) == nil
}
