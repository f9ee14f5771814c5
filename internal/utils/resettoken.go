package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ResetToken — одноразовый токен сброса пароля.
// Plain отдаётся пользователю один раз и нигде не сохраняется,
// в базу уходит только Hash.
type ResetToken struct {
	Plain     string
	Hash      string
	ExpiresAt time.Time
}

func NewResetToken(ttl time.Duration) (*ResetToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	plain := hex.EncodeToString(raw)

	return &ResetToken{
		Plain:     plain,
		Hash:      HashResetToken(plain),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// HashResetToken — быстрый детерминированный хеш для поиска по точному совпадению.
// Не для хранения паролей.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
