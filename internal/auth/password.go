package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher 使用 bcrypt 生成密码哈希
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher cost 为 0 时使用 bcrypt.DefaultCost
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword 比较明文密码与哈希
func CheckPassword(hash, plaintext string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
}
