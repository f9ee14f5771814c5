package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("токен истёк")
	ErrTokenInvalid = errors.New("неверный токен")
)

type TokenClaims struct {
	EmployeeID int
	IssuedAt   time.Time
}

// GenerateToken создаёт подписанный JWT с employee_id, exp и iat.
func GenerateToken(secret string, employeeID int, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"exp":         now.Add(duration).Unix(),
		"iat":         now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия.
// Просроченный токен — ErrTokenExpired, любая другая проблема — ErrTokenInvalid.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	employeeID, ok1 := claims["employee_id"].(float64)
	iat, ok2 := claims["iat"].(float64)
	if !ok1 || !ok2 {
		return nil, ErrTokenInvalid
	}

	return &TokenClaims{
		EmployeeID: int(employeeID),
		IssuedAt:   time.Unix(int64(iat), 0),
	}, nil
}
