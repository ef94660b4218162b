package factory

import (
	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword is the plaintext behind every factory-built hash.
const DefaultPassword = "12345678"

func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	hasHashedPassword := false

	for _, data := range customData {
		if _, exists := data["HashedPassword"]; exists {
			hasHashedPassword = true
			break
		}
	}

	if !hasHashedPassword {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)

		customData = append(customData, map[string]any{
			"HashedPassword": string(hashed),
		})
	}

	return instance.Build(customData...)
}
