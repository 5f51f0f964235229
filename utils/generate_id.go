package utils

import "github.com/google/uuid"

// GenerateID returns a new unique document id.
func GenerateID() string {
	return uuid.New().String()
}
