package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 10
)

// GenerateID gera o id interno curto usado em contas e business managers
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
