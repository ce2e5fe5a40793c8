package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 16
)

// GenerateID devolve um identificador alfanumérico para chaves primárias
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
