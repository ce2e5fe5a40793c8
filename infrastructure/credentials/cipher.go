// Package credentials guarda os tokens OAuth do Google: cifragem em repouso,
// cache do access token no Redis e renovação pelo refresh token.
package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var (
	ErrMissingKey     = errors.New("SECRET_KEY não configurada")
	ErrMalformedToken = errors.New("token cifrado inválido")
)

// Cipher cifra os tokens com secretbox usando uma chave derivada de SECRET_KEY
type Cipher struct {
	key [32]byte
}

func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrMissingKey
	}
	return &Cipher{key: sha256.Sum256([]byte(secret))}, nil
}

// Seal devolve base64(nonce || caixa); texto vazio continua vazio
func (c *Cipher) Seal(plain string) (string, error) {
	if plain == "" {
		return "", nil
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}

	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &c.key)
	return base64.StdEncoding.EncodeToString(box), nil
}

func (c *Cipher) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrMalformedToken
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &c.key)
	if !ok {
		return "", ErrMalformedToken
	}
	return string(plain), nil
}
