package domain

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrInvalidCredential  = errors.New("credential must carry an access or refresh token")
	ErrTokenCacheMiss     = errors.New("token cache miss")
)

// Credential é o par de tokens OAuth de um usuário para um serviço
type Credential struct {
	ID           string    `json:"-"`
	Subject      string    `json:"-"`
	Service      Source    `json:"service"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	TokenType    string    `json:"-"`
	Expiry       time.Time `json:"expiry"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SaveCredentialRequest é o corpo enviado pelo dashboard após o consentimento OAuth
type SaveCredentialRequest struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	TokenType    string    `json:"tokenType"`
	Expiry       time.Time `json:"expiry"`
}

// CredentialStatus indica se o serviço está conectado
type CredentialStatus struct {
	Service     Source     `json:"service"`
	Connected   bool       `json:"connected"`
	Expiry      *time.Time `json:"expiry,omitempty"`
	Refreshable bool       `json:"refreshable"`
}

// Claims identifica o usuário do dashboard; Subject é a chave das credenciais
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Valid indica se o access token ainda pode ser usado considerando a folga skew
func (c *Credential) Valid(now time.Time, skew time.Duration) bool {
	if c == nil || c.AccessToken == "" {
		return false
	}
	if c.Expiry.IsZero() {
		return true
	}
	return now.Add(skew).Before(c.Expiry)
}

// Status resume a credencial sem expor os tokens
func (c *Credential) Status() CredentialStatus {
	status := CredentialStatus{
		Service:     c.Service,
		Connected:   true,
		Refreshable: c.RefreshToken != "",
	}
	if !c.Expiry.IsZero() {
		expiry := c.Expiry
		status.Expiry = &expiry
	}
	return status
}
