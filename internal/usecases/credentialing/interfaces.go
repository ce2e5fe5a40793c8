package credentialing

import (
	"context"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// Store persiste as credenciais por (subject, service)
type Store interface {
	Get(ctx context.Context, subject string, service domain.Source) (*domain.Credential, error)
	Save(ctx context.Context, credential *domain.Credential) error
	Delete(ctx context.Context, subject string, service domain.Source) error
}

// Cache guarda access tokens válidos por pouco tempo
type Cache interface {
	Get(ctx context.Context, subject string, service domain.Source) (string, error)
	Set(ctx context.Context, subject string, service domain.Source, token string, ttl time.Duration) error
	Delete(ctx context.Context, subject string, service domain.Source) error
}

// Refresher troca um refresh token por um novo access token
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*domain.Credential, error)
}

// Manager expõe as operações de credenciais usadas pelos handlers
type Manager interface {
	Connect(ctx context.Context, subject string, service domain.Source, req domain.SaveCredentialRequest) (*domain.CredentialStatus, error)
	Status(ctx context.Context, subject string, service domain.Source) (*domain.CredentialStatus, error)
	Disconnect(ctx context.Context, subject string, service domain.Source) error
}
