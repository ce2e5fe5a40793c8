package credentialing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
	"github.com/vfg2006/marketing-dashboard-api/pkg/metrics"
)

type Service struct {
	cfg       *config.Config
	store     Store
	cache     Cache
	refresher Refresher
	metrics   *metrics.Metrics
	now       func() time.Time

	// serializa renovações do mesmo (subject, service)
	mu      sync.Mutex
	pending map[string]*keyLock
}

// keyLock é liberado do mapa quando ninguém mais o segura ou espera
type keyLock struct {
	sync.Mutex
	refs int
}

func NewService(cfg *config.Config, store Store, cache Cache, refresher Refresher, m *metrics.Metrics) *Service {
	return &Service{
		cfg:       cfg,
		store:     store,
		cache:     cache,
		refresher: refresher,
		metrics:   m,
		now:       time.Now,
		pending:   make(map[string]*keyLock),
	}
}

// Connect grava o par de tokens entregue pelo dashboard após o consentimento
func (s *Service) Connect(ctx context.Context, subject string, service domain.Source, req domain.SaveCredentialRequest) (*domain.CredentialStatus, error) {
	if subject == "" {
		return nil, domain.ErrAuthenticationMissing
	}
	if req.AccessToken == "" && req.RefreshToken == "" {
		return nil, domain.ErrInvalidCredential
	}

	credential := &domain.Credential{
		Subject:      subject,
		Service:      service,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		TokenType:    req.TokenType,
		Expiry:       req.Expiry,
	}

	if err := s.store.Save(ctx, credential); err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{"service": string(service), "user_subject": subject})
	if err := s.cache.Delete(ctx, subject, service); err != nil {
		logger.WithError(err).Warn("credentials: could not invalidate cached token")
	}
	s.remember(ctx, credential)

	logger.Info("credentials: connected")

	status := credential.Status()
	return &status, nil
}

// Status informa se o serviço está conectado; credencial ausente não é erro
func (s *Service) Status(ctx context.Context, subject string, service domain.Source) (*domain.CredentialStatus, error) {
	if subject == "" {
		return nil, domain.ErrAuthenticationMissing
	}

	credential, err := s.store.Get(ctx, subject, service)
	if errors.Is(err, domain.ErrCredentialNotFound) {
		return &domain.CredentialStatus{Service: service}, nil
	}
	if err != nil {
		return nil, err
	}

	status := credential.Status()
	return &status, nil
}

// Disconnect remove a credencial e o token em cache; é idempotente
func (s *Service) Disconnect(ctx context.Context, subject string, service domain.Source) error {
	if subject == "" {
		return domain.ErrAuthenticationMissing
	}

	if err := s.store.Delete(ctx, subject, service); err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, subject, service); err != nil {
		log.ForContext(ctx).
			WithFields(log.Fields{"service": string(service), "user_subject": subject}).
			WithError(err).
			Warn("credentials: could not invalidate cached token")
	}

	return nil
}

// AccessToken devolve um access token utilizável: primeiro o cache, depois o
// banco e, se expirado, renova pelo refresh token.
func (s *Service) AccessToken(ctx context.Context, subject string, service domain.Source) (string, error) {
	if subject == "" {
		return "", domain.ErrAuthenticationMissing
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{"service": string(service), "user_subject": subject})

	if token, ok := s.cached(ctx, logger, subject, service); ok {
		return token, nil
	}

	unlock := s.lockFor(subject, service)
	defer unlock()

	// outra requisição pode ter renovado enquanto esperávamos
	if token, ok := s.cached(ctx, logger, subject, service); ok {
		return token, nil
	}

	credential, err := s.store.Get(ctx, subject, service)
	if errors.Is(err, domain.ErrCredentialNotFound) {
		return "", domain.ErrAuthenticationMissing
	}
	if err != nil {
		return "", err
	}

	if credential.Valid(s.now(), s.cfg.Google.ExpirySkew) {
		s.remember(ctx, credential)
		return credential.AccessToken, nil
	}

	if credential.RefreshToken == "" {
		logger.Warn("credentials: token expired and no refresh token stored")
		return "", domain.ErrAuthenticationMissing
	}

	refreshed, err := s.refresher.Refresh(ctx, credential.RefreshToken)
	s.metrics.RecordTokenRefresh(string(service), err)
	if err != nil {
		logger.WithError(err).Warn("credentials: refresh failed")
		return "", err
	}

	credential.AccessToken = refreshed.AccessToken
	credential.Expiry = refreshed.Expiry
	if refreshed.TokenType != "" {
		credential.TokenType = refreshed.TokenType
	}
	if refreshed.RefreshToken != "" {
		credential.RefreshToken = refreshed.RefreshToken
	}

	if err := s.store.Save(ctx, credential); err != nil {
		// o token renovado ainda serve para esta requisição
		logger.WithError(err).Error("credentials: could not persist refreshed token")
	}
	s.remember(ctx, credential)

	logger.Debug("credentials: token refreshed")

	return credential.AccessToken, nil
}

func (s *Service) cached(ctx context.Context, logger log.Logger, subject string, service domain.Source) (string, bool) {
	token, err := s.cache.Get(ctx, subject, service)
	hit := err == nil && token != ""
	s.metrics.RecordTokenCache(string(service), hit)

	if err != nil && !errors.Is(err, domain.ErrTokenCacheMiss) {
		logger.WithError(err).Warn("credentials: token cache unavailable")
	}

	return token, hit
}

// remember coloca o token no cache até skew antes de expirar
func (s *Service) remember(ctx context.Context, credential *domain.Credential) {
	if credential.AccessToken == "" {
		return
	}

	ttl := s.cfg.Redis.TokenTTL
	if !credential.Expiry.IsZero() {
		ttl = credential.Expiry.Sub(s.now()) - s.cfg.Google.ExpirySkew
	}

	if err := s.cache.Set(ctx, credential.Subject, credential.Service, credential.AccessToken, ttl); err != nil {
		log.ForContext(ctx).
			WithFields(log.Fields{"service": string(credential.Service), "user_subject": credential.Subject}).
			WithError(err).
			Warn("credentials: could not cache token")
	}
}

// lockFor trava o par (subject, service) e devolve a função que o libera
func (s *Service) lockFor(subject string, service domain.Source) func() {
	key := string(service) + ":" + subject

	s.mu.Lock()
	lock, ok := s.pending[key]
	if !ok {
		lock = &keyLock{}
		s.pending[key] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.Lock()

	return func() {
		lock.Unlock()

		s.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.pending, key)
		}
		s.mu.Unlock()
	}
}
