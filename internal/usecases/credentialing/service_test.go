package credentialing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/internal/usecases/credentialing/mocks"
	"github.com/vfg2006/marketing-dashboard-api/pkg/log"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc       *Service
	store     *mocks.MockStore
	cache     *mocks.MockCache
	refresher *mocks.MockRefresher
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	f := fixture{
		store:     mocks.NewMockStore(ctrl),
		cache:     mocks.NewMockCache(ctrl),
		refresher: mocks.NewMockRefresher(ctrl),
	}

	cfg := &config.Config{
		Google: config.Google{ExpirySkew: 2 * time.Minute},
		Redis:  config.Redis{TokenTTL: 55 * time.Minute},
	}

	f.svc = NewService(cfg, f.store, f.cache, f.refresher, nil)
	f.svc.now = func() time.Time { return testNow }
	return f
}

func TestService_AccessToken_CacheHit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.cache.EXPECT().Get(ctx, "user-1", domain.SourceGA4).Return("cached", nil)

	token, err := f.svc.AccessToken(ctx, "user-1", domain.SourceGA4)
	require.NoError(t, err)
	assert.Equal(t, "cached", token)
}

func TestService_AccessToken_StoredValid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	credential := &domain.Credential{
		Subject:     "user-1",
		Service:     domain.SourceGA4,
		AccessToken: "stored",
		Expiry:      testNow.Add(30 * time.Minute),
	}

	f.cache.EXPECT().Get(ctx, "user-1", domain.SourceGA4).Return("", domain.ErrTokenCacheMiss).Times(2)
	f.store.EXPECT().Get(ctx, "user-1", domain.SourceGA4).Return(credential, nil)
	f.cache.EXPECT().Set(ctx, "user-1", domain.SourceGA4, "stored", 28*time.Minute).Return(nil)

	token, err := f.svc.AccessToken(ctx, "user-1", domain.SourceGA4)
	require.NoError(t, err)
	assert.Equal(t, "stored", token)
}

func TestService_AccessToken_Refresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	credential := &domain.Credential{
		Subject:      "user-1",
		Service:      domain.SourceAds,
		AccessToken:  "old",
		RefreshToken: "refresh-1",
		Expiry:       testNow.Add(time.Minute),
	}

	f.cache.EXPECT().Get(ctx, "user-1", domain.SourceAds).Return("", domain.ErrTokenCacheMiss).Times(2)
	f.store.EXPECT().Get(ctx, "user-1", domain.SourceAds).Return(credential, nil)
	f.refresher.EXPECT().Refresh(ctx, "refresh-1").Return(&domain.Credential{
		AccessToken:  "new",
		RefreshToken: "refresh-2",
		TokenType:    "Bearer",
		Expiry:       testNow.Add(time.Hour),
	}, nil)
	f.store.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Credential) error {
		assert.Equal(t, "new", c.AccessToken)
		assert.Equal(t, "refresh-2", c.RefreshToken)
		assert.Equal(t, "Bearer", c.TokenType)
		return nil
	})
	f.cache.EXPECT().Set(ctx, "user-1", domain.SourceAds, "new", 58*time.Minute).Return(nil)

	token, err := f.svc.AccessToken(ctx, "user-1", domain.SourceAds)
	require.NoError(t, err)
	assert.Equal(t, "new", token)
	assert.Empty(t, f.svc.pending)
}

func TestService_AccessToken_RefreshPersistFailureStillServes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	credential := &domain.Credential{
		Subject:      "user-1",
		Service:      domain.SourceGSC,
		RefreshToken: "refresh-1",
	}

	f.cache.EXPECT().Get(ctx, "user-1", domain.SourceGSC).Return("", domain.ErrTokenCacheMiss).Times(2)
	f.store.EXPECT().Get(ctx, "user-1", domain.SourceGSC).Return(credential, nil)
	f.refresher.EXPECT().Refresh(ctx, "refresh-1").Return(&domain.Credential{
		AccessToken: "new",
		Expiry:      testNow.Add(time.Hour),
	}, nil)
	f.store.EXPECT().Save(ctx, gomock.Any()).Return(errors.New("db down"))
	f.cache.EXPECT().Set(ctx, "user-1", domain.SourceGSC, "new", gomock.Any()).Return(nil)

	token, err := f.svc.AccessToken(ctx, "user-1", domain.SourceGSC)
	require.NoError(t, err)
	assert.Equal(t, "new", token)
}

func TestService_AccessToken_Errors(t *testing.T) {
	ctx := context.Background()
	revoked := errors.New("revoked")

	tests := []struct {
		name  string
		setup func(f fixture)
		want  error
	}{
		{
			name: "sem credencial",
			setup: func(f fixture) {
				f.store.EXPECT().Get(ctx, "user-1", domain.SourceGA4).Return(nil, domain.ErrCredentialNotFound)
			},
			want: domain.ErrAuthenticationMissing,
		},
		{
			name: "expirado sem refresh token",
			setup: func(f fixture) {
				f.store.EXPECT().Get(ctx, "user-1", domain.SourceGA4).Return(&domain.Credential{
					AccessToken: "old",
					Expiry:      testNow.Add(-time.Hour),
				}, nil)
			},
			want: domain.ErrAuthenticationMissing,
		},
		{
			name: "refresh revogado",
			setup: func(f fixture) {
				f.store.EXPECT().Get(ctx, "user-1", domain.SourceGA4).Return(&domain.Credential{
					RefreshToken: "refresh-1",
				}, nil)
				f.refresher.EXPECT().Refresh(ctx, "refresh-1").Return(nil, errors.Join(domain.ErrAuthenticationMissing, revoked))
			},
			want: domain.ErrAuthenticationMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cache.EXPECT().Get(ctx, "user-1", domain.SourceGA4).Return("", domain.ErrTokenCacheMiss).Times(2)
			tt.setup(f)

			_, err := f.svc.AccessToken(ctx, "user-1", domain.SourceGA4)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_AccessToken_CacheUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.cache.EXPECT().Get(ctx, "user-1", domain.SourceGA4).Return("", errors.New("connection refused")).Times(2)
	f.store.EXPECT().Get(ctx, "user-1", domain.SourceGA4).Return(&domain.Credential{
		Subject:     "user-1",
		Service:     domain.SourceGA4,
		AccessToken: "stored",
	}, nil)
	f.cache.EXPECT().Set(ctx, "user-1", domain.SourceGA4, "stored", 55*time.Minute).Return(errors.New("connection refused"))

	token, err := f.svc.AccessToken(ctx, "user-1", domain.SourceGA4)
	require.NoError(t, err)
	assert.Equal(t, "stored", token)
}

func TestService_AccessToken_MissingSubject(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AccessToken(context.Background(), "", domain.SourceGA4)
	assert.ErrorIs(t, err, domain.ErrAuthenticationMissing)
}

func TestService_Connect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := domain.SaveCredentialRequest{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       testNow.Add(time.Hour),
	}

	f.store.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Credential) error {
		assert.Equal(t, "user-1", c.Subject)
		assert.Equal(t, domain.SourceGSC, c.Service)
		return nil
	})
	f.cache.EXPECT().Delete(ctx, "user-1", domain.SourceGSC).Return(nil)
	f.cache.EXPECT().Set(ctx, "user-1", domain.SourceGSC, "access", 58*time.Minute).Return(nil)

	status, err := f.svc.Connect(ctx, "user-1", domain.SourceGSC, req)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.True(t, status.Refreshable)
	require.NotNil(t, status.Expiry)
}

func TestService_Connect_Invalid(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Connect(context.Background(), "user-1", domain.SourceGSC, domain.SaveCredentialRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)

	_, err = f.svc.Connect(context.Background(), "", domain.SourceGSC, domain.SaveCredentialRequest{AccessToken: "a"})
	assert.ErrorIs(t, err, domain.ErrAuthenticationMissing)
}

func TestService_Status(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().Get(ctx, "user-1", domain.SourceAds).Return(nil, domain.ErrCredentialNotFound)

	status, err := f.svc.Status(ctx, "user-1", domain.SourceAds)
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, domain.SourceAds, status.Service)

	f.store.EXPECT().Get(ctx, "user-1", domain.SourceAds).Return(&domain.Credential{
		Service:      domain.SourceAds,
		RefreshToken: "r",
	}, nil)

	status, err = f.svc.Status(ctx, "user-1", domain.SourceAds)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.True(t, status.Refreshable)
}

func TestService_Disconnect(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.EXPECT().Delete(ctx, "user-1", domain.SourceGA4).Return(nil)
	f.cache.EXPECT().Delete(ctx, "user-1", domain.SourceGA4).Return(errors.New("redis down"))

	assert.NoError(t, f.svc.Disconnect(ctx, "user-1", domain.SourceGA4))
}

func TestService_LockFor(t *testing.T) {
	f := newFixture(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := f.svc.lockFor("user-1", domain.SourceGSC)
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, f.svc.pending)

	unlockA := f.svc.lockFor("user-1", domain.SourceGA4)
	unlockB := f.svc.lockFor("user-2", domain.SourceGA4)
	assert.Len(t, f.svc.pending, 2)
	unlockA()
	unlockB()
	assert.Empty(t, f.svc.pending)
}
