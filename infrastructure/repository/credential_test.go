package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-dashboard-api/infrastructure/credentials"
	"github.com/vfg2006/marketing-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

func setupCredentialRepository(t *testing.T) (CredentialRepository, sqlmock.Sqlmock, *credentials.Cipher) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cipher, err := credentials.NewCipher("test-key")
	require.NoError(t, err)

	return NewCredentialRepository(postgres.NewFromDB(db), cipher), mock, cipher
}

func TestCredentialRepository_Get(t *testing.T) {
	repo, mock, cipher := setupCredentialRepository(t)

	access, err := cipher.Seal("access")
	require.NoError(t, err)
	refresh, err := cipher.Seal("refresh")
	require.NoError(t, err)

	expiry := time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(credentialColumns).
		AddRow("abc123", "user-1", "ga4", access, refresh, "Bearer", expiry, now, now)

	mock.ExpectQuery(`SELECT (.+) FROM credentials WHERE`).
		WithArgs("ga4", "user-1").
		WillReturnRows(rows)

	credential, err := repo.Get(context.Background(), "user-1", domain.SourceGA4)
	require.NoError(t, err)

	assert.Equal(t, "abc123", credential.ID)
	assert.Equal(t, domain.SourceGA4, credential.Service)
	assert.Equal(t, "access", credential.AccessToken)
	assert.Equal(t, "refresh", credential.RefreshToken)
	assert.Equal(t, expiry, credential.Expiry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_Get_NotFound(t *testing.T) {
	repo, mock, _ := setupCredentialRepository(t)

	mock.ExpectQuery(`SELECT (.+) FROM credentials WHERE`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "user-1", domain.SourceAds)
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestCredentialRepository_Save(t *testing.T) {
	repo, mock, _ := setupCredentialRepository(t)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO credentials (.+) ON CONFLICT \(subject, service\) DO UPDATE`).
		WithArgs(sqlmock.AnyArg(), "user-1", "gsc", sqlmock.AnyArg(), sqlmock.AnyArg(), "Bearer", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("xyz789", now, now))

	credential := &domain.Credential{
		Subject:      "user-1",
		Service:      domain.SourceGSC,
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       now.Add(time.Hour),
	}

	require.NoError(t, repo.Save(context.Background(), credential))
	assert.Equal(t, "xyz789", credential.ID)
	assert.Equal(t, now, credential.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialRepository_Delete(t *testing.T) {
	repo, mock, _ := setupCredentialRepository(t)

	mock.ExpectExec(`DELETE FROM credentials WHERE`).
		WithArgs("ads", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "user-1", domain.SourceAds))
	assert.NoError(t, mock.ExpectationsWereMet())
}
