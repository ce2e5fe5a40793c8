package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/marketing-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"github.com/vfg2006/marketing-dashboard-api/pkg/utils"
)

const credentialsTable = "credentials"

var credentialColumns = []string{
	"id", "subject", "service", "access_token", "refresh_token",
	"token_type", "expiry", "created_at", "updated_at",
}

// TokenCipher cifra os tokens antes de irem para o banco
type TokenCipher interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

type CredentialRepository interface {
	Get(ctx context.Context, subject string, service domain.Source) (*domain.Credential, error)
	Save(ctx context.Context, credential *domain.Credential) error
	Delete(ctx context.Context, subject string, service domain.Source) error
}

type credentialRepository struct {
	conn   *postgres.Connection
	cipher TokenCipher
}

func NewCredentialRepository(conn *postgres.Connection, cipher TokenCipher) CredentialRepository {
	return &credentialRepository{
		conn:   conn,
		cipher: cipher,
	}
}

func (r *credentialRepository) Get(ctx context.Context, subject string, service domain.Source) (*domain.Credential, error) {
	credentialSQL, credentialArgs, err := squirrel.
		Select(credentialColumns...).
		From(credentialsTable).
		Where(squirrel.Eq{"subject": subject, "service": string(service)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRowContext(ctx, credentialSQL, credentialArgs...)

	credential, err := r.deserialize(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar credencial: %w", err)
	}

	return credential, nil
}

// Save faz upsert por (subject, service). Refresh token vazio preserva o
// que já estava salvo, já que o Google nem sempre o reenvia.
func (r *credentialRepository) Save(ctx context.Context, credential *domain.Credential) error {
	accessToken, err := r.cipher.Seal(credential.AccessToken)
	if err != nil {
		return fmt.Errorf("erro ao cifrar access token: %w", err)
	}

	refreshToken, err := r.cipher.Seal(credential.RefreshToken)
	if err != nil {
		return fmt.Errorf("erro ao cifrar refresh token: %w", err)
	}

	if credential.ID == "" {
		credential.ID, err = utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id da credencial: %w", err)
		}
	}

	expiry := sql.NullTime{Time: credential.Expiry, Valid: !credential.Expiry.IsZero()}

	credentialSQL, credentialArgs, err := squirrel.
		Insert(credentialsTable).
		Columns("id", "subject", "service", "access_token", "refresh_token", "token_type", "expiry").
		Values(credential.ID, credential.Subject, string(credential.Service), accessToken, refreshToken, credential.TokenType, expiry).
		Suffix(`ON CONFLICT (subject, service) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(NULLIF(EXCLUDED.refresh_token, ''), credentials.refresh_token),
			token_type = EXCLUDED.token_type,
			expiry = EXCLUDED.expiry,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	err = r.conn.QueryRowContext(ctx, credentialSQL, credentialArgs...).
		Scan(&credential.ID, &credential.CreatedAt, &credential.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao salvar credencial: %w", err)
	}

	return nil
}

func (r *credentialRepository) Delete(ctx context.Context, subject string, service domain.Source) error {
	credentialSQL, credentialArgs, err := squirrel.
		Delete(credentialsTable).
		Where(squirrel.Eq{"subject": subject, "service": string(service)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.ExecContext(ctx, credentialSQL, credentialArgs...); err != nil {
		return fmt.Errorf("erro ao remover credencial: %w", err)
	}

	return nil
}

func (r *credentialRepository) deserialize(row *sql.Row) (*domain.Credential, error) {
	var (
		credential   domain.Credential
		service      string
		accessToken  string
		refreshToken sql.NullString
		tokenType    sql.NullString
		expiry       sql.NullTime
	)

	err := row.Scan(
		&credential.ID,
		&credential.Subject,
		&service,
		&accessToken,
		&refreshToken,
		&tokenType,
		&expiry,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	credential.Service = domain.Source(service)
	credential.TokenType = tokenType.String
	if expiry.Valid {
		credential.Expiry = expiry.Time
	}

	if credential.AccessToken, err = r.cipher.Open(accessToken); err != nil {
		return nil, err
	}
	if credential.RefreshToken, err = r.cipher.Open(refreshToken.String); err != nil {
		return nil, err
	}

	return &credential, nil
}
