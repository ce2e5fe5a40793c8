package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-dashboard-api/internal/config"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Escopos de leitura usados pelo dashboard
var Scopes = []string{
	"https://www.googleapis.com/auth/analytics.readonly",
	"https://www.googleapis.com/auth/webmasters.readonly",
	"https://www.googleapis.com/auth/adwords",
}

// Refresher troca o refresh token por um novo access token no Google
type Refresher struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewRefresher(cfg *config.Config, httpClient *http.Client) *Refresher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Refresher{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

func (r *Refresher) oauthConfig() *oauth2.Config {
	endpoint := google.Endpoint
	if r.cfg.Google.TokenURL != "" {
		endpoint.TokenURL = r.cfg.Google.TokenURL
	}

	return &oauth2.Config{
		ClientID:     r.cfg.Google.ClientID,
		ClientSecret: r.cfg.Google.ClientSecret,
		RedirectURL:  r.cfg.Google.RedirectURI,
		Scopes:       Scopes,
		Endpoint:     endpoint,
	}
}

// Refresh devolve uma credencial com o novo access token. O refresh token
// retornado vem vazio quando o Google não o rotaciona.
func (r *Refresher) Refresh(ctx context.Context, refreshToken string) (*domain.Credential, error) {
	if err := r.cfg.ValidateOAuthClient(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConfigurationIncomplete, err)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)

	token, err := r.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			status := 0
			if retrieveErr.Response != nil {
				status = retrieveErr.Response.StatusCode
			}

			logrus.WithFields(logrus.Fields{
				"status": status,
				"code":   retrieveErr.ErrorCode,
			}).Warn("credentials: falha ao renovar token")

			if retrieveErr.ErrorCode == "invalid_grant" || status == http.StatusUnauthorized {
				return nil, fmt.Errorf("%w: refresh token revogado ou expirado", domain.ErrAuthenticationMissing)
			}
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnknown, err)
	}

	rotated := ""
	if token.RefreshToken != refreshToken {
		rotated = token.RefreshToken
	}

	return &domain.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: rotated,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
	}, nil
}
