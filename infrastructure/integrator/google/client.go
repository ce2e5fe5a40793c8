package google

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultTimeout = 30 * time.Second

// errorResponse é o corpo de erro comum às APIs do Google
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// status devolve o status HTTP efetivo; o status textual do Google tem
// precedência porque alguns erros de cota chegam como 400
func (e errorResponse) status(httpStatus int) int {
	switch e.Error.Status {
	case "UNAUTHENTICATED":
		return http.StatusUnauthorized
	case "PERMISSION_DENIED":
		return http.StatusForbidden
	case "NOT_FOUND":
		return http.StatusNotFound
	case "RESOURCE_EXHAUSTED":
		return http.StatusTooManyRequests
	}
	return httpStatus
}

// client faz chamadas JSON autenticadas com o access token do usuário
type client struct {
	httpClient *http.Client
	source     domain.Source
}

func newClient(source domain.Source, httpClient *http.Client) *client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &client{httpClient: httpClient, source: source}
}

func (c *client) post(ctx context.Context, url, token string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "create request")
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s request failed", c.source)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return c.upstreamError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "decode %s response", c.source)
	}

	return nil
}

func (c *client) upstreamError(httpStatus int, body []byte) error {
	var parsed errorResponse
	message := strings.TrimSpace(string(body))

	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
		httpStatus = parsed.status(httpStatus)
	}

	logrus.WithFields(logrus.Fields{
		"source": c.source,
		"status": httpStatus,
	}).Warnf("Erro na resposta da API: %s", message)

	return domain.NewUpstreamError(c.source, httpStatus, message)
}
