package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hacklens/hacklens-go/internal/config"
	"github.com/hacklens/hacklens-go/internal/session"
)

// Client is the typed HTTP transport for the HackLens platform API. The
// bearer token comes from the session store on every authenticated call.
type Client struct {
	baseURL string
	http    *http.Client
	store   session.Store
}

func New(cfg *config.Config, store session.Store) *Client {
	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.API.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
	}
}

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
)

// APIError is a server rejection that maps to no sentinel above. Message
// carries the server-provided detail when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var envelope struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &envelope)
	msg := envelope.Detail
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusBadRequest, http.StatusConflict:
		// The platform reports duplicates as 400 with an "already ..."
		// detail ("already submitted", "Already registered").
		if strings.Contains(strings.ToLower(msg), "already") {
			return fmt.Errorf("%w: %s", ErrConflict, msg)
		}
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if authed {
		token, ok := c.store.Token()
		if !ok {
			return fmt.Errorf("%w: no session token", ErrUnauthorized)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := decodeError(resp)
		zap.S().Debugf("%s %s: %v", method, path, err)
		return err
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, authed bool, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", authed, out)
}

func (c *Client) postJSON(ctx context.Context, path string, authed bool, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(data))
	}
	return c.do(ctx, http.MethodPost, path, body, "application/json", authed, out)
}
