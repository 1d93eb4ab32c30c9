// Package apiclient é o cliente tipado do serviço remoto de empresas.
// O serviço (e a persistência) pertencem a terceiros: aqui só GET e POST.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Werneck0live/lista-empresas/internal/models"
)

var ErrUnexpectedStatus = errors.New("unexpected status from companies api")

// StatusError carrega o status não-2xx e um pedaço do corpo para log.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("companies api: status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// limite do corpo de erro guardado no StatusError
const maxErrBody = 512

type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "?"),
		http:    &http.Client{Timeout: timeout},
		log:     slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("cmp", "apiclient")
	return c
}

// List busca as empresas; "全部" (ou vazio) não envia o parâmetro industry.
func (c *Client) List(ctx context.Context, industry models.Industry) ([]models.Company, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if industry != "" && industry != models.IndustryAll {
		q := u.Query()
		q.Set("industry", string(industry))
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	var list []models.Company
	if err := c.do(req, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Company{}
	}
	return list, nil
}

// Create envia o novo registro; a resposta ecoa o registro criado.
func (c *Client) Create(ctx context.Context, in models.CompanyInput) (*models.Company, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode company: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var created models.Company
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) do(req *http.Request, dst any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("api_request_error", "method", req.Method, "url", req.URL.String(), "err", err)
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("api_request",
		"method", req.Method, "url", req.URL.String(),
		"status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBody))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
