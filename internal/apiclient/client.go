// Package apiclient traduz as operações de domínio (ativos e manutenções) em
// requisições ao backend REST e normaliza as respostas em valores ou erros.
// O cliente não guarda estado além da configuração: uma requisição por operação,
// sem retentativas.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"inventario-ativos/internal/models"
)

const DefaultBaseURL = "http://127.0.0.1:5000"

var ErrUnexpectedResponse = errors.New("unexpected response from server")

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient troca o *http.Client usado (testes, transportes customizados).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New cria um cliente para a URL base do backend. URL vazia usa DefaultBaseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// requestOptions descreve uma chamada; Body é serializado como JSON quando não nulo.
type requestOptions struct {
	Op     string
	Method string
	Path   string
	Query  map[string]string
	Body   any
}

// response guarda o corpo já lido e se ele deve ser tratado como JSON.
type response struct {
	status int
	body   []byte
	isJSON bool
}

func (c *Client) do(ctx context.Context, opts requestOptions) (resp response, err error) {
	start := time.Now()
	defer func() { observe(opts.Op, start, err) }()

	u := *c.baseURL
	u.Path = path.Join("/", u.Path, opts.Path)
	q := url.Values{}
	for k, v := range opts.Query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return response{}, fmt.Errorf("%s: encoding body: %w", opts.Op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), body)
	if err != nil {
		return response{}, fmt.Errorf("%s: failed to create request: %w", opts.Op, err)
	}
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("operation", opts.Op).Str("url", u.String()).Msg("request failed")
		return response{}, &NetworkError{Op: opts.Op, Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return response{}, &NetworkError{Op: opts.Op, Err: fmt.Errorf("reading response body: %w", err)}
	}

	resp = response{
		status: httpResp.StatusCode,
		body:   raw,
		isJSON: strings.Contains(httpResp.Header.Get("Content-Type"), "application/json"),
	}

	c.log.Debug().
		Str("operation", opts.Op).
		Str("method", opts.Method).
		Str("url", u.String()).
		Int("status", resp.status).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.status < 200 || resp.status > 299 {
		return resp, &APIError{
			StatusCode: resp.status,
			Message:    errorMessage(httpResp, resp),
		}
	}
	return resp, nil
}

// errorMessage usa o campo "message" do corpo JSON; sem ele, o texto do status HTTP.
func errorMessage(httpResp *http.Response, resp response) string {
	if resp.isJSON {
		if msg := gjson.GetBytes(resp.body, "message"); msg.Exists() && msg.String() != "" {
			return msg.String()
		}
	}
	text := strings.TrimSpace(strings.TrimPrefix(httpResp.Status, strconv.Itoa(resp.status)))
	if text == "" {
		text = http.StatusText(resp.status)
	}
	return text
}

// decodeEntity aceita a entidade embrulhada ({"ativo": {...}}) ou solta.
// Corpo vazio ou não JSON resulta em valor zero.
func decodeEntity(resp response, key string, v any) error {
	if !resp.isJSON || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if !gjson.ValidBytes(resp.body) {
		return fmt.Errorf("%w: invalid json", ErrUnexpectedResponse)
	}
	raw := resp.body
	if wrapped := gjson.GetBytes(resp.body, key); wrapped.IsObject() {
		raw = []byte(wrapped.Raw)
	} else if !gjson.ParseBytes(resp.body).IsObject() {
		return nil
	}
	return json.Unmarshal(raw, v)
}

//
// ATIVOS
//

// ListAtivos busca GET /ativos; critérios vazios não vão na query.
func (c *Client) ListAtivos(ctx context.Context, filter models.Filter) ([]models.Ativo, error) {
	resp, err := c.do(ctx, requestOptions{
		Op:     "list_ativos",
		Method: http.MethodGet,
		Path:   "/ativos",
		Query:  filter.Query(),
	})
	if err != nil {
		return nil, err
	}
	if !resp.isJSON {
		return nil, fmt.Errorf("list_ativos: %w: content-type is not json", ErrUnexpectedResponse)
	}

	ativos := []models.Ativo{}
	list := gjson.GetBytes(resp.body, "ativos")
	if !list.Exists() || list.Type == gjson.Null {
		return ativos, nil
	}
	if err := json.Unmarshal([]byte(list.Raw), &ativos); err != nil {
		return nil, fmt.Errorf("list_ativos: decoding ativos: %w", err)
	}
	return ativos, nil
}

func (c *Client) CreateAtivo(ctx context.Context, in models.AtivoInput) (models.Ativo, error) {
	var ativo models.Ativo
	resp, err := c.do(ctx, requestOptions{
		Op:     "create_ativo",
		Method: http.MethodPost,
		Path:   "/ativo",
		Body:   in,
	})
	if err != nil {
		return ativo, err
	}
	err = decodeEntity(resp, "ativo", &ativo)
	return ativo, err
}

func (c *Client) UpdateAtivo(ctx context.Context, tag string, in models.AtivoUpdate) (models.Ativo, error) {
	var ativo models.Ativo
	resp, err := c.do(ctx, requestOptions{
		Op:     "update_ativo",
		Method: http.MethodPut,
		Path:   "/ativo",
		Query:  map[string]string{"tag_patrimonio": tag},
		Body:   in,
	})
	if err != nil {
		return ativo, err
	}
	err = decodeEntity(resp, "ativo", &ativo)
	return ativo, err
}

func (c *Client) DeleteAtivo(ctx context.Context, tag string) error {
	_, err := c.do(ctx, requestOptions{
		Op:     "delete_ativo",
		Method: http.MethodDelete,
		Path:   "/ativo",
		Query:  map[string]string{"tag_patrimonio": tag},
	})
	return err
}

//
// MANUTENÇÕES
//

func (c *Client) AddManutencao(ctx context.Context, in models.ManutencaoInput) (models.Manutencao, error) {
	var m models.Manutencao
	resp, err := c.do(ctx, requestOptions{
		Op:     "add_manutencao",
		Method: http.MethodPost,
		Path:   "/manutencao",
		Body:   in,
	})
	if err != nil {
		return m, err
	}
	err = decodeEntity(resp, "manutencao", &m)
	return m, err
}

func (c *Client) UpdateManutencao(ctx context.Context, id int64, in models.ManutencaoUpdate) (models.Manutencao, error) {
	var m models.Manutencao
	resp, err := c.do(ctx, requestOptions{
		Op:     "update_manutencao",
		Method: http.MethodPut,
		Path:   "/manutencao",
		Query:  map[string]string{"id": strconv.FormatInt(id, 10)},
		Body:   in,
	})
	if err != nil {
		return m, err
	}
	err = decodeEntity(resp, "manutencao", &m)
	return m, err
}

func (c *Client) DeleteManutencao(ctx context.Context, id int64) error {
	_, err := c.do(ctx, requestOptions{
		Op:     "delete_manutencao",
		Method: http.MethodDelete,
		Path:   "/manutencao",
		Query:  map[string]string{"id": strconv.FormatInt(id, 10)},
	})
	return err
}
