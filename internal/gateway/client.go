// Package gateway — единственная точка выхода консоли в REST API инвентаря.
//
// Шлюз подставляет bearer-токен, сериализует тело, разбирает ответ и переводит
// любой не-2xx в *APIError. На 401 токен выселяется из хранилища и сессия
// уводится на логин еще до того, как ошибка вернется вызывающему.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xela07ax/inventory-console/internal/infra"
)

const (
	HeaderRequestID = "X-Request-ID"
	statusTransport = "error"
)

// TokenSource — часть хранилища токена, нужная шлюзу.
type TokenSource interface {
	Get(ctx context.Context) (token string, ok bool, err error)
	Clear(ctx context.Context) error
}

// Redirector переводит сессию на экран логина после выселения токена.
type Redirector interface {
	RedirectToLogin(ctx context.Context)
}

// Request описывает один вызов API.
type Request struct {
	Method string
	Path   string // "/api/products?page=1"
	Body   any
	Header http.Header
	NoAuth bool // не прикладывать Authorization (логин)
}

// Result — разобранный успешный ответ.
// Value: пустое тело — пустой объект, JSON — распарсенное значение (nil для битого JSON),
// иначе — сырой текст.
type Result struct {
	Status    int
	Header    http.Header
	Body      []byte
	Value     any
	JSON      bool
	RequestID string
}

// Decode раскладывает JSON-ответ в out. Пустое тело и битый JSON оставляют out нетронутым.
func (r *Result) Decode(out any) error {
	if len(r.Body) == 0 || (r.JSON && r.Value == nil) {
		return nil
	}
	if !r.JSON {
		if s, ok := out.(*string); ok {
			*s = string(r.Body)
			return nil
		}
		return fmt.Errorf("gateway: response is not json (request %s)", r.RequestID)
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("gateway: failed to decode response: %w", err)
	}
	return nil
}

type Client struct {
	baseURL    string
	http       *http.Client
	tokens     TokenSource
	redirector Redirector

	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker
	metrics *Metrics
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithRedirector(r Redirector) Option {
	return func(c *Client) { c.redirector = r }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(api infra.APIConfig, gw infra.GatewayConfig, tokens TokenSource, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(api.BaseURL, "/"),
		http:    &http.Client{Timeout: api.Timeout},
		tokens:  tokens,
		limiter: newLimiter(gw),
		logger:  logger.Named("gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}
	c.cb = newBreaker(gw, c.metrics, c.logger)
	return c
}

// rawResponse — то, что прошло через предохранитель.
type rawResponse struct {
	status int
	header http.Header
	body   []byte
}

func (c *Client) Do(ctx context.Context, req Request) (*Result, error) {
	if c.baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	requestID := uuid.NewString()
	start := time.Now()

	httpReq, err := c.buildRequest(ctx, method, requestID, req)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.observe(method, statusTransport, start)
		return nil, fmt.Errorf("gateway: rate limiter: %w", err)
	}

	out, err := c.cb.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		raw := &rawResponse{status: resp.StatusCode, header: resp.Header, body: body}
		if resp.StatusCode >= http.StatusInternalServerError {
			return raw, errServerFailure
		}
		return raw, nil
	})
	if err != nil && !errors.Is(err, errServerFailure) {
		c.observe(method, statusTransport, start)
		c.logger.Warn("api transport failure",
			zap.String("method", method),
			zap.String("path", req.Path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, fmt.Errorf("gateway: %s %s: %w", method, req.Path, err)
	}

	raw := out.(*rawResponse)
	c.observe(method, strconv.Itoa(raw.status), start)

	isJSON := strings.Contains(strings.ToLower(raw.header.Get("Content-Type")), "application/json")
	var parsed any
	if len(raw.body) > 0 && isJSON {
		parsed = safeJSON(raw.body)
	}

	// 401 выселяет токен до построения ошибки, даже если тело ответа разборчивое
	if raw.status == http.StatusUnauthorized {
		c.evict(ctx, requestID)
	}

	if raw.status < 200 || raw.status > 299 {
		apiErr := newAPIError(raw.status, string(raw.body), parsed)
		apiErr.RequestID = requestID
		c.logger.Debug("api error response",
			zap.String("method", method),
			zap.String("path", req.Path),
			zap.Int("status", raw.status),
			zap.String("request_id", requestID))
		return nil, apiErr
	}

	res := &Result{
		Status:    raw.status,
		Header:    raw.header,
		Body:      raw.body,
		JSON:      isJSON,
		RequestID: requestID,
	}
	switch {
	case len(raw.body) == 0:
		res.Value = map[string]any{}
	case isJSON:
		res.Value = parsed
	default:
		res.Value = string(raw.body)
	}
	return res, nil
}

func (c *Client) buildRequest(ctx context.Context, method, requestID string, req Request) (*http.Request, error) {
	header := http.Header{}
	for k, vals := range req.Header {
		for _, v := range vals {
			header.Add(k, v)
		}
	}
	header.Set("Accept", "application/json")
	header.Set(HeaderRequestID, requestID)

	if !req.NoAuth && c.tokens != nil {
		token, ok, err := c.tokens.Get(ctx)
		if err != nil {
			// Нечитаемое хранилище равносильно отсутствию токена: API ответит 401
			c.logger.Warn("token store read failed", zap.String("request_id", requestID), zap.Error(err))
		} else if ok {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	body, err := encodeBody(req.Body, header)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: build request: %w", err)
	}
	httpReq.Header = header
	return httpReq, nil
}

// encodeBody оставляет готовые байты и потоки как есть, остальное кодирует в JSON.
func encodeBody(body any, header http.Header) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(b), nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	case io.Reader:
		return b, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("gateway: encode body: %w", err)
	}
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}
	return bytes.NewReader(data), nil
}

func (c *Client) evict(ctx context.Context, requestID string) {
	c.metrics.Evictions.Inc()
	c.logger.Warn("api returned 401, evicting session token", zap.String("request_id", requestID))

	if c.tokens != nil {
		// Контекст вызова может быть уже отменен, а выселение должно состояться
		if err := c.tokens.Clear(context.WithoutCancel(ctx)); err != nil {
			c.logger.Error("failed to clear token after 401", zap.Error(err))
		}
	}
	if c.redirector != nil {
		c.redirector.RedirectToLogin(ctx)
	}
}

func (c *Client) observe(method, status string, start time.Time) {
	c.metrics.TotalRequests.WithLabelValues(method, status).Inc()
	c.metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func safeJSON(b []byte) any {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	return v
}
