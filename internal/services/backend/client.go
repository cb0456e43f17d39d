package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"TradeLens/internal/domain/models"
	"TradeLens/internal/domain/repository"
	domsvc "TradeLens/internal/domain/service"
	svccache "TradeLens/internal/service/cache"
	pkgcache "TradeLens/pkg/cache"
	xhttp "TradeLens/pkg/http"
	"TradeLens/pkg/logger"
)

// Option configures Client.
type Option func(*Client)

// WithCache serves GET responses from c for ttl. A zero ttl disables caching.
func WithCache(c svccache.BytesCache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.ttl = ttl
	}
}

// WithMetrics records latency, errors and cache hits per endpoint.
func WithMetrics(m repository.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// WithLogger sets the logger used for decode warnings.
func WithLogger(l *logger.Logger) Option {
	return func(cl *Client) {
		cl.log = l
	}
}

// Client talks to the market/portfolio backend. It never retries.
type Client struct {
	http    *xhttp.Client
	cache   svccache.BytesCache
	ttl     time.Duration
	metrics repository.Metrics
	log     *logger.Logger
}

// New builds a backend client over an HTTP client whose base URL points at the backend.
func New(httpClient *xhttp.Client, opts ...Option) *Client {
	c := &Client{http: httpClient, log: logger.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Error is a failed backend call: a transport failure, a non-2xx status
// or an undecodable body.
type Error struct {
	Endpoint string
	Err      error
}

func (e *Error) Error() string { return e.Endpoint + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// IsUpstream reports whether err came from a backend call.
func IsUpstream(err error) bool {
	var be *Error
	return errors.As(err, &be)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var se *xhttp.StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Rejection reports whether the backend refused the request with a 4xx
// status, returning that status and the backend's reason. FastAPI sends the
// reason as {"detail": "..."}; other bodies are returned as-is.
func Rejection(err error) (int, string, bool) {
	var se *xhttp.StatusError
	if !errors.As(err, &se) || se.Code < 400 || se.Code >= 500 {
		return 0, "", false
	}
	return se.Code, rejectionDetail(se.Body, se.Code), true
}

func rejectionDetail(body string, code int) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil && len(payload.Detail) > 0 {
		var msg string
		if json.Unmarshal(payload.Detail, &msg) == nil && msg != "" {
			return msg
		}
		return string(payload.Detail)
	}
	if body = strings.TrimSpace(body); body != "" {
		return body
	}
	return http.StatusText(code)
}

func symbolPath(symbol, suffix string) string {
	return "/stocks/" + url.PathEscape(symbol) + suffix
}

// uncached endpoints reflect the user's own writes and must always be fresh.
var uncached = map[string]bool{
	"portfolio":    true,
	"optimization": true,
}

// get fetches path, consulting the response cache first. endpoint is a
// low-cardinality label for metrics and the leading cache key segment, so
// keys read as predict:/stocks/SFBT/predict:days=7.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, dest interface{}) error {
	params := []interface{}{path}
	if len(query) > 0 {
		params = append(params, query.Encode())
	}
	key := pkgcache.GenerateKeyWithParams(endpoint, params...)
	cacheable := c.cache != nil && c.ttl > 0 && !uncached[endpoint]

	if cacheable {
		if b, ok, err := c.cache.GetBytes(ctx, key); err == nil && ok {
			if err := decodeJSON(b, dest); err == nil {
				if c.metrics != nil {
					c.metrics.RecordCacheHit(endpoint)
				}
				return nil
			}
		} else if err != nil {
			c.log.Warn("backend cache read failed", logger.String("key", key), logger.Error(err))
		}
	}

	start := time.Now()
	var body []byte
	err := c.http.GetJSON(ctx, path, query, &body)
	if err == nil {
		err = decodeJSON(body, dest)
	}
	if c.metrics != nil {
		c.metrics.RecordFetch(endpoint, time.Since(start).Seconds(), err)
	}
	if err != nil {
		return &Error{Endpoint: endpoint, Err: err}
	}

	if cacheable {
		if err := c.cache.SetBytes(ctx, key, body, c.ttl); err != nil {
			c.log.Warn("backend cache write failed", logger.String("key", key), logger.Error(err))
		}
	}
	return nil
}

func (c *Client) Stocks(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.get(ctx, "stocks", "/stocks", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (c *Client) History(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	var rows []historyRow
	if err := c.get(ctx, "history", symbolPath(symbol, "/history"), nil, &rows); err != nil {
		return nil, err
	}
	points := toPricePoints(rows)
	if dropped := len(rows) - len(points); dropped > 0 {
		c.log.Debug("history rows dropped", logger.String("symbol", symbol), logger.Int("dropped", dropped))
	}
	return points, nil
}

func (c *Client) Forecast(ctx context.Context, symbol string, days int) (models.Forecast, error) {
	var p forecastPayload
	q := url.Values{"days": {strconv.Itoa(days)}}
	if err := c.get(ctx, "predict", symbolPath(symbol, "/predict"), q, &p); err != nil {
		return models.Forecast{}, err
	}
	return p.toModel(), nil
}

func (c *Client) StockSentiment(ctx context.Context, symbol string) (models.StockSentiment, error) {
	var out models.StockSentiment
	if err := c.get(ctx, "sentiment", symbolPath(symbol, "/sentiment"), nil, &out); err != nil {
		return models.StockSentiment{}, err
	}
	if out.Symbol == "" {
		out.Symbol = symbol
	}
	out.News = nonNil(out.News)
	return out, nil
}

func (c *Client) MarketMood(ctx context.Context) (models.MarketMood, error) {
	var out models.MarketMood
	if err := c.get(ctx, "market_mood", "/market-mood", nil, &out); err != nil {
		return models.MarketMood{}, err
	}
	out.News = nonNil(out.News)
	return out, nil
}

func (c *Client) MarketSummary(ctx context.Context) (models.MarketSummary, error) {
	var p summaryPayload
	if err := c.get(ctx, "market_summary", "/market-summary", nil, &p); err != nil {
		return models.MarketSummary{}, err
	}
	return p.toModel(), nil
}

func (c *Client) Anomalies(ctx context.Context) ([]models.Anomaly, error) {
	var out []models.Anomaly
	if err := c.get(ctx, "anomalies", "/anomalies", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) Portfolio(ctx context.Context) (models.Portfolio, error) {
	var p portfolioPayload
	if err := c.get(ctx, "portfolio", "/portfolio", nil, &p); err != nil {
		return models.Portfolio{}, err
	}
	return p.toModel(), nil
}

// SubmitTransaction forwards a validated buy or sell. It is never cached.
func (c *Client) SubmitTransaction(ctx context.Context, req models.TransactionRequest) (models.Transaction, error) {
	body := map[string]interface{}{
		"type":     strings.ToUpper(req.Type),
		"symbol":   strings.ToUpper(req.Symbol),
		"quantity": req.Quantity,
		"price":    req.Price,
	}

	start := time.Now()
	var row transactionRow
	err := c.http.PostJSON(ctx, "/portfolio/transaction", body, &row)
	if c.metrics != nil {
		c.metrics.RecordFetch("transaction", time.Since(start).Seconds(), err)
	}
	if err != nil {
		return models.Transaction{}, &Error{Endpoint: "transaction", Err: err}
	}
	return row.toModel(), nil
}

// Analysis proxies the agent recommendation as an opaque document.
func (c *Client) Analysis(ctx context.Context, symbol string, profile models.RiskProfile) (map[string]any, error) {
	var out map[string]any
	q := url.Values{"profile": {profile.String()}}
	if err := c.get(ctx, "agent_analyze", "/agent/analyze/"+url.PathEscape(symbol), q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func (c *Client) Optimization(ctx context.Context, profile models.RiskProfile, amount float64) ([]string, error) {
	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	q := url.Values{"profile": {profile.String()}}
	if amount > 0 {
		q.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	}
	if err := c.get(ctx, "optimization", "/portfolio/optimization", q, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Suggestions), nil
}

var _ domsvc.Backend = (*Client)(nil)
