package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/savinduamalka/agni-storefront/internal/domain"
	"github.com/savinduamalka/agni-storefront/internal/infrastructure/metrics"
	"github.com/savinduamalka/agni-storefront/pkg/config"
	"github.com/savinduamalka/agni-storefront/pkg/logger"
)

// maxBody límite de lectura de cualquier respuesta del backend.
const maxBody = 4 << 20

// Client cliente REST de la API de la tienda. Sin reintentos, caché ni de-duplicación:
// cada método de los adaptadores es exactamente una llamada.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Backend
	log        *logger.Logger
}

// Option personaliza el cliente.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics registra cada llamada en m.
func WithMetrics(m *metrics.Backend) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger asigna el logger de las llamadas.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient construye el cliente. Timeout cero deja el ciclo de vida por defecto;
// la cancelación llega por el context de cada llamada.
func NewClient(cfg config.BackendConfig, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return r.Method + " " + r.URL.Path
				}),
			),
		},
		log: logger.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// call describe una petición. route es la plantilla usada como etiqueta de métricas.
type call struct {
	method string
	route  string
	path   string
	token  string
	query  url.Values
	body   interface{}
}

// errorBody campos en los que el backend pone el motivo de un fallo.
type errorBody struct {
	Message string
	Error   string
	Code    string
}

// readErrorBody toma cada campo solo si es string; un campo con otro tipo
// (error como objeto, code numérico) no descarta a los demás.
func readErrorBody(raw []byte) errorBody {
	var obj map[string]json.RawMessage
	if json.Unmarshal(raw, &obj) != nil {
		return errorBody{}
	}
	str := func(key string) string {
		var v string
		if r, ok := obj[key]; ok && json.Unmarshal(r, &v) == nil {
			return strings.TrimSpace(v)
		}
		return ""
	}
	return errorBody{Message: str("message"), Error: str("error"), Code: str("code")}
}

// do ejecuta la llamada y devuelve el cuerpo crudo de una respuesta 2xx.
// Fallos de red → *domain.TransportError; status no exitoso → *domain.APIError.
func (c *Client) do(ctx context.Context, in call) ([]byte, error) {
	op := in.method + " " + in.route

	var body io.Reader
	if in.body != nil {
		raw, err := json.Marshal(in.body)
		if err != nil {
			return nil, fmt.Errorf("backend: serializar %s: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, in.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear request %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if in.token != "" {
		req.Header.Set("Authorization", "Bearer "+in.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Observe(in.route, in.method, 0, time.Since(start))
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		c.log.Warn().Err(err).Str("op", op).Msg("backend: llamada fallida")
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	c.metrics.Observe(in.route, in.method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{Status: resp.StatusCode}
		eb := readErrorBody(raw)
		apiErr.Code = eb.Code
		apiErr.Message = eb.Message
		if apiErr.Message == "" {
			apiErr.Message = eb.Error
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("op", op).Str("code", apiErr.Code).Msg("backend: respuesta no exitosa")
		return nil, apiErr
	}
	return raw, nil
}

// envelope separa el message opcional del payload. paths son claves (con puntos para
// anidar) buscadas en orden; si ninguna existe, el payload es el cuerpo completo.
func envelope(raw []byte, paths ...string) (string, json.RawMessage) {
	var obj map[string]json.RawMessage
	if json.Unmarshal(raw, &obj) != nil {
		return "", raw
	}
	var msg string
	if m, ok := obj["message"]; ok {
		_ = json.Unmarshal(m, &msg)
	}
	for _, p := range paths {
		if v, ok := lookup(obj, strings.Split(p, ".")); ok {
			return msg, v
		}
	}
	return msg, raw
}

func lookup(obj map[string]json.RawMessage, keys []string) (json.RawMessage, bool) {
	v, ok := obj[keys[0]]
	if !ok {
		return nil, false
	}
	if len(keys) == 1 {
		return v, true
	}
	var next map[string]json.RawMessage
	if json.Unmarshal(v, &next) != nil {
		return nil, false
	}
	return lookup(next, keys[1:])
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func isArray(raw []byte) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '['
}

func isObject(raw []byte) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

// decode deserializa un payload exitoso; un payload ilegible es un error del contrato.
func decode(op string, raw json.RawMessage, out interface{}) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: decodificar %s: %w", op, err)
	}
	return nil
}
