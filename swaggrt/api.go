package swaggrt

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/swagg-dev/swagg/parser"
)

// API serves the handlers bound by a generated service type. It is an
// http.Handler routing through an http.ServeMux.
type API struct {
	mux *http.ServeMux
	cfg config

	mu   sync.Mutex
	errs []error

	once    sync.Once
	handler http.Handler
}

// RequestLogger is called once per served request.
type RequestLogger func(method, pattern string, status int, duration time.Duration)

// ErrorHandler writes the response for a failed request. err is an
// *HTTPError for decoding failures; handler errors are passed unchanged.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures an API.
type Option func(*config)

type config struct {
	logger        parser.Logger
	requestLogger RequestLogger
	errorHandler  ErrorHandler
	requestID     *RequestIDConfig
	middleware    []func(http.Handler) http.Handler
	maxBodySize   int64
}

// DefaultMaxBodySize is the request body limit unless WithMaxBodySize
// changes it.
const DefaultMaxBodySize = 1 << 20

// WithMaxBodySize limits request bodies to n bytes; larger bodies are
// answered with 413. n <= 0 is ignored.
func WithMaxBodySize(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithLogger sets the logger for registration and request failures. Nil is
// ignored.
func WithLogger(l parser.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequestLogger sets a callback observing every served request.
func WithRequestLogger(fn RequestLogger) Option {
	return func(c *config) {
		c.requestLogger = fn
	}
}

// WithErrorHandler replaces the default error response, a JSON object
// {"error": message} with the status of the error.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(c *config) {
		if fn != nil {
			c.errorHandler = fn
		}
	}
}

// WithRequestID assigns every request an ID, see RequestIDConfig.
func WithRequestID(cfg RequestIDConfig) Option {
	return func(c *config) {
		c.requestID = &cfg
	}
}

// WithMiddleware wraps the whole API. The first middleware is the
// outermost.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(c *config) {
		c.middleware = append(c.middleware, mw...)
	}
}

// New returns an API with no routes.
func New(opts ...Option) *API {
	cfg := config{
		logger:       parser.NopLogger{},
		errorHandler: WriteError,
		maxBodySize:  DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &API{mux: http.NewServeMux(), cfg: cfg}
}

// Err returns the registration errors collected so far, joined.
func (a *API) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return errors.Join(a.errs...)
}

// Handler returns the API wrapped in its middleware. Routes bound later
// are still served.
func (a *API) Handler() http.Handler {
	a.once.Do(func() {
		var h http.Handler = a.mux
		if a.cfg.requestID != nil {
			h = RequestIDMiddleware(*a.cfg.requestID)(h)
		}
		for i := len(a.cfg.middleware) - 1; i >= 0; i-- {
			h = a.cfg.middleware[i](h)
		}
		a.handler = h
	})
	return a.handler
}

// ServeHTTP implements http.Handler.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Handler().ServeHTTP(w, r)
}

func (a *API) fail(err error) {
	a.mu.Lock()
	a.errs = append(a.errs, err)
	a.mu.Unlock()
	a.cfg.logger.Error("route registration failed", "error", err)
}

// handle registers h on the mux. ServeMux panics on conflicting patterns;
// the panic is turned into a registration error.
func (a *API) handle(pattern string, h http.Handler) {
	defer func() {
		if v := recover(); v != nil {
			a.fail(fmt.Errorf("register %s: %v", pattern, v))
		}
	}()
	a.mux.Handle(pattern, h)
}

// statusRecorder remembers the status written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
