package rangka

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option represents a client configuration option.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the default per-call timeout (300s when unset).
// Individual calls may override it with the Timeout request option.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithDefaultHeaders sets headers sent with every request. Accepts a plain
// string map or a schema struct, flattened per Flatten.
func WithDefaultHeaders(v any) Option {
	return func(c *Client) {
		m, err := Flatten(v)
		if err != nil {
			c.configProblems = append(c.configProblems, "default headers: "+err.Error())
			return
		}
		c.headers = mergeValues(c.headers, m)
	}
}

// WithDefaultCookies sets cookies sent with every request.
func WithDefaultCookies(v any) Option {
	return func(c *Client) {
		m, err := Flatten(v)
		if err != nil {
			c.configProblems = append(c.configProblems, "default cookies: "+err.Error())
			return
		}
		c.cookies = mergeValues(c.cookies, m)
	}
}

// WithDefaultQuery sets query parameters sent with every request. They merge
// over any query string carried on the base URL.
func WithDefaultQuery(v any) Option {
	return func(c *Client) {
		m, err := Flatten(v)
		if err != nil {
			c.configProblems = append(c.configProblems, "default query: "+err.Error())
			return
		}
		c.query = mergeValues(c.query, m)
	}
}

// WithBearerToken sends the token as a default Authorization header.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.bearer = token
	}
}

// WithErrorModel registers a model factory to parse error payloads for one
// status code. The error is still raised as its family *HTTPError; only the
// payload changes.
func WithErrorModel(code int, f ErrorModelFunc) Option {
	return func(c *Client) {
		if c.errorModels == nil {
			c.errorModels = map[int]ErrorModelFunc{}
		}
		c.errorModels[code] = f
	}
}

// WithErrorModels registers model factories for several status codes.
func WithErrorModels(models map[int]ErrorModelFunc) Option {
	return func(c *Client) {
		for code, f := range models {
			WithErrorModel(code, f)(c)
		}
	}
}

// WithRateLimit allows count requests per interval across the whole client.
// Acquisition blocks the caller until capacity is available.
func WithRateLimit(count int, interval time.Duration) Option {
	return func(c *Client) {
		c.limitCount = count
		c.limitInterval = interval
		if count > 0 && interval > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(float64(count)/interval.Seconds()), count)
		}
	}
}

// WithMetrics enables Prometheus metrics on the default registerer.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithLogger sets the logger used for request, rate-limit and close-state
// logging.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a plain console logger.
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithDebug enables debug logging with the default configuration.
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets a custom debug configuration.
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// validateConfiguration aggregates all configuration problems into one
// *ConfigurationError so a misconfigured client fails fast at construction.
func (c *Client) validateConfiguration() error {
	problems := c.configProblems
	problems = append(problems, c.validateBaseURL()...)
	problems = append(problems, c.validateRateLimit()...)
	problems = append(problems, c.validateTimeout()...)
	problems = append(problems, c.validateDebugConfig()...)
	problems = append(problems, c.validateHTTPClient()...)

	if len(problems) > 0 {
		return &ConfigurationError{Problems: problems}
	}
	return nil
}

func (c *Client) validateBaseURL() []string {
	var problems []string

	if c.base == nil {
		return problems
	}
	if c.base.Scheme != "http" && c.base.Scheme != "https" {
		problems = append(problems, "base URL scheme must be http or https")
	}
	if c.base.Host == "" {
		problems = append(problems, "base URL must include a host")
	}

	return problems
}

func (c *Client) validateRateLimit() []string {
	var problems []string

	if c.limitCount == 0 && c.limitInterval == 0 {
		return problems
	}
	if c.limitCount <= 0 {
		problems = append(problems, "rate limit count must be positive")
	}
	if c.limitInterval <= 0 {
		problems = append(problems, "rate limit interval must be positive")
	}
	if c.limitCount > 1000000 {
		problems = append(problems, "rate limit count > 1M may cause memory issues")
	}

	return problems
}

func (c *Client) validateTimeout() []string {
	var problems []string

	if c.timeout <= 0 {
		problems = append(problems, "timeout must be positive")
	}
	if c.timeout > time.Hour {
		problems = append(problems, "timeout > 1h may cause requests to hang for too long")
	}

	return problems
}

func (c *Client) validateDebugConfig() []string {
	var problems []string

	if c.debug != nil && c.debug.Enabled {
		if c.debug.RequestIDGen == nil {
			problems = append(problems, "debug RequestIDGen must be set when debug is enabled")
		}
		if c.logger == nil {
			problems = append(problems, "logger must be set when debug is enabled")
		}
	}

	return problems
}

func (c *Client) validateHTTPClient() []string {
	var problems []string

	if c.httpClient == nil {
		problems = append(problems, "HTTP client cannot be nil")
	}

	return problems
}
