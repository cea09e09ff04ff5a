package rankapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-envconfig"
)

// ClientConfig configures the client. Zero values fall back to defaults.
type ClientConfig struct {
	BaseURL         string        `env:"RANKAPI_URL, default=http://localhost:8888"`
	Timeout         time.Duration `env:"CLIENT_TIMEOUT, default=30s"`
	RetryMax        int           `env:"CLIENT_RETRY_MAX, default=3"`
	RetryWaitMin    time.Duration `env:"CLIENT_RETRY_WAIT_MIN, default=200ms"`
	RetryWaitMax    time.Duration `env:"CLIENT_RETRY_WAIT_MAX, default=5s"`
	ZstdCompression bool          `env:"CLIENT_ZSTD, default=true"`
}

// LoadClientConfig reads the client configuration from the environment.
func LoadClientConfig(ctx context.Context) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process client env: %w", err)
	}
	return &cfg, nil
}

type Client struct {
	config      *ClientConfig
	restyClient *resty.Client
	encoder     *zstd.Encoder
	decoder     *zstd.Decoder
}

// NewClient creates a new ranking client
func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		config = &ClientConfig{ZstdCompression: true}
	}
	if config.BaseURL == "" {
		config.BaseURL = fmt.Sprintf("http://localhost:%d", DefaultServerPort)
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultClientTimeout * time.Second
	}
	if config.RetryMax < 0 {
		config.RetryMax = 0
	}

	// transport level retries for connection errors and 5xx responses
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = config.RetryMax
	retryClient.HTTPClient.Timeout = config.Timeout
	if config.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = config.RetryWaitMin
	}
	if config.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = config.RetryWaitMax
	}
	retryClient.Logger = nil

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetBaseURL(strings.TrimSuffix(config.BaseURL, "/")).
		SetTimeout(config.Timeout).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	client := &Client{
		config:      config,
		restyClient: restyClient,
	}

	if config.ZstdCompression {
		encoder, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		client.encoder = encoder

		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		client.decoder = decoder
	}

	log.Debug().
		Str("base_url", config.BaseURL).
		Int("retry_max", config.RetryMax).
		Str("timeout", config.Timeout.String()).
		Bool("zstd", config.ZstdCompression).
		Msg("rankapi client initialized")

	return client, nil
}

// Close cleans up client resources
func (c *Client) Close() {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
}

func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// post sends body to route and returns the decoded, decompressed response body.
func (c *Client) post(ctx context.Context, route string, request any) ([]byte, int, error) {
	req := c.restyClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")

	if c.encoder != nil {
		jsonData, err := sonic.Marshal(request)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		req = req.
			SetHeader("Content-Encoding", "zstd").
			SetHeader("Accept-Encoding", "zstd").
			SetBody(c.encoder.EncodeAll(jsonData, nil))
	} else {
		req = req.SetBody(request)
	}

	log.Trace().
		Str("route", route).
		Interface("request", request).
		Msg("sending request")

	resp, err := req.Post(route)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make request: %w", err)
	}

	responseBody := resp.Body()
	if c.decoder != nil && resp.Header().Get("Content-Encoding") == "zstd" {
		decompressed, err := c.decoder.DecodeAll(responseBody, nil)
		if err != nil {
			return nil, resp.StatusCode(), fmt.Errorf("failed to decompress response: %w", err)
		}
		responseBody = decompressed
	}

	return responseBody, resp.StatusCode(), nil
}

// Send posts request to the route named after its type and unwraps the
// StdResponse envelope.
func Send[Req, Resp any](ctx context.Context, c *Client, request Req) (Resp, error) {
	var zero Resp
	route := RoutePath[Req]()

	body, status, err := c.post(ctx, route, request)
	if err != nil {
		return zero, err
	}

	var stdResponse StdResponse[Resp]
	if err := sonic.Unmarshal(body, &stdResponse); err != nil {
		return zero, fmt.Errorf("HTTP %d: failed to unmarshal StdResponse: %w", status, err)
	}

	if stdResponse.Error != nil {
		return zero, &APIError{StatusCode: status, Message: *stdResponse.Error}
	}
	if status >= 300 {
		return zero, &APIError{StatusCode: status, Message: string(body)}
	}

	return stdResponse.Body, nil
}

func (c *Client) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	return Send[GenerateRequest, GenerateResponse](ctx, c, req)
}

func (c *Client) DifferenceSearch(ctx context.Context, req DifferenceSearchRequest) (DifferenceSearchResponse, error) {
	return Send[DifferenceSearchRequest, DifferenceSearchResponse](ctx, c, req)
}

func (c *Client) Health(ctx context.Context) error {
	var stdResponse StdResponse[HealthResponse]
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetResult(&stdResponse).
		Get(HealthRoute)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if resp.IsError() || stdResponse.Body.Status != "ok" {
		return &APIError{StatusCode: resp.StatusCode(), Message: resp.String()}
	}
	return nil
}

// APIError is returned when the server answers with an error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (HTTP %d): %s", e.StatusCode, e.Message)
}

// IsInvalidParameter reports whether the server rejected the request input.
func (e *APIError) IsInvalidParameter() bool {
	return e.StatusCode == 400
}
