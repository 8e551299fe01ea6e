package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"learnlang/internal/logging"
	"learnlang/internal/services"
)

const (
	defaultFetchTimeout = 20 * time.Second
	defaultMaxBytes     = 10 << 20
)

// HTTPDoer describes the HTTP client used to download images.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher resolves a URL into an image payload.
type Fetcher interface {
	FetchURL(ctx context.Context, rawURL string) (Acquired, error)
}

// Acquirer downloads remote images in a single attempt.
type Acquirer struct {
	client    HTTPDoer
	maxBytes  int64
	userAgent string
	logger    *slog.Logger
}

// Option customizes the acquirer.
type Option func(*Acquirer)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(a *Acquirer) {
		if client != nil {
			a.client = client
		}
	}
}

// WithMaxBytes caps the accepted body size.
func WithMaxBytes(limit int64) Option {
	return func(a *Acquirer) {
		if limit > 0 {
			a.maxBytes = limit
		}
	}
}

// WithUserAgent sets the User-Agent header on image requests.
func WithUserAgent(agent string) Option {
	return func(a *Acquirer) {
		a.userAgent = strings.TrimSpace(agent)
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Acquirer) {
		a.logger = logger
	}
}

// NewAcquirer constructs an Acquirer with a 20s timeout and 10 MiB ceiling.
func NewAcquirer(opts ...Option) *Acquirer {
	a := &Acquirer{
		client:   &http.Client{Timeout: defaultFetchTimeout},
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.NewComponentLogger(a.logger, "media")
	return a
}

// FetchURL downloads rawURL and validates that the response is an image.
// Transport failures and non-2xx statuses fail with ErrMediaFetchFailed (the
// latter as a *services.StatusError); a non-image content type fails with
// ErrInvalidMediaType. There are no retries.
func (a *Acquirer) FetchURL(ctx context.Context, rawURL string) (Acquired, error) {
	trimmed := strings.TrimSpace(rawURL)
	target, err := url.Parse(trimmed)
	if err != nil || trimmed == "" {
		return Acquired{}, services.Wrap(services.ErrMediaFetchFailed, "media", "fetch",
			fmt.Sprintf("invalid image URL %q", trimmed), err)
	}
	if scheme := strings.ToLower(target.Scheme); (scheme != "http" && scheme != "https") || target.Host == "" {
		return Acquired{}, services.Wrap(services.ErrMediaFetchFailed, "media", "fetch",
			fmt.Sprintf("image URL %q must be an absolute http(s) URL", trimmed), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return Acquired{}, services.Wrap(services.ErrMediaFetchFailed, "media", "fetch", "build request", err)
	}
	req.Header.Set("Accept", "image/*")
	if a.userAgent != "" {
		req.Header.Set("User-Agent", a.userAgent)
	}

	logger := logging.WithContext(ctx, a.logger)
	started := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return Acquired{}, services.Wrap(services.ErrMediaFetchFailed, "media", "fetch",
			"failed to fetch the image URL", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Acquired{}, &services.StatusError{
			Kind:       services.ErrMediaFetchFailed,
			Op:         "image URL responded",
			URL:        target.String(),
			StatusCode: resp.StatusCode,
		}
	}

	contentType := strings.TrimSpace(resp.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = octetStream
	}
	if !IsImageType(contentType) {
		return Acquired{}, services.Wrap(services.ErrInvalidMediaType, "media", "fetch",
			fmt.Sprintf("URL does not point to an image (content-type: %s)", contentType), nil)
	}

	if resp.ContentLength > a.maxBytes {
		return Acquired{}, a.tooLarge(resp.ContentLength)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBytes+1))
	if err != nil {
		return Acquired{}, services.Wrap(services.ErrMediaFetchFailed, "media", "fetch", "read image body", err)
	}
	if int64(len(body)) > a.maxBytes {
		return Acquired{}, a.tooLarge(int64(len(body)))
	}

	acquired := Acquired{
		Bytes:    body,
		Filename: DeriveFilename(target, contentType),
		MimeType: contentType,
	}
	logger.Debug("image fetched",
		logging.String("url", target.Redacted()),
		logging.String("filename", acquired.Filename),
		logging.String("content_type", contentType),
		logging.Int("bytes", len(body)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return acquired, nil
}

func (a *Acquirer) tooLarge(size int64) error {
	return services.Wrap(services.ErrMediaFetchFailed, "media", "fetch",
		fmt.Sprintf("image is %d bytes, limit is %d", size, a.maxBytes), nil)
}
