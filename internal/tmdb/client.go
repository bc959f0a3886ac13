// Package tmdb provides a client for TheMovieDB API: metadata lookups plus the
// account endpoints (favorites, watchlist, ratings, sessions).
package tmdb

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/original"
	defaultAuthURL      = "https://www.themoviedb.org/authenticate"
	defaultMaxWidth     = 1000
)

// Media types understood by TMDB.
const (
	MediaMovie = "movie"
	MediaTV    = "tv"
)

var (
	// ErrInvalidMediaType is returned when an unsupported media type is provided.
	ErrInvalidMediaType = errors.New("invalid media type")
	// ErrNoPoster is returned when no poster is available for the media.
	ErrNoPoster = errors.New("poster not available")
	// ErrInvalidRating is returned for rating values TMDB would refuse.
	ErrInvalidRating = errors.New("rating must be between 0.5 and 10 in steps of 0.5")
	// ErrNoSession is returned when an account call is made without a session.
	ErrNoSession = errors.New("tmdb session id is required")
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a TMDB API client.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	authURL      string
	language     string
	httpClient   HTTPDoer
	mu           sync.RWMutex
	genreCache   map[string]map[int]string
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		authURL:      defaultAuthURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		genreCache:   make(map[string]map[int]string),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithLanguage sets the language sent with every request (e.g. "en-US").
func WithLanguage(lang string) Option {
	return func(client *Client) {
		client.language = lang
	}
}

// ValidateMediaType returns ErrInvalidMediaType unless mediaType is movie or tv.
func ValidateMediaType(mediaType string) error {
	if mediaType != MediaMovie && mediaType != MediaTV {
		return fmt.Errorf("%w: %q", ErrInvalidMediaType, mediaType)
	}
	return nil
}

// endpoint builds a request URL with the API key (and language) attached.
func (c *Client) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" && params.Get("language") == "" {
		params.Set("language", c.language)
	}
	return fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
}

func sessionParams(sessionID string) (url.Values, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	params := url.Values{}
	params.Set("session_id", sessionID)
	return params, nil
}
