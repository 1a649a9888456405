// Package scraper fetches prospect web pages and reduces them to readable
// markdown text for outreach generation.
package scraper

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/custodia-labs/prospector/internal/core/domain"
	"github.com/custodia-labs/prospector/internal/core/ports/driven"
)

// Ensure HTTPScraper implements the interface.
var _ driven.PageScraper = (*HTTPScraper)(nil)

// Default configuration values.
const (
	DefaultUserAgent = "prospector/1.0 (+https://github.com/custodia-labs/prospector)"
	DefaultMaxBytes  = 2 << 20
)

// Config holds scraper settings. Zero values take the defaults.
type Config struct {
	Timeout    time.Duration
	UserAgent  string
	MaxBytes   int64
	MaxContent int
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = domain.DefaultScrapeTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = DefaultMaxBytes
	}
	if c.MaxContent <= 0 {
		c.MaxContent = domain.DefaultOutreachMaxContent
	}
}

// HTTPScraper fetches pages over HTTP and converts HTML to markdown.
type HTTPScraper struct {
	config      Config
	client      *http.Client
	mdConverter *converter.Converter
}

// New creates a scraper.
func New(cfg Config) *HTTPScraper {
	cfg.defaults()
	return &HTTPScraper{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Scrape fetches url and returns its text, truncated to MaxContent runes.
func (s *HTTPScraper) Scrape(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	req.Header.Set("User-Agent", s.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.config.MaxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	var text string
	if isHTML(resp.Header.Get("Content-Type"), body) {
		text = s.htmlToMarkdown(string(body), resp.Request.URL.String())
	} else {
		text = strings.TrimSpace(string(body))
	}

	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return truncateRunes(text, s.config.MaxContent), nil
}

// htmlToMarkdown converts HTML to markdown, falling back to tag stripping
// when conversion fails or yields nothing.
func (s *HTTPScraper) htmlToMarkdown(html, pageURL string) string {
	result, err := s.mdConverter.ConvertString(html, converter.WithDomain(pageURL))
	if err != nil || strings.TrimSpace(result) == "" {
		return stripHTML(html)
	}
	return strings.TrimSpace(result)
}

func isHTML(contentType string, body []byte) bool {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "html")
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}
