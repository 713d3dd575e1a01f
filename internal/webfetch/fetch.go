package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultProxyURL is the CORS proxy prefix used to fetch raw website HTML.
const DefaultProxyURL = "https://api.allorigins.win/raw?url="

const (
	requestTimeout = 10 * time.Second

	// maxSectionLength caps extracted section text before it is used as
	// prompt context.
	maxSectionLength = 2000
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Fetcher retrieves website HTML through a CORS proxy and extracts page
// sections by element id.
type Fetcher struct {
	proxyURL   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewFetcher(proxyURL string, logger *zap.Logger) *Fetcher {
	if proxyURL == "" {
		proxyURL = DefaultProxyURL
	}
	return &Fetcher{
		proxyURL:   proxyURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// FetchHTML returns the raw HTML of websiteURL, fetched through the proxy.
func (f *Fetcher) FetchHTML(ctx context.Context, websiteURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.proxyURL+url.QueryEscape(websiteURL), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build proxy request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("proxy fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("proxy fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read proxy response: %w", err)
	}
	return string(body), nil
}

// FetchSection fetches websiteURL and returns the plain text of the element
// with the given id, or an empty string when the section is not present.
func (f *Fetcher) FetchSection(ctx context.Context, websiteURL, sectionID string) (string, error) {
	html, err := f.FetchHTML(ctx, websiteURL)
	if err != nil {
		return "", err
	}
	section := ExtractSection(html, sectionID)
	if section == "" {
		f.logger.Debug("section not found in fetched page", zap.String("section", sectionID))
	}
	return section, nil
}

// ExtractSection pulls the inner content of the first element carrying the
// given id attribute, strips tags, collapses whitespace and caps the length.
func ExtractSection(html, sectionID string) string {
	pattern, err := regexp.Compile(`(?is)<[^>]+id="` + regexp.QuoteMeta(sectionID) + `"[^>]*>(.*?)</[^>]+>`)
	if err != nil {
		return ""
	}
	match := pattern.FindStringSubmatch(html)
	if match == nil {
		return ""
	}

	text := tagPattern.ReplaceAllString(match[1], " ")
	text = strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
	if len(text) > maxSectionLength {
		text = text[:maxSectionLength]
	}
	return text
}
