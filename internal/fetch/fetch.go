// Package fetch downloads public profile pages and reduces them to text.
package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	DefaultUserAgent = "spigell/resume-matcher"
	DefaultTimeout   = 10 * time.Second

	acceptEncoding = "gzip"
	acceptContent  = "text/html,application/xhtml+xml"
)

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
}

func New(logger *zap.Logger, timeout time.Duration, userAgent string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
	}
}

// FetchProfile returns the visible text of the page at rawURL with
// whitespace collapsed.
func (c *Client) FetchProfile(ctx context.Context, rawURL string) (string, error) {
	target, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse profile url: %w", err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return "", fmt.Errorf("unsupported profile url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.request(c.setHeaders(req))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", fmt.Errorf("parse profile page: %w", err)
	}

	text := pageText(doc)
	c.logger.Debug("fetched profile page", zap.String("url", target.String()), zap.Int("text_length", len(text)))

	return text, nil
}

func pageText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, template, svg").Remove()

	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	return strings.Join(strings.Fields(root.Text()), " ")
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", acceptContent)
	req.Header.Set("Accept-Encoding", acceptEncoding)

	return req
}
