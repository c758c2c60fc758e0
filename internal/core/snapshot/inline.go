package snapshot

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seckatie/launchwatch/internal/core"
)

// InlineOptions controls how a captured dashboard is made self-contained.
type InlineOptions struct {
	// BaseURL resolves relative asset URLs.
	BaseURL string
	// Timeout is the per-asset fetch timeout.
	Timeout time.Duration
	// MaxResourceSize skips assets larger than this many bytes. 0 means no limit.
	MaxResourceSize int64
	// StripScripts removes <script> tags and hx-* attributes so the file
	// does not try to reach the server when opened.
	StripScripts bool
}

// DefaultInlineOptions returns the options used by WriteFile.
func DefaultInlineOptions(baseURL string) InlineOptions {
	return InlineOptions{
		BaseURL:         baseURL,
		Timeout:         core.DefaultResourceTimeout,
		MaxResourceSize: core.MaxResourceSize,
		StripScripts:    true,
	}
}

// InlineAssets replaces stylesheet links with <style> blocks and launch
// patch images with data URIs. Assets that cannot be fetched are left as is.
func InlineAssets(ctx context.Context, html string, opts InlineOptions) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	client := &http.Client{Timeout: opts.Timeout}

	doc.Find("link[rel='stylesheet']").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		cssURL := resolveURL(base, href)
		if cssURL == "" {
			return
		}
		css, _, err := fetchAsset(ctx, client, cssURL, opts.MaxResourceSize)
		if err != nil {
			log.Printf("Failed to fetch stylesheet %s: %v", cssURL, err)
			return
		}
		s.ReplaceWithHtml(fmt.Sprintf("<style>%s</style>", css))
	})

	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		imgURL := resolveURL(base, src)
		if imgURL == "" {
			return
		}
		data, contentType, err := fetchAsset(ctx, client, imgURL, opts.MaxResourceSize)
		if err != nil {
			log.Printf("Failed to fetch image %s: %v", imgURL, err)
			return
		}
		s.SetAttr("src", dataURI(contentType, data))
	})

	if opts.StripScripts {
		doc.Find("script").Remove()
		doc.Find("*").Each(func(_ int, s *goquery.Selection) {
			var hxAttrs []string
			for _, attr := range s.Nodes[0].Attr {
				if strings.HasPrefix(attr.Key, "hx-") {
					hxAttrs = append(hxAttrs, attr.Key)
				}
			}
			for _, key := range hxAttrs {
				s.RemoveAttr(key)
			}
		})
	}

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize HTML: %w", err)
	}
	return out, nil
}

// resolveURL resolves ref against base. Empty, data: and javascript: refs
// resolve to "".
func resolveURL(base *url.URL, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "javascript:") {
		return ""
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(refURL).String()
}

// fetchAsset downloads an asset and returns its body and media type.
func fetchAsset(ctx context.Context, client *http.Client, assetURL string, maxSize int64) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", core.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var reader io.Reader = resp.Body
	if maxSize > 0 {
		// Read one byte past the limit so oversized assets can be rejected.
		reader = io.LimitReader(resp.Body, maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", "", err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", "", fmt.Errorf("asset larger than %d bytes", maxSize)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if idx := strings.Index(contentType, ";"); idx > 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	return string(data), contentType, nil
}

func dataURI(contentType, data string) string {
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString([]byte(data)))
}
