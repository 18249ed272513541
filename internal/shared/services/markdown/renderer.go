// Package markdown renders user-authored markdown (FAQ answers, blog bodies)
// into sanitized HTML.
package markdown

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const defaultCacheSize = 512

type Renderer interface {
	// Render converts markdown to HTML and strips anything outside the UGC policy.
	Render(markdown string) (string, error)
}

type cachedRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	cache  *lru.Cache[[32]byte, string]
}

// NewRenderer builds a GFM renderer with line breaks kept as <br>, backed by
// an LRU of rendered output keyed by content hash.
func NewRenderer(cacheSize int) (Renderer, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[[32]byte, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown cache: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre")
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &cachedRenderer{md: md, policy: policy, cache: cache}, nil
}

func (r *cachedRenderer) Render(markdown string) (string, error) {
	key := sha256.Sum256([]byte(markdown))
	if out, ok := r.cache.Get(key); ok {
		return out, nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	out := r.policy.Sanitize(buf.String())
	r.cache.Add(key, out)
	return out, nil
}
