package agenda

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkview/internal/config"
	appLog "inkview/internal/log"
)

// Source is a single calendar: a local .ics file or an http(s) URL.
type Source struct {
	ID   string
	Name string
	Path string
}

// SourcesFrom converts configured sources.
func SourcesFrom(cfg []config.SourceConfig) []Source {
	out := make([]Source, 0, len(cfg))
	for _, s := range cfg {
		out = append(out, Source{ID: s.ID, Name: s.Name, Path: s.Path})
	}
	return out
}

func (s Source) remote() bool {
	return strings.HasPrefix(s.Path, "http://") || strings.HasPrefix(s.Path, "https://")
}

// LoadResult is the payload of one source.
type LoadResult struct {
	Source    Source
	Body      []byte
	FromCache bool
}

// cacheEntry holds the HTTP validators of a cached remote calendar.
type cacheEntry struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Loader reads calendars. Remote ones are fetched with conditional
// requests and kept in a disk cache that also serves as the fallback when
// the network is down.
type Loader struct {
	client   *http.Client
	cacheDir string
}

// NewLoader returns a Loader caching under cacheDir.
func NewLoader(cacheDir string) *Loader {
	return &Loader{
		client:   &http.Client{Timeout: 15 * time.Second},
		cacheDir: cacheDir,
	}
}

// LoadAll loads every source. Failed sources are logged and reported in
// the error slice; the results hold only sources that produced a body.
func (l *Loader) LoadAll(ctx context.Context, sources []Source) ([]LoadResult, []error) {
	results := make([]LoadResult, 0, len(sources))
	var errs []error
	for _, src := range sources {
		res, err := l.Load(ctx, src)
		if err != nil {
			appLog.Error("calendar load failed", err, "id", src.ID, "path", redactURL(src.Path))
			errs = append(errs, fmt.Errorf("%s: %w", src.ID, err))
			continue
		}
		results = append(results, res)
	}
	return results, errs
}

// Load reads a single source.
func (l *Loader) Load(ctx context.Context, src Source) (LoadResult, error) {
	if src.Path == "" {
		return LoadResult{}, errors.New("source path is empty")
	}
	if !src.remote() {
		body, err := os.ReadFile(strings.TrimPrefix(src.Path, "file://"))
		if err != nil {
			return LoadResult{}, err
		}
		return LoadResult{Source: src, Body: body}, nil
	}
	return l.fetch(ctx, src)
}

func (l *Loader) fetch(ctx context.Context, src Source) (LoadResult, error) {
	dir := l.cachePath(src.Path)
	meta, _ := loadMeta(dir)
	cached, _ := os.ReadFile(filepath.Join(dir, "body.ics"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Path, nil)
	if err != nil {
		return LoadResult{}, err
	}
	if meta.ETag != "" {
		req.Header.Set("If-None-Match", meta.ETag)
	}
	if meta.LastModified != "" {
		req.Header.Set("If-Modified-Since", meta.LastModified)
	}

	appLog.Debug("calendar fetch start", "id", src.ID, "url", redactURL(src.Path))
	resp, err := l.client.Do(req)
	if err != nil {
		if len(cached) > 0 {
			appLog.Warn("calendar fetch failed, using cache", "id", src.ID, "error", err)
			return LoadResult{Source: src, Body: cached, FromCache: true}, nil
		}
		return LoadResult{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return LoadResult{}, err
		}
		entry := cacheEntry{
			URL:          src.Path,
			ETag:         resp.Header.Get("ETag"),
			LastModified: resp.Header.Get("Last-Modified"),
		}
		if err := saveCache(dir, entry, body); err != nil {
			appLog.Error("calendar cache save failed", err, "id", src.ID)
		}
		appLog.Info("calendar fetched", "id", src.ID, "url", redactURL(src.Path), "bytes", len(body))
		return LoadResult{Source: src, Body: body}, nil

	case http.StatusNotModified:
		if len(cached) == 0 {
			return LoadResult{}, errors.New("304 Not Modified without a cached body")
		}
		appLog.Debug("calendar not modified", "id", src.ID)
		return LoadResult{Source: src, Body: cached, FromCache: true}, nil

	default:
		if len(cached) > 0 {
			appLog.Warn("calendar fetch non-OK, using cache", "id", src.ID, "status", resp.StatusCode)
			return LoadResult{Source: src, Body: cached, FromCache: true}, nil
		}
		return LoadResult{}, errors.New(resp.Status)
	}
}

// cachePath keys the cache directory by a hash of the URL.
func (l *Loader) cachePath(u string) string {
	sum := sha256.Sum256([]byte(u))
	return filepath.Join(l.cacheDir, hex.EncodeToString(sum[:8]))
}

func loadMeta(dir string) (cacheEntry, error) {
	var meta cacheEntry
	data, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		return meta, err
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheEntry{}, err
	}
	return meta, nil
}

// saveCache writes the body before the metadata so the validators never
// describe a body that is not on disk.
func saveCache(dir string, meta cacheEntry, body []byte) error {
	if err := config.WriteFileAtomic(filepath.Join(dir, "body.ics"), body, 0o600); err != nil {
		return err
	}
	meta.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return err
	}
	return config.WriteFileAtomic(filepath.Join(dir, "meta.json"), data, 0o600)
}

// redactURL keeps only scheme and host of a URL for logging; calendar
// URLs often carry a private token in the path or query.
func redactURL(s string) string {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		if strings.Contains(s, "://") {
			return "ics://...(redacted)"
		}
		return s
	}
	return u.Scheme + "://" + u.Host + "/...(redacted)"
}
