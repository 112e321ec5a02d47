// Package asset loads the JSON model bundles the demo draws: vertex fields
// plus the textures they reference.
package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrStatus is returned when an HTTP fetch answers with anything but 200.
var ErrStatus = errors.New("asset: unexpected status")

// Model is one entry of a model bundle.
type Model struct {
	Fields   map[string]Field
	Textures map[string]image.Image
}

// Field returns the first field present among names.
func (m *Model) Field(names ...string) (Field, bool) {
	for _, n := range names {
		if f, ok := m.Fields[n]; ok {
			return f, true
		}
	}
	return Field{}, false
}

type bundle struct {
	Models []struct {
		Textures map[string]string `json:"textures"`
		Fields   map[string]Field  `json:"fields"`
	} `json:"models"`
}

// Loader fetches bundles over http(s) or from the filesystem.
type Loader struct {
	client *http.Client
	logger *zap.Logger
}

// NewLoader returns a loader using client for http(s) references. A nil
// client means http.DefaultClient, a nil logger means no logging.
func NewLoader(client *http.Client, logger *zap.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{client: client, logger: logger}
}

// Load fetches the bundle at ref and every texture it names. Textures are
// fetched concurrently; the first failure cancels the rest.
func (l *Loader) Load(ctx context.Context, ref string) ([]*Model, error) {
	rc, err := l.open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var b bundle
	if err := json.NewDecoder(rc).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}

	models := make([]*Model, len(b.Models))
	for i, raw := range b.Models {
		m := &Model{
			Fields:   raw.Fields,
			Textures: make(map[string]image.Image, len(raw.Textures)),
		}
		if m.Fields == nil {
			m.Fields = map[string]Field{}
		}
		for _, name := range sortedKeys(m.Fields) {
			f := m.Fields[name]
			if err := f.normalize(name); err != nil {
				return nil, fmt.Errorf("model %d: %w", i, err)
			}
			m.Fields[name] = f
		}
		models[i] = m
	}

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	for i, raw := range b.Models {
		m := models[i]
		for slot, texRef := range raw.Textures {
			src := Resolve(ref, texRef)
			g.Go(func() error {
				img, err := l.image(gctx, src)
				if err != nil {
					return fmt.Errorf("model %d texture %q: %w", i, slot, err)
				}
				mu.Lock()
				m.Textures[slot] = img
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	l.logger.Info("models loaded", zap.String("ref", ref), zap.Int("models", len(models)))
	return models, nil
}

func (l *Loader) image(ctx context.Context, ref string) (image.Image, error) {
	rc, err := l.open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ref, err)
	}
	l.logger.Debug("texture loaded", zap.String("ref", ref), zap.Stringer("size", img.Bounds().Size()))
	return img, nil
}

// Open returns a reader for ref, which is either an http(s) URL or a path.
func (l *Loader) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	return l.open(ctx, ref)
}

func (l *Loader) open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if !isURL(ref) {
		f, err := os.Open(ref)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", ref, err)
		}
		return f, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", ref, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", ref, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, ref, resp.StatusCode)
	}
	return resp.Body, nil
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Resolve returns ref relative to the document at base. References carrying
// a scheme are returned unchanged. Against a URL base a reference starting
// with "/" resolves to the base's host; against a path base it is an absolute
// path.
func Resolve(base, ref string) string {
	if strings.Contains(ref, "://") {
		return ref
	}
	if isURL(base) {
		b, err := url.Parse(base)
		if err != nil {
			return ref
		}
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return b.ResolveReference(r).String()
	}
	if strings.HasPrefix(ref, "/") || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(base), ref)
}

// Join appends name to a base directory or URL.
func Join(base, name string) string {
	if isURL(base) {
		return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(name, "/")
	}
	return filepath.Join(base, name)
}

func sortedKeys(m map[string]Field) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
