package content

import (
	"ciesta/internal/adapters/file"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

var ErrUnknownCollection = errors.New("unknown image collection")

// Gallery picks random image URLs from collections described as JSON lists of {"url": ...}.
// A source is either a local path or an http(s) URL. Lists are loaded once and cached.
type Gallery struct {
	client  *http.Client
	sources map[string]string

	mutex       sync.Mutex
	collections map[string]*imageCollection
}

// imageCollection serializes loads of one collection. A failed load leaves it unloaded.
type imageCollection struct {
	mutex  sync.Mutex
	loaded bool
	urls   []string
}

func NewGallery(sources map[string]string) *Gallery {
	return &Gallery{
		client:      newHTTPClient(),
		sources:     sources,
		collections: make(map[string]*imageCollection, len(sources)),
	}
}

func (g *Gallery) Random(ctx context.Context, collection string) (string, error) {
	urls, err := g.collection(ctx, collection)
	if err != nil {
		return "", err
	}

	if len(urls) == 0 {
		return "", fmt.Errorf("image collection %s is empty", collection)
	}

	return urls[rand.IntN(len(urls))], nil
}

func (g *Gallery) entry(name string) (*imageCollection, string, error) {
	source, ok := g.sources[name]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownCollection, name)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	c, ok := g.collections[name]
	if !ok {
		c = &imageCollection{}
		g.collections[name] = c
	}

	return c, source, nil
}

func (g *Gallery) collection(ctx context.Context, name string) ([]string, error) {
	c, source, err := g.entry(name)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.loaded {
		return c.urls, nil
	}

	data, err := g.read(ctx, source)
	if err != nil {
		return nil, err
	}

	var entries []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error decoding image collection %s: %w", name, err)
	}

	urls := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.URL != "" {
			urls = append(urls, e.URL)
		}
	}

	log.Debug().Str("collection", name).Int("images", len(urls)).Msg("loaded image collection")

	c.urls, c.loaded = urls, true

	return urls, nil
}

func (g *Gallery) read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return file.Download(ctx, g.client, source, nil)
	}

	data, ok, err := file.ReadIfExists(source)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("image collection file %s does not exist", source)
	}

	return data, nil
}
