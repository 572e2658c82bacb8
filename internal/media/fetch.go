package media

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const downloadTimeout = 10 * time.Second

// Cache holds downloaded, decoded images keyed by URL. Safe for
// concurrent use; the download worker writes while the viewer reads.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{images: make(map[string]image.Image)}
}

// Insert stores an image under its URL.
func (c *Cache) Insert(url string, img image.Image) {
	c.mu.Lock()
	c.images[url] = img
	c.mu.Unlock()
}

// Get returns the image for url if downloaded.
func (c *Cache) Get(url string) (image.Image, bool) {
	c.mu.RLock()
	img, ok := c.images[url]
	c.mu.RUnlock()
	return img, ok
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Download fetches and decodes the given image URLs in parallel into
// the cache. Failures are skipped, a broken image link never blocks
// the viewer. token, when non-empty, authenticates requests for
// private GitHub attachments.
func Download(cache *Cache, urls []string, token string) {
	if len(urls) == 0 {
		return
	}
	client := &http.Client{Timeout: downloadTimeout}

	var wg sync.WaitGroup
	for _, url := range urls {
		if _, ok := cache.Get(url); ok {
			continue
		}
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			img, err := fetchImage(client, url, token)
			if err != nil {
				return
			}
			cache.Insert(url, img)
		}(url)
	}
	wg.Wait()
}

func fetchImage(client *http.Client, url, token string) (image.Image, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "zpr")

	// private-user-images and user-attachments need authentication.
	if token != "" && (strings.Contains(url, "private-user-images") || strings.Contains(url, "user-attachments")) {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	return img, nil
}
