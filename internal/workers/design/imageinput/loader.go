// Package imageinput resolves the reference photo carried by a design job,
// either inline as base64 or as a URL to download.
package imageinput

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"garment-workers/internal/common/errors"
	"garment-workers/internal/common/validation"
)

// Fetcher downloads a URL. *http.Client from internal/common/http satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Loader struct {
	fetcher  Fetcher
	maxBytes int64
}

// NewLoader returns a Loader. fetcher may be nil, in which case image URLs
// are rejected. maxBytes <= 0 disables the inline size check.
func NewLoader(fetcher Fetcher, maxBytes int64) *Loader {
	return &Loader{fetcher: fetcher, maxBytes: maxBytes}
}

// Load returns the raw image bytes. Inline data wins over a URL. Both empty
// yields nil, nil.
func (l *Loader) Load(ctx context.Context, imageBase64, imageURL string) ([]byte, error) {
	if data := strings.TrimSpace(imageBase64); data != "" {
		return l.decode(data)
	}

	url := strings.TrimSpace(imageURL)
	if url == "" {
		return nil, nil
	}
	if !validation.ValidateURL(url) {
		return nil, errors.NewInvalidDesignInputError(fmt.Sprintf("imageUrl: not an http(s) URL: %q", url))
	}
	if l.fetcher == nil {
		return nil, errors.NewImageFetchFailedError(url, fmt.Errorf("image download disabled"))
	}

	raw, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, errors.NewImageFetchFailedError(url, err)
	}
	return raw, nil
}

// decode accepts plain base64 or a data URL such as data:image/png;base64,....
func (l *Loader) decode(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		comma := strings.IndexByte(data, ',')
		if comma < 0 || !strings.Contains(data[:comma], ";base64") {
			return nil, errors.NewImageDecodeFailedError(fmt.Errorf("malformed data URL"))
		}
		data = data[comma+1:]
	}

	if l.maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(data))) > l.maxBytes+2 {
		return nil, errors.NewImageDecodeFailedError(fmt.Errorf("inline image exceeds %d bytes", l.maxBytes))
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		// Some clients strip padding.
		if raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "=")); err != nil {
			return nil, errors.NewImageDecodeFailedError(err)
		}
	}
	if l.maxBytes > 0 && int64(len(raw)) > l.maxBytes {
		return nil, errors.NewImageDecodeFailedError(fmt.Errorf("inline image exceeds %d bytes", l.maxBytes))
	}
	return raw, nil
}
