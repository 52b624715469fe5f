package imageinput

import (
	"context"
	"encoding/base64"
	stderrors "errors"
	"testing"

	"garment-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	data []byte
	err  error
	urls []string
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	s.urls = append(s.urls, url)
	return s.data, s.err
}

func TestLoader_Base64(t *testing.T) {
	payload := []byte("\x89PNG fake")
	encoded := base64.StdEncoding.EncodeToString(payload)
	loader := NewLoader(nil, 0)

	raw, err := loader.Load(context.Background(), encoded, "")
	require.NoError(t, err)
	assert.Equal(t, payload, raw)

	raw, err = loader.Load(context.Background(), "data:image/png;base64,"+encoded, "")
	require.NoError(t, err)
	assert.Equal(t, payload, raw)

	raw, err = loader.Load(context.Background(), base64.RawStdEncoding.EncodeToString(payload), "")
	require.NoError(t, err)
	assert.Equal(t, payload, raw)
}

func TestLoader_Base64Errors(t *testing.T) {
	loader := NewLoader(nil, 4)

	_, err := loader.Load(context.Background(), "!!not base64!!", "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeImageDecodeFailed))

	_, err = loader.Load(context.Background(), "data:image/png,rawbytes", "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeImageDecodeFailed))

	_, err = loader.Load(context.Background(), base64.StdEncoding.EncodeToString([]byte("far too large")), "")
	assert.True(t, errors.HasCode(err, errors.ErrCodeImageDecodeFailed))
	assert.Contains(t, errors.AsStandardError(err).Details, "exceeds 4 bytes")
}

func TestLoader_URL(t *testing.T) {
	fetcher := &stubFetcher{data: []byte("jpeg")}
	loader := NewLoader(fetcher, 0)

	raw, err := loader.Load(context.Background(), "", " https://cdn.example.com/dress.jpg ")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), raw)
	assert.Equal(t, []string{"https://cdn.example.com/dress.jpg"}, fetcher.urls)
}

func TestLoader_InlineWinsOverURL(t *testing.T) {
	fetcher := &stubFetcher{data: []byte("remote")}
	loader := NewLoader(fetcher, 0)

	raw, err := loader.Load(context.Background(), base64.StdEncoding.EncodeToString([]byte("inline")), "https://cdn.example.com/a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("inline"), raw)
	assert.Empty(t, fetcher.urls)
}

func TestLoader_URLErrors(t *testing.T) {
	loader := NewLoader(&stubFetcher{err: stderrors.New("unexpected status 404")}, 0)

	_, err := loader.Load(context.Background(), "", "https://cdn.example.com/missing.png")
	assert.True(t, errors.HasCode(err, errors.ErrCodeImageFetchFailed))
	assert.True(t, errors.AsStandardError(err).Retryable)

	_, err = loader.Load(context.Background(), "", "file:///etc/passwd")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidDesignInput))

	_, err = NewLoader(nil, 0).Load(context.Background(), "", "https://cdn.example.com/a.png")
	assert.True(t, errors.HasCode(err, errors.ErrCodeImageFetchFailed))
}

func TestLoader_NoImage(t *testing.T) {
	raw, err := NewLoader(nil, 0).Load(context.Background(), "  ", "")
	assert.NoError(t, err)
	assert.Nil(t, raw)
}
