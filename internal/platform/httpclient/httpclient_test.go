package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload_StreamsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/aac.csv", r.URL.Path)
		assert.Contains(t, r.Header.Get("Accept"), "text/csv")
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	}))
	defer ts.Close()

	body, err := New(time.Second).Download(context.Background(), ts.URL+"/data/aac.csv")
	require.NoError(t, err)
	defer body.Close()

	b, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(b))
}

func TestDownload_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer ts.Close()

	_, err := New(0).Download(context.Background(), ts.URL)

	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusGone, herr.StatusCode)
	assert.Equal(t, "gone", herr.Body)
}

func TestDownload_RejectsNonURL(t *testing.T) {
	_, err := New(time.Second).Download(context.Background(), "data.csv")
	assert.Error(t, err)
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.org/aac.csv"))
	assert.True(t, IsURL(" http://localhost/x"))
	assert.False(t, IsURL("data/aac.csv"))
}
