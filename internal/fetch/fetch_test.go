package fetch

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const profilePage = `<!doctype html>
<html>
<head><title>Jane Doe</title><style>body { color: red; }</style></head>
<body>
  <nav>Sign in</nav>
  <main>
    <h1>Jane Doe</h1>
    <p>Senior engineer.   8 years of experience.</p>
    <script>var tracking = true;</script>
    <ul>
      <li>Go</li>
      <li>Kubernetes</li>
    </ul>
  </main>
</body>
</html>`

func TestFetchProfile(t *testing.T) {
	var gotAgent, gotEncoding string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotEncoding = r.Header.Get("Accept-Encoding")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(profilePage))
	}))
	defer server.Close()

	client := New(zap.NewNop(), time.Second, "test-agent")

	text, err := client.FetchProfile(context.Background(), server.URL+"/in/janedoe")
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe Senior engineer. 8 years of experience. Go Kubernetes", text)
	assert.Equal(t, "test-agent", gotAgent)
	assert.Equal(t, "gzip", gotEncoding)
}

func TestFetchProfileGzipAndBodyFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte("<html><body><div>Ada Lovelace</div>\n<noscript>enable js</noscript>\n<p>Analyst</p></body></html>"))
		_ = gz.Close()
	}))
	defer server.Close()

	text, err := New(nil, 0, "").FetchProfile(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace Analyst", text)
}

func TestFetchProfileErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(zap.NewNop(), time.Second, "")

	_, err := client.FetchProfile(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")

	_, err = client.FetchProfile(context.Background(), "ftp://example.com/profile")
	assert.Error(t, err)

	_, err = client.FetchProfile(context.Background(), "://bad")
	assert.Error(t, err)
}

func TestFetchProfileHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(zap.NewNop(), time.Minute, "").FetchProfile(ctx, server.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewDefaults(t *testing.T) {
	client := New(nil, 0, " ")
	assert.Equal(t, DefaultUserAgent, client.UserAgent)
	assert.Equal(t, DefaultTimeout, client.HTTPClient.Timeout)
}
