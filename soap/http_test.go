package soap

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/icon-project/btp2/common/log"
	"github.com/stretchr/testify/assert"
)

func TestEnsureTransportLogLevel(t *testing.T) {
	assert.Equal(t, DefaultTransportLogLevel, EnsureTransportLogLevel(log.PanicLevel))
	assert.Equal(t, DefaultTransportLogLevel, EnsureTransportLogLevel(log.ErrorLevel))
	assert.Equal(t, log.InfoLevel, EnsureTransportLogLevel(log.InfoLevel))
	assert.Equal(t, log.TraceLevel, EnsureTransportLogLevel(log.TraceLevel))
}

func TestHttpTransportRoundTrip(t *testing.T) {
	received := ""
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		received = string(b)
		_, _ = w.Write([]byte("pong"))
	}))
	defer ts.Close()

	c := NewHttpClient(log.TraceLevel, log.GlobalLogger())
	resp, err := c.Post(ts.URL, "text/plain", strings.NewReader("ping"))
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "ping", received)
	b, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, "pong", string(b))
}
