package emails

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendInvite_NoAPIKeyIsNoop(t *testing.T) {
	c := &BrevoClient{}
	err := c.SendInvite(context.Background(), "nova@equipe.test", "Espaço Braite", "attendant", "http://localhost:3000/accept-invite?token=x")
	assert.NoError(t, err)
}

func TestSendInvite_BuildsRequest(t *testing.T) {
	var got sendRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	// Redirect the hardcoded API URL to the local test server.
	c := &BrevoClient{
		APIKey:     "test-key",
		MailFrom:   "noreply@espacobraite.com",
		SenderName: "Espaço Braite",
		Client:     &http.Client{Transport: &rewriteTransport{target: srv.URL}},
	}
	require.NoError(t, c.send(context.Background(), "nova@equipe.test", "Convite para Espaço Braite", "<p>oi</p>"))

	assert.Equal(t, "test-key", apiKey)
	assert.Equal(t, "noreply@espacobraite.com", got.Sender.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "nova@equipe.test", got.To[0].Email)
	assert.Equal(t, "Convite para Espaço Braite", got.Subject)
}

func TestInviteHTML(t *testing.T) {
	html := inviteHTML("Espaço Braite", "attendant", "http://localhost:3000/accept-invite?token=abc")
	assert.Contains(t, html, "Espaço Braite")
	assert.Contains(t, html, "attendant")
	assert.Contains(t, html, "http://localhost:3000/accept-invite?token=abc")
	assert.Contains(t, html, "expira em 7 dias")
}

// rewriteTransport redirects every request to the test server.
type rewriteTransport struct {
	base   http.RoundTripper
	target string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rewritten, err := http.NewRequestWithContext(req.Context(), req.Method, t.target, req.Body)
	if err != nil {
		return nil, err
	}
	rewritten.Header = req.Header
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(rewritten)
}
