package veriff

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		BaseURL:    server.URL,
		SdkBaseURL: "https://station.example.com",
		PublicKey:  "public-key",
		PrivateKey: "private-key",
		Http:       server.Client(),
	}
}

func TestCreateSessionSignsExactBody(t *testing.T) {
	var gotAuthClient, gotSignature string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthClient = r.Header.Get("X-AUTH-CLIENT")
		gotSignature = r.Header.Get("X-SIGNATURE")
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, "/sessions", r.URL.Path)
		w.Write([]byte(`{"status":"success","verification":{"id":"sess-1","url":"https://station.example.com/v/sess-1"}}`))
	}))
	defer server.Close()

	session, err := testClient(server).CreateSession(SessionRequest{
		Verification: Verification{
			Callback: "https://example.com/webhook",
			Person:   Person{FirstName: "Ada", LastName: "Lovelace"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "public-key", gotAuthClient)
	assert.Equal(t, Signature(gotBody, "private-key"), gotSignature)
	assert.Equal(t, "sess-1", session.SessionId())
}

func TestGetSessionRelaysUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"fail","message":"signature mismatch"}`))
	}))
	defer server.Close()

	_, err := testClient(server).GetSession("sess-1")
	require.Error(t, err)

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusUnauthorized, upstream.StatusCode)
	assert.Contains(t, err.Error(), "veriff replied 401")
}

func TestSessionIdMissingVerification(t *testing.T) {
	assert.Empty(t, SessionResponse{}.SessionId())
	assert.Empty(t, SessionResponse{Verification: map[string]any{"id": 42.0}}.SessionId())
	assert.Equal(t, "sess-9", SessionResponse{Verification: map[string]any{"id": "sess-9"}}.SessionId())
}

func TestAuthURL(t *testing.T) {
	client := &Client{SdkBaseURL: "https://station.example.com"}
	assert.Equal(t,
		"https://station.example.com/sdk/sess-1?lang=en&theme=light",
		client.AuthURL("sess-1", "en", "light"))
}
