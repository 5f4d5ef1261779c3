package lighthouse

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
		NodeURL: server.URL,
		ApiKey:  "lighthouse-key",
		Http:    server.Client(),
	}
}

func TestUploadJSONSuccess(t *testing.T) {
	var gotAuth, gotPath string
	var gotFileContent []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		gotFileContent, _ = io.ReadAll(file)

		w.Write([]byte(`{"Name":"cv_1.json","Hash":"QmTestCid123","Size":"42"}`))
	}))
	defer server.Close()

	result := testClient(server).UploadJSON(map[string]any{"name": "Ada"}, "cv_1.json")

	assert.True(t, result.Success)
	assert.Equal(t, "QmTestCid123", result.Cid)
	assert.Equal(t, "ipfs://QmTestCid123", result.IpfsUrl)
	assert.Equal(t, "https://gateway.lighthouse.storage/ipfs/QmTestCid123", result.GatewayUrl)
	assert.Empty(t, result.Error)

	assert.Equal(t, "Bearer lighthouse-key", gotAuth)
	assert.Equal(t, "/api/v0/add", gotPath)
	assert.JSONEq(t, `{"name":"Ada"}`, string(gotFileContent))
}

func TestUploadJSONUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"node unavailable"}`))
	}))
	defer server.Close()

	result := testClient(server).UploadJSON(map[string]any{"name": "Ada"}, "cv_2.json")

	assert.False(t, result.Success)
	assert.Empty(t, result.Cid)
	assert.Contains(t, result.Error, "lighthouse replied 500")
}

func TestUploadJSONMissingCid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Name":"cv_3.json","Size":"42"}`))
	}))
	defer server.Close()

	result := testClient(server).UploadJSON(map[string]any{"name": "Ada"}, "cv_3.json")

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "missing CID")
}

func TestUploadJSONUnreachableNode(t *testing.T) {
	client := &Client{
		NodeURL: "http://127.0.0.1:1",
		ApiKey:  "lighthouse-key",
		Http:    http.DefaultClient,
	}

	result := client.UploadJSON(map[string]any{"name": "Ada"}, "cv_4.json")

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}
