package veriff

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(client *Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api"), client)
	return router
}

func stubSessionServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","verification":{"id":"sess-1","url":"https://station.example.com/v/sess-1"}}`))
	}))
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return decoded
}

func TestCreateSessionRequiresPerson(t *testing.T) {
	router := setupRouter(&Client{})

	recorder := perform(router, http.MethodPost, "/api/veriff/session/create",
		`{"person":{"firstName":"Ada"}}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "incomplete person data", body["error"])
	assert.ElementsMatch(t, []any{"person.firstName", "person.lastName"}, body["required"])
}

func TestCreateSessionWithDocumentRequiresDocument(t *testing.T) {
	router := setupRouter(&Client{})

	recorder := perform(router, http.MethodPost, "/api/veriff/session/create-with-document",
		`{"person":{"firstName":"Ada","lastName":"Lovelace"},"document":{"type":"passport"}}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "incomplete document data", body["error"])
	assert.ElementsMatch(t, []any{"document.type", "document.number", "document.country"}, body["required"])
}

func TestCreateSessionReturnsVerificationUrl(t *testing.T) {
	server := stubSessionServer(t)
	defer server.Close()
	client := testClient(server)
	router := setupRouter(client)

	recorder := perform(router, http.MethodPost, "/api/veriff/session/create",
		`{"person":{"firstName":"Ada","lastName":"Lovelace"}}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sess-1", body["sessionId"])
	assert.Equal(t, "https://station.example.com/sdk/sess-1?lang=en&theme=light", body["verificationUrl"])
}

func TestQuickAuthUsesDefaults(t *testing.T) {
	server := stubSessionServer(t)
	defer server.Close()
	router := setupRouter(testClient(server))

	recorder := perform(router, http.MethodGet, "/api/veriff/quick-auth", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sess-1", body["sessionId"])
	assert.Equal(t, "https://station.example.com/sdk/sess-1?lang=en&theme=light", body["authUrl"])
}

func TestAuthUrlOverridesTheme(t *testing.T) {
	server := stubSessionServer(t)
	defer server.Close()
	router := setupRouter(testClient(server))

	recorder := perform(router, http.MethodPost, "/api/veriff/auth-url",
		`{"firstName":"Grace","theme":"dark","lang":"it"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, "https://station.example.com/sdk/sess-1?lang=it&theme=dark", body["authUrl"])
}

func TestWebhookAlwaysAcks(t *testing.T) {
	router := setupRouter(&Client{})

	recorder := perform(router, http.MethodPost, "/api/veriff/webhook",
		`{"status":"approved","verification":{"id":"ver-1","status":"approved"},"session":{"id":"sess-1"}}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, "ver-1", body["verificationId"])
	assert.Equal(t, "sess-1", body["sessionId"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestWebhookAcksUnknownPayload(t *testing.T) {
	router := setupRouter(&Client{})

	recorder := perform(router, http.MethodPost, "/api/veriff/webhook", `{"unexpected":true}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := decodeBody(t, recorder)
	assert.Equal(t, true, body["success"])
}

func TestWebhookPushesEventToSessionListeners(t *testing.T) {
	router := setupRouter(&Client{})
	server := httptest.NewServer(router)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/veriff/ws/sess-42"
	conn, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if res != nil {
		res.Body.Close()
	}
	defer conn.Close()

	// Listener registration happens right after the upgrade completes.
	time.Sleep(200 * time.Millisecond)

	recorder := perform(router, http.MethodPost, "/api/veriff/webhook",
		`{"status":"approved","verification":{"id":"ver-42"},"session":{"id":"sess-42"}}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event VerificationEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "sess-42", event.SessionId)
	assert.Equal(t, "ver-42", event.VerificationId)
	assert.Equal(t, "approved", event.Status)
}

func TestWebhookAcksBadSignature(t *testing.T) {
	router := setupRouter(&Client{PrivateKey: "webhook-secret"})

	req := httptest.NewRequest(http.MethodPost, "/api/veriff/webhook",
		strings.NewReader(`{"status":"approved"}`))
	req.Header.Set("X-SIGNATURE", "not-the-right-signature")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
