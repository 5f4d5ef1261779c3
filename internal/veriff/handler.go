package veriff

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/pubsub"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/reject"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/utils"
	wshub "github.com/jetcv-labs/jetcv-backend/internal/pkg/ws"
)

type veriffHandler struct {
	client   *Client
	defaults SessionDefaults
	hub      *wshub.NotificationHub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func RegisterRoutes(rg *gin.RouterGroup, client *Client) {
	handler := veriffHandler{
		client:   client,
		defaults: DefaultSession(),
		hub:      wshub.NewNotificationHub(),
	}

	routes := rg.Group("/veriff")
	routes.POST("/session/create", handler.createSession)
	routes.POST("/session/create-with-document", handler.createSessionWithDocument)
	routes.GET("/session/:sessionId", handler.getSession)
	routes.GET("/verification/:verificationId", handler.getVerification)
	routes.POST("/webhook", handler.webhook)
	routes.POST("/auth-url", handler.authUrl)
	routes.GET("/quick-auth", handler.quickAuth)
	routes.GET("/ws/:sessionId", handler.serveWs)
}

func defaultCallback() string {
	return viper.GetString("BASE_URL") + "/api/veriff/webhook"
}

type createSessionRequest struct {
	Person   *Person   `json:"person"`
	Document *Document `json:"document"`
	Callback string    `json:"callback"`
}

func (r createSessionRequest) personIncomplete() bool {
	return r.Person == nil || r.Person.FirstName == "" || r.Person.LastName == ""
}

func (r createSessionRequest) documentIncomplete() bool {
	return r.Document == nil || r.Document.Type == "" || r.Document.Number == "" || r.Document.Country == ""
}

func (h veriffHandler) createSession(c *gin.Context) {
	body := createSessionRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if body.personIncomplete() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"error":    "incomplete person data",
			"required": []string{"person.firstName", "person.lastName"},
		})
		return
	}

	callback := body.Callback
	if callback == "" {
		callback = defaultCallback()
	}

	session, err := h.client.CreateSession(SessionRequest{
		Verification: Verification{
			Callback: callback,
			Person:   *body.Person,
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("error creating verification session", err))
		return
	}

	sessionId := session.SessionId()
	if sessionId == "" {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("verification session response is missing an id", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "verification session created",
		"sessionId":       sessionId,
		"session":         session,
		"verificationUrl": h.client.AuthURL(sessionId, h.defaults.Lang, h.defaults.Theme),
	})
}

func (h veriffHandler) createSessionWithDocument(c *gin.Context) {
	body := createSessionRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if body.personIncomplete() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"error":    "incomplete person data",
			"required": []string{"person.firstName", "person.lastName"},
		})
		return
	}
	if body.documentIncomplete() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"error":    "incomplete document data",
			"required": []string{"document.type", "document.number", "document.country"},
		})
		return
	}

	callback := body.Callback
	if callback == "" {
		callback = defaultCallback()
	}

	session, err := h.client.CreateSession(SessionRequest{
		Verification: Verification{
			Callback:       callback,
			Person:         *body.Person,
			Document:       body.Document,
			ProofOfAddress: h.defaults.proofOfAddress(),
			Consents:       h.defaults.Consents,
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("error creating verification session", err))
		return
	}

	sessionId := session.SessionId()
	if sessionId == "" {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("verification session response is missing an id", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "verification session created",
		"sessionId":       sessionId,
		"session":         session,
		"verificationUrl": h.client.AuthURL(sessionId, h.defaults.Lang, h.defaults.Theme),
		"documentInfo": gin.H{
			"type":    body.Document.Type,
			"number":  body.Document.Number,
			"country": body.Document.Country,
		},
	})
}

func (h veriffHandler) getSession(c *gin.Context) {
	session, err := h.client.GetSession(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("error fetching verification session", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": c.Param("sessionId"),
		"session":   session,
	})
}

func (h veriffHandler) getVerification(c *gin.Context) {
	verification, err := h.client.GetVerification(c.Param("verificationId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("error fetching verification", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"verificationId": c.Param("verificationId"),
		"verification":   verification,
	})
}

type webhookPayload struct {
	Status       string `json:"status"`
	Verification *struct {
		Id     string `json:"id"`
		Status string `json:"status"`
	} `json:"verification"`
	Session *struct {
		Id string `json:"id"`
	} `json:"session"`
}

// webhook always acks with 200: the provider retries on anything else and
// the outcome is its source of truth, not ours.
func (h veriffHandler) webhook(c *gin.Context) {
	rawBody, _ := io.ReadAll(c.Request.Body)

	if secret := h.client.PrivateKey; secret != "" {
		header := c.GetHeader("X-SIGNATURE")
		if !VerifyWebhookSignature(rawBody, secret, header) {
			log.Warn().Str("signature", header).Msg("Webhook signature mismatch")
		}
	}

	payload := utils.JsonDecode[webhookPayload](bytes.NewReader(rawBody))

	verificationId := ""
	if payload.Verification != nil {
		verificationId = payload.Verification.Id
	}
	sessionId := ""
	if payload.Session != nil {
		sessionId = payload.Session.Id
	}

	switch payload.Status {
	case "approved":
		log.Info().Str("verificationId", verificationId).Msg("Verification approved")
	case "declined":
		log.Info().Str("verificationId", verificationId).Msg("Verification declined")
	case "expired":
		log.Info().Str("verificationId", verificationId).Msg("Verification expired")
	case "abandoned":
		log.Info().Str("verificationId", verificationId).Msg("Verification abandoned")
	default:
		log.Info().Str("status", payload.Status).Str("verificationId", verificationId).Msg("Verification status received")
	}

	event := VerificationEvent{
		SessionId:      sessionId,
		VerificationId: verificationId,
		Status:         payload.Status,
	}
	if sessionId != "" {
		h.hub.Publish(sessionId, event)
	}
	pubsub.Publish(event)

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "webhook received",
		"status":         payload.Status,
		"verificationId": verificationId,
		"sessionId":      sessionId,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

type authUrlRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Callback  string `json:"callback"`
	Lang      string `json:"lang"`
	Theme     string `json:"theme"`
}

// fill substitutes the named defaults for every omitted field.
func (r authUrlRequest) fill(defaults SessionDefaults) authUrlRequest {
	if r.FirstName == "" {
		r.FirstName = defaults.FirstName
	}
	if r.LastName == "" {
		r.LastName = defaults.LastName
	}
	if r.Callback == "" {
		r.Callback = defaultCallback()
	}
	if r.Lang == "" {
		r.Lang = defaults.Lang
	}
	if r.Theme == "" {
		r.Theme = defaults.Theme
	}
	return r
}

func (h veriffHandler) authUrl(c *gin.Context) {
	body := authUrlRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	h.createAuthSession(c, body.fill(h.defaults))
}

func (h veriffHandler) quickAuth(c *gin.Context) {
	h.createAuthSession(c, authUrlRequest{}.fill(h.defaults))
}

func (h veriffHandler) createAuthSession(c *gin.Context, request authUrlRequest) {
	session, err := h.client.CreateSession(SessionRequest{
		Verification: Verification{
			Callback: request.Callback,
			Person: Person{
				FirstName: request.FirstName,
				LastName:  request.LastName,
				Email:     request.Email,
			},
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("error creating verification session", err))
		return
	}

	sessionId := session.SessionId()
	if sessionId == "" {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("verification session response is missing an id", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"sessionId": sessionId,
		"session":   session,
		"authUrl":   h.client.AuthURL(sessionId, request.Lang, request.Theme),
	})
}

func (h veriffHandler) serveWs(c *gin.Context) {
	sessionId := c.Param("sessionId")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Error upgrading websocket connection")
		return
	}
	defer conn.Close()
	defer h.hub.UnregisterListener(sessionId, conn)

	h.hub.RegisterListener(sessionId, conn)

	for {
		var buffer any
		if err := conn.ReadJSON(&buffer); err != nil {
			return
		}
	}
}
