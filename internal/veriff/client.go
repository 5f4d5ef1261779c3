package veriff

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/utils"
)

// Client is the adapter for the identity-verification provider. Outbound
// calls carry the public key in X-AUTH-CLIENT and a keyed hash of the body
// in X-SIGNATURE.
type Client struct {
	BaseURL    string
	SdkBaseURL string
	PublicKey  string
	PrivateKey string
	Http       *http.Client
}

func NewClientFromConfig() *Client {
	return &Client{
		BaseURL:    viper.GetString("VERIFF_BASE_URL"),
		SdkBaseURL: viper.GetString("VERIFF_SDK_URL"),
		PublicKey:  viper.GetString("VERIFF_PUBLIC_KEY"),
		PrivateKey: viper.GetString("VERIFF_PRIVATE_KEY"),
		Http:       &http.Client{Timeout: 30 * time.Second},
	}
}

type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("veriff replied %d: %s", e.StatusCode, e.Body)
}

type Person struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	IdNumber    string `json:"idNumber,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Email       string `json:"email,omitempty"`
	FullAddress string `json:"fullAddress,omitempty"`
	VendorData  string `json:"vendorData,omitempty"`
	EndUserId   string `json:"endUserId,omitempty"`
}

type Document struct {
	Number     string `json:"number"`
	Country    string `json:"country"`
	Type       string `json:"type"`
	IdCardType string `json:"idCardType,omitempty"`
	FirstIssue string `json:"firstIssue,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
}

type AcceptableType struct {
	Name string `json:"name"`
}

type ProofOfAddress struct {
	AcceptableTypes []AcceptableType `json:"acceptableTypes"`
}

type Consent struct {
	Type     string `json:"type"`
	Approved bool   `json:"approved"`
}

type Verification struct {
	Callback       string          `json:"callback"`
	Person         Person          `json:"person"`
	Document       *Document       `json:"document,omitempty"`
	ProofOfAddress *ProofOfAddress `json:"proofOfAddress,omitempty"`
	Consents       []Consent       `json:"consents,omitempty"`
}

type SessionRequest struct {
	Verification Verification `json:"verification"`
}

type SessionResponse struct {
	Status       string         `json:"status"`
	Verification map[string]any `json:"verification"`
}

// SessionId extracts the opaque session identifier the provider issued.
func (r SessionResponse) SessionId() string {
	if r.Verification == nil {
		return ""
	}
	id, _ := r.Verification["id"].(string)
	return id
}

func (c *Client) signedDo(method, path string, signaturePayload, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-AUTH-CLIENT", c.PublicKey)
	req.Header.Set("X-SIGNATURE", Signature(signaturePayload, c.PrivateKey))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.Http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: res.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// CreateSession marshals the session payload once and signs those exact
// bytes, so body and signature can never disagree.
func (c *Client) CreateSession(session SessionRequest) (*SessionResponse, error) {
	payload := utils.JsonEncode(session)
	raw, err := c.signedDo(http.MethodPost, "/sessions", payload, payload)
	if err != nil {
		return nil, err
	}
	return utils.JsonDecodeBytes[SessionResponse](raw)
}

func (c *Client) GetSession(sessionId string) (map[string]any, error) {
	signature := utils.JsonEncode(map[string]string{"sessionId": sessionId})
	raw, err := c.signedDo(http.MethodGet, "/sessions/"+sessionId, signature, nil)
	if err != nil {
		return nil, err
	}
	decoded, err := utils.JsonDecodeBytes[map[string]any](raw)
	if err != nil {
		return nil, err
	}
	return *decoded, nil
}

func (c *Client) GetVerification(verificationId string) (map[string]any, error) {
	signature := utils.JsonEncode(map[string]string{"verificationId": verificationId})
	raw, err := c.signedDo(http.MethodGet, "/verifications/"+verificationId, signature, nil)
	if err != nil {
		return nil, err
	}
	decoded, err := utils.JsonDecodeBytes[map[string]any](raw)
	if err != nil {
		return nil, err
	}
	return *decoded, nil
}

// AuthURL builds the user-facing SDK URL for a created session, with locale
// and theme as query parameters.
func (c *Client) AuthURL(sessionId, lang, theme string) string {
	return fmt.Sprintf("%s/sdk/%s?lang=%s&theme=%s", c.SdkBaseURL, sessionId, lang, theme)
}
