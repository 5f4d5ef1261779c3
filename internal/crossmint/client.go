// Package crossmint is the adapter for the NFT-minting provider. Every call
// shapes a payload, attaches the static X-API-KEY header and forwards it to
// the provider; response bodies are relayed verbatim.
package crossmint

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/viper"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/utils"
)

type Client struct {
	BaseURL      string
	CollectionId string
	ApiKey       string
	Http         *http.Client
}

func NewClientFromConfig() *Client {
	return &Client{
		BaseURL:      viper.GetString("CROSSMINT_BASE_URL"),
		CollectionId: viper.GetString("CROSSMINT_COLLECTION_ID"),
		ApiKey:       viper.GetString("CROSSMINT_API_KEY"),
		Http:         &http.Client{Timeout: 30 * time.Second},
	}
}

// UpstreamError carries a non-2xx provider reply so handlers can relay the
// provider message without inventing their own.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("crossmint replied %d: %s", e.StatusCode, e.Body)
}

type Metadata struct {
	Name         string `json:"name"`
	Image        string `json:"image"`
	Description  string `json:"description,omitempty"`
	AnimationUrl string `json:"animation_url,omitempty"`
	Attributes   []any  `json:"attributes"`
}

type MintRequest struct {
	Metadata         Metadata `json:"metadata"`
	Recipient        string   `json:"recipient"`
	SendNotification bool     `json:"sendNotification"`
	Locale           string   `json:"locale"`
}

type BatchMintRequest struct {
	Nfts []MintRequest `json:"nfts"`
}

func (c *Client) do(method, path string, payload any) (map[string]any, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(utils.JsonEncode(payload))
	}

	req, err := http.NewRequest(method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.ApiKey)
	if payload != nil {
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

	decoded, err := utils.JsonDecodeBytes[map[string]any](raw)
	if err != nil {
		return nil, err
	}
	return *decoded, nil
}

func (c *Client) Mint(request MintRequest) (map[string]any, error) {
	return c.do(http.MethodPost, fmt.Sprintf("/collections/%s/nfts", c.CollectionId), request)
}

func (c *Client) MintBatch(request BatchMintRequest) (map[string]any, error) {
	return c.do(http.MethodPost, fmt.Sprintf("/collections/%s/nfts/batch", c.CollectionId), request)
}

func (c *Client) GetNFT(crossmintId string) (map[string]any, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/nfts/%s", crossmintId), nil)
}

func (c *Client) UpdateNFT(crossmintId string, metadata map[string]any) (map[string]any, error) {
	return c.do(http.MethodPatch, fmt.Sprintf("/nfts/%s", crossmintId), map[string]any{"metadata": metadata})
}

func (c *Client) ListNFTs(page, perPage int) (map[string]any, error) {
	path := fmt.Sprintf("/collections/%s/nfts?page=%d&perPage=%d", c.CollectionId, page, perPage)
	return c.do(http.MethodGet, path, nil)
}

func (c *Client) GetCollection() (map[string]any, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/collections/%s", c.CollectionId), nil)
}
