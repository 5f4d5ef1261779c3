// Package lighthouse uploads JSON documents to the content-addressed pinning
// service. Upload never returns a Go error: callers always get an
// UploadResult and decide themselves whether a failed upload blocks them.
package lighthouse

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const gatewayBaseURL = "https://gateway.lighthouse.storage/ipfs/"

type Client struct {
	NodeURL string
	ApiKey  string
	Http    *http.Client
}

func NewClientFromConfig() *Client {
	return &Client{
		NodeURL: viper.GetString("LIGHTHOUSE_NODE_URL"),
		ApiKey:  viper.GetString("LIGHTHOUSE_API_KEY"),
		Http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// UploadResult carries either a content descriptor or a structured failure
// reason. Success false with a reason is a normal outcome, not an exception.
type UploadResult struct {
	Success    bool   `json:"success"`
	Cid        string `json:"cid,omitempty"`
	IpfsUrl    string `json:"ipfsUrl,omitempty"`
	GatewayUrl string `json:"gatewayUrl,omitempty"`
	Error      string `json:"error,omitempty"`
}

func failure(err error) UploadResult {
	log.Warn().Err(err).Msg("IPFS upload failed")
	return UploadResult{Success: false, Error: err.Error()}
}

type addResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// UploadJSON serializes value to a temporary file, pins it, deletes the file
// and returns the CID in both native-scheme and gateway URL forms.
func (c *Client) UploadJSON(value any, filename string) UploadResult {
	serialized, err := json.Marshal(value)
	if err != nil {
		return failure(err)
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+"_"+filename)
	if err := os.WriteFile(tmpPath, serialized, 0o600); err != nil {
		return failure(err)
	}
	defer os.Remove(tmpPath)

	return c.uploadFile(tmpPath)
}

func (c *Client) uploadFile(path string) UploadResult {
	file, err := os.Open(path)
	if err != nil {
		return failure(err)
	}
	defer file.Close()

	pipeReader, pipeWriter := io.Pipe()
	form := multipart.NewWriter(pipeWriter)
	go func() {
		part, err := form.CreateFormFile("file", filepath.Base(path))
		if err == nil {
			_, err = io.Copy(part, file)
		}
		if err == nil {
			err = form.Close()
		}
		pipeWriter.CloseWithError(err)
	}()

	req, err := http.NewRequest(http.MethodPost, c.NodeURL+"/api/v0/add", pipeReader)
	if err != nil {
		return failure(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.ApiKey)
	req.Header.Set("Content-Type", form.FormDataContentType())

	res, err := c.Http.Do(req)
	if err != nil {
		return failure(err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return failure(err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return failure(fmt.Errorf("lighthouse replied %d: %s", res.StatusCode, string(raw)))
	}

	var decoded addResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return failure(err)
	}
	if decoded.Hash == "" {
		return failure(fmt.Errorf("missing CID in lighthouse response"))
	}

	log.Info().Str("cid", decoded.Hash).Msg("Uploaded document to IPFS")

	return UploadResult{
		Success:    true,
		Cid:        decoded.Hash,
		IpfsUrl:    "ipfs://" + decoded.Hash,
		GatewayUrl: gatewayBaseURL + decoded.Hash,
	}
}
