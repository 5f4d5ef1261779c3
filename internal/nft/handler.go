package nft

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jetcv-labs/jetcv-backend/internal/crossmint"
	"github.com/jetcv-labs/jetcv-backend/internal/lighthouse"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/reject"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/validate"
)

type nftHandler struct {
	crossmint *crossmint.Client
	ipfs      *lighthouse.Client
}

func RegisterRoutes(rg *gin.RouterGroup, crossmintClient *crossmint.Client, ipfsClient *lighthouse.Client) {
	handler := nftHandler{
		crossmint: crossmintClient,
		ipfs:      ipfsClient,
	}

	routes := rg.Group("/nft")
	routes.POST("/mint", handler.mint)
	routes.POST("/mint/batch", handler.mintBatch)
	routes.GET("/status/:crossmintId", handler.getStatus)
	routes.PATCH("/update/:crossmintId", handler.update)
	routes.GET("/metadata", handler.getMetadata)
}

// NormalizeRecipient rewrites a bare EVM address into the chain-qualified
// form the minting provider expects. Recipients that already carry a chain
// prefix pass through untouched.
func NormalizeRecipient(recipient string) string {
	if strings.Contains(recipient, ":") {
		return recipient
	}
	if strings.HasPrefix(recipient, "0x") {
		return "polygon:" + recipient
	}
	return recipient
}

type mintRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	AnimationUrl string `json:"animation_url"`
	Attributes   []any  `json:"attributes"`
	Recipient    string `json:"recipient"`
	JsonCV       any    `json:"jsonCV"`
}

func (r mintRequest) toUpstream() crossmint.MintRequest {
	attributes := r.Attributes
	if attributes == nil {
		attributes = []any{}
	}
	return crossmint.MintRequest{
		Metadata: crossmint.Metadata{
			Name:         r.Name,
			Image:        r.Image,
			Description:  r.Description,
			AnimationUrl: r.AnimationUrl,
			Attributes:   attributes,
		},
		Recipient:        NormalizeRecipient(r.Recipient),
		SendNotification: true,
		Locale:           "en-US",
	}
}

func (h nftHandler) mint(c *gin.Context) {
	body := mintRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	for _, check := range []validate.Result{
		validate.NonBlank(body.Name, "name"),
		validate.NonBlank(body.Image, "image"),
		validate.NonBlank(body.Recipient, "recipient"),
	} {
		if !check.Valid {
			c.JSON(http.StatusBadRequest, reject.RequestValidationProblem(check.Reason))
			return
		}
	}

	// An attached CV document is pinned first. A failed upload never blocks
	// the mint; the failure travels back in the ipfs field instead.
	var ipfsResult *lighthouse.UploadResult
	if body.JsonCV != nil {
		if invalid := validate.JSONObject(body.JsonCV); !invalid.Valid {
			c.JSON(http.StatusBadRequest, reject.RequestValidationProblem(invalid.Reason))
			return
		}
		result := h.ipfs.UploadJSON(body.JsonCV, fmt.Sprintf("cv_%d.json", time.Now().UnixMilli()))
		ipfsResult = &result
	}

	minted, err := h.crossmint.Mint(body.toUpstream())
	if err != nil {
		log.Warn().Err(err).Msg("Crossmint mint failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "error minting through the NFT provider",
			"details": err.Error(),
			"ipfs":    ipfsResult,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "NFT minted",
		"nft":     minted,
		"ipfs":    ipfsResult,
		"hasCV":   ipfsResult != nil && ipfsResult.Success,
	})
}

type batchMintRequest struct {
	Nfts []mintRequest `json:"nfts"`
}

func (h nftHandler) mintBatch(c *gin.Context) {
	body := batchMintRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if len(body.Nfts) == 0 {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem("nfts must be a non-empty array"))
		return
	}

	upstream := crossmint.BatchMintRequest{Nfts: make([]crossmint.MintRequest, 0, len(body.Nfts))}
	for _, nft := range body.Nfts {
		upstream.Nfts = append(upstream.Nfts, nft.toUpstream())
	}

	batch, err := h.crossmint.MintBatch(upstream)
	if err != nil {
		log.Warn().Err(err).Msg("Crossmint batch mint failed")
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("error batch minting through the NFT provider", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "NFT batch created",
		"batch":   batch,
	})
}

func (h nftHandler) getStatus(c *gin.Context) {
	nft, err := h.crossmint.GetNFT(c.Param("crossmintId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("error fetching NFT status", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"nft":     nft,
	})
}

type updateRequest struct {
	Metadata map[string]any `json:"metadata"`
}

func (h nftHandler) update(c *gin.Context) {
	body := updateRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if body.Metadata == nil {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem("metadata is required"))
		return
	}

	nft, err := h.crossmint.UpdateNFT(c.Param("crossmintId"), body.Metadata)
	if err != nil {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("error updating NFT", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "NFT updated",
		"nft":     nft,
	})
}

type listedNFT struct {
	Id           string `json:"id"`
	CrossmintId  string `json:"crossmintId,omitempty"`
	Name         any    `json:"name"`
	Description  any    `json:"description"`
	Image        any    `json:"image"`
	AnimationUrl any    `json:"animation_url,omitempty"`
	Attributes   any    `json:"attributes"`
	Recipient    any    `json:"recipient"`
	Status       any    `json:"status"`
	CreatedAt    any    `json:"createdAt"`
	UpdatedAt    any    `json:"updatedAt"`
}

func (h nftHandler) getMetadata(c *gin.Context) {
	page, pageErr := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, perPageErr := strconv.Atoi(c.DefaultQuery("perPage", "10"))
	if pageErr != nil || perPageErr != nil || page < 1 || perPage < 1 {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	listed, err := h.crossmint.ListNFTs(page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("error fetching NFT metadata", err))
		return
	}

	formatted := formatListing(listed)

	total, hasTotal := listed["total"].(float64)
	if !hasTotal {
		total = float64(len(formatted))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"nfts":    formatted,
		"pagination": gin.H{
			"page":    page,
			"perPage": perPage,
			"total":   int(total),
		},
	})
}

func formatListing(listed map[string]any) []listedNFT {
	formatted := []listedNFT{}
	raw, _ := listed["nfts"].([]any)
	for _, item := range raw {
		nft, isObject := item.(map[string]any)
		if !isObject {
			continue
		}
		metadata, _ := nft["metadata"].(map[string]any)
		entry := listedNFT{
			Recipient: nft["recipient"],
			Status:    nft["status"],
			CreatedAt: nft["createdAt"],
			UpdatedAt: nft["updatedAt"],
		}
		if id, ok := nft["id"].(string); ok {
			entry.Id = id
		}
		if crossmintId, ok := nft["crossmintId"].(string); ok {
			entry.CrossmintId = crossmintId
		}
		if metadata != nil {
			entry.Name = metadata["name"]
			entry.Description = metadata["description"]
			entry.Image = metadata["image"]
			entry.AnimationUrl = metadata["animation_url"]
			entry.Attributes = metadata["attributes"]
		}
		formatted = append(formatted, entry)
	}
	return formatted
}
