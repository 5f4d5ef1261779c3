package collection

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jetcv-labs/jetcv-backend/internal/crossmint"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/reject"
)

type collectionHandler struct {
	crossmint *crossmint.Client
}

func RegisterRoutes(rg *gin.RouterGroup, crossmintClient *crossmint.Client) {
	handler := collectionHandler{crossmint: crossmintClient}

	routes := rg.Group("/collection")
	routes.GET("/info", handler.getInfo)
}

func (h collectionHandler) getInfo(c *gin.Context) {
	info, err := h.crossmint.GetCollection()
	if err != nil {
		c.JSON(http.StatusInternalServerError, reject.UpstreamProblem("error fetching collection info", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"collection": info,
	})
}
