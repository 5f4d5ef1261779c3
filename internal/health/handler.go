package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine) {
	router.GET("/health", getHealth)
	router.GET("/", getIndex)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
	})
}

func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func getIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "JetCV Backend API",
		"version": "2.3.0",
		"status":  "running",
		"endpoints": gin.H{
			"wallets":         "/api/wallets",
			"walletGenerator": "/api/wallet/create",
			"nfts":            "/api/nft",
			"collections":     "/api/collection",
			"cv":              "/api/cv",
			"veriff":          "/api/veriff",
			"users":           "/api/users",
		},
	})
}
