package wallet

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/reject"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/validate"
)

type walletHandler struct {
	wallets *walletService
}

// RegisterRoutes wires both the persistence-backed CRUD surface
// (/wallets) and the local keypair generator (/wallet/create).
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, encryptionKey []byte) {
	handler := walletHandler{
		wallets: &walletService{repo: &gormWalletRepository{db: db}, encryptionKey: encryptionKey},
	}

	routes := rg.Group("/wallets")
	routes.POST("", handler.createWallet)
	routes.GET("", handler.getWalletList)
	routes.GET("/:id", handler.getWalletById)
	routes.GET("/user/:userId", handler.getWalletsByUser)
	routes.PUT("/:id", handler.updateWallet)
	routes.DELETE("/:id", handler.deleteWallet)

	generator := rg.Group("/wallet")
	generator.POST("/create", handler.generateKeypair)
}

type generateKeypairRequest struct {
	Network string `json:"network"`
}

func (h walletHandler) generateKeypair(c *gin.Context) {
	body := generateKeypairRequest{}
	// Body is optional; an empty one means the default network.
	_ = c.ShouldBindJSON(&body)

	keypair, err := GenerateKeypair(body.Network)
	if err != nil {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem(err.Error()))
		return
	}

	log.Info().Str("network", keypair.Network).Str("address", keypair.Address).Msg("Generated new wallet keypair")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"wallet":  keypair,
		"message": "wallet created",
	})
}

type createWalletRequest struct {
	UserId     uint64  `json:"userId"`
	Address    string  `json:"address"`
	PrivateKey string  `json:"privateKey"`
	Mnemonic   *string `json:"mnemonic"`
}

func (h walletHandler) createWallet(c *gin.Context) {
	body := createWalletRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if body.UserId == 0 {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem("userId is required"))
		return
	}
	for _, check := range []validate.Result{
		validate.NonBlank(body.Address, "address"),
		validate.NonBlank(body.PrivateKey, "privateKey"),
	} {
		if !check.Valid {
			c.JSON(http.StatusBadRequest, reject.RequestValidationProblem(check.Reason))
			return
		}
	}

	created, err := h.wallets.create(body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h walletHandler) getWalletList(c *gin.Context) {
	wallets, err := h.wallets.findAll()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, wallets)
}

func (h walletHandler) getWalletById(c *gin.Context) {
	id, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	found, err := h.wallets.findById(id)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h walletHandler) getWalletsByUser(c *gin.Context) {
	userId, parseErr := strconv.ParseUint(c.Param("userId"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	wallets, err := h.wallets.findByUser(userId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, wallets)
}

type updateWalletRequest struct {
	Address    string  `json:"address"`
	PrivateKey string  `json:"privateKey"`
	Mnemonic   *string `json:"mnemonic"`
}

func (h walletHandler) updateWallet(c *gin.Context) {
	id, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := updateWalletRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	for _, check := range []validate.Result{
		validate.NonBlank(body.Address, "address"),
		validate.NonBlank(body.PrivateKey, "privateKey"),
	} {
		if !check.Valid {
			c.JSON(http.StatusBadRequest, reject.RequestValidationProblem(check.Reason))
			return
		}
	}

	updated, err := h.wallets.update(id, body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h walletHandler) deleteWallet(c *gin.Context) {
	id, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	if err := h.wallets.delete(id); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "wallet deleted"})
}
