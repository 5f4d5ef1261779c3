package cv

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/reject"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/validate"
)

type cvHandler struct {
	fileDir string
}

func RegisterRoutes(rg *gin.RouterGroup) {
	handler := cvHandler{
		fileDir: viper.GetString("CV_FILE_DIR"),
	}

	routes := rg.Group("/cv")
	routes.POST("/validate-and-create", handler.validateAndCreate)
}

type validateAndCreateRequest struct {
	JsonCV   any    `json:"jsonCV"`
	Filename string `json:"filename"`
}

func (h cvHandler) validateAndCreate(c *gin.Context) {
	body := validateAndCreateRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if invalid := validate.JSONObject(body.JsonCV); !invalid.Valid {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem(invalid.Reason))
		return
	}
	if invalid := validate.NonBlank(body.Filename, "filename"); !invalid.Valid {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem(invalid.Reason))
		return
	}

	file, err := CreateCVFile(body.JsonCV, body.Filename, h.fileDir)
	if err != nil {
		log.Warn().Err(err).Msg("Error writing CV file")
		c.JSON(http.StatusInternalServerError, reject.UnexpectedProblem(err))
		return
	}

	document := body.JsonCV.(map[string]any)
	fields := make([]string, 0, len(document))
	for field := range document {
		fields = append(fields, field)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "CV JSON validated and created",
		"file":    file,
		"validation": gin.H{
			"isValid":    true,
			"fields":     fields,
			"fieldCount": len(fields),
		},
	})
}
