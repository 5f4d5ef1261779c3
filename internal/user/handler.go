package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jetcv-labs/jetcv-backend/internal/pkg/reject"
	"github.com/jetcv-labs/jetcv-backend/internal/pkg/validate"
)

type userHandler struct {
	users *userService
}

func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	handler := userHandler{
		users: &userService{repo: &gormUserRepository{db: db}},
	}

	routes := rg.Group("/users")
	routes.POST("", handler.createUser)
	routes.GET("", handler.getUserList)
	routes.GET("/:id", handler.getUserById)
	routes.PUT("/:id", handler.updateUser)
	routes.DELETE("/:id", handler.deleteUser)
}

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r userRequest) validate() *validate.Result {
	checks := []validate.Result{
		validate.Name(r.Name),
		validate.Email(r.Email),
		validate.NonBlank(r.Password, "password"),
	}
	for _, check := range checks {
		if !check.Valid {
			c := check
			return &c
		}
	}
	return nil
}

func (h userHandler) createUser(c *gin.Context) {
	body := userRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if invalid := body.validate(); invalid != nil {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem(invalid.Reason))
		return
	}

	created, err := h.users.create(body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h userHandler) getUserList(c *gin.Context) {
	users, err := h.users.findAll()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h userHandler) getUserById(c *gin.Context) {
	id, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	found, err := h.users.findById(id)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, found)
}

func (h userHandler) updateUser(c *gin.Context) {
	id, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	body := userRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if invalid := body.validate(); invalid != nil {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem(invalid.Reason))
		return
	}

	updated, err := h.users.update(id, body)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h userHandler) deleteUser(c *gin.Context) {
	id, parseErr := strconv.ParseUint(c.Param("id"), 10, 64)
	if parseErr != nil {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	if err := h.users.delete(id); err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
