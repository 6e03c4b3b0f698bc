package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"github.com/franciscosanchezn/gin-relief-api/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthController struct {
	userService services.UserService
}

func NewAuthController(userService services.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Register godoc
// @Summary Register a user
// @Description Create an account. The password is stored as a bcrypt hash.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Account details"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 409 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /api/v1/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrBadRequest, "Invalid request body")
		return
	}

	err := ac.userService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrUserExists):
		respondError(c, http.StatusConflict, models.ErrConflict, "User already exists")
		return
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		respondError(c, http.StatusBadRequest, models.ErrBadRequest, "Password is too long")
		return
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, models.ErrInternalServer, "User registration failed")
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "User registered successfully",
	})
}

// Login godoc
// @Summary Log in
// @Description Exchange email and password for a signed bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 401 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /api/v1/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrBadRequest, "Invalid request body")
		return
	}

	token, err := ac.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, models.ErrUnauthorized, "Invalid email or password")
			return
		}
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, models.ErrInternalServer, "Login failed")
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Login successful",
		Token:   token,
	})
}
