package controllers

import (
	"net/http"
	"strings"
	"time"

	"aisolutions-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController checks credentials against the configured bcrypt hashes.
type AuthController struct {
	Users  map[string]string
	Secret string
	Expiry time.Duration
	// Secure marks the token cookie HTTPS-only.
	Secure bool
}

// controllers/auth.go
func (a *AuthController) Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	username := strings.TrimSpace(input.Username)
	hash, ok := a.Users[username]
	if !ok || !utils.CheckPasswordHash(input.Password, hash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(username, a.Secret, a.Expiry)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.TokenCookie, token, int(a.Expiry.Seconds()), "/", "", a.Secure, true)

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(a.Expiry.Seconds()),
		"user":      gin.H{"username": username},
	})
}

func (a *AuthController) Logout(c *gin.Context) {
	c.SetCookie(utils.TokenCookie, "", -1, "/", "", a.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (a *AuthController) Me(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": gin.H{"username": username}})
}
