package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wassitdz/wassit-api/internal/httpx"
	"github.com/wassitdz/wassit-api/internal/user"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// registerHandler creates the account and opens a session in one call.
// @Summary Register an account
// @Accept json
// @Produce json
// @Param body body credentialsRequest true "credentials"
// @Success 201 {object} sessionResponse
// @Router /api/auth/register [post]
func registerHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		u, err := svc.Register(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			code := http.StatusInternalServerError
			switch {
			case errors.Is(err, user.ErrAlreadyExist):
				code = http.StatusConflict
			case errors.Is(err, user.ErrEmailRequired), errors.Is(err, user.ErrPasswordTooShort):
				code = http.StatusBadRequest
			}
			c.JSON(code, gin.H{"error": err.Error()})
			return
		}
		token, _, err := svc.Authenticate(c.Request.Context(), u.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, sessionResponse{Token: token, User: u})
	}
}

// loginHandler exchanges credentials for a session token.
// @Summary Sign in
// @Accept json
// @Produce json
// @Param body body credentialsRequest true "credentials"
// @Success 200 {object} sessionResponse
// @Router /api/auth/login [post]
func loginHandler(svc *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
			return
		}
		token, u, err := svc.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sessionResponse{Token: token, User: u})
	}
}

// sessionHandler echoes the verified claims so clients can route by role.
// @Summary Current session
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/auth/session [get]
func sessionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(httpx.KeyUserID),
			"email":   c.GetString(httpx.KeyEmail),
			"role":    c.GetString(httpx.KeyRole),
		})
	}
}

// logoutHandler acknowledges sign-out; sessions are stateless tokens the
// client discards.
func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
