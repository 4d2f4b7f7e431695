package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/service" // Auth operations

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request and Response structs
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`     // Username must be provided
	Email    string `json:"email" binding:"omitempty,email"` // Optional contact email
	Password string `json:"password" binding:"required"`     // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a new USER account
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		user, err := auth.Register(c.Request.Context(), service.Registration{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			// Validation, duplicate username or storage failure
			respondError(c, err)
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{
			"message":  "User registered successfully",
			"id":       user.ID,
			"username": user.Username,
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token with the username and role
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		res, err := auth.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			// Invalid credentials, lockout or storage failure
			respondError(c, err)
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, res)
	}
}
