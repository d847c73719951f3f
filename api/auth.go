package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/semanticallynull/smartbike-backend/internal/middleware"
	"github.com/semanticallynull/smartbike-backend/user"
)

type registerRequest struct {
	UserID   numericID `json:"userId" binding:"required,gt=0"`
	Name     string    `json:"name" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Phone    string    `json:"phone"`
	Password string    `json:"password" binding:"required"`
}

func (a *API) registerHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.InfoContext(c.Request.Context(), "invalid registration", "error", err)
		fail(c, http.StatusBadRequest, codeInvalidRequest, "Invalid registration: "+err.Error())
		return
	}

	u, err := user.New(int64(req.UserID), req.Name, req.Email, req.Phone, req.Password, time.Now())
	if errors.Is(err, user.ErrPasswordTooLong) {
		fail(c, http.StatusBadRequest, codeInvalidRequest, "Invalid registration: "+err.Error())
		return
	}
	if err != nil {
		failWith(c, err)
		return
	}
	if err := a.store.CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, user.ErrAlreadyExists) {
			fail(c, http.StatusBadRequest, codeUserExists, "User ID or Email already exists!")
			return
		}
		failWith(c, err)
		return
	}

	logger.InfoContext(c.Request.Context(), "user registered", "user_id", u.ID)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User registered successfully! Please login to continue.",
	})
}

type loginRequest struct {
	LoginID  string `json:"loginId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	UserID         int64     `json:"userId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Status         string    `json:"status"`
	DateRegistered time.Time `json:"dateRegistered"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{
		UserID:         u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Status:         u.Status,
		DateRegistered: u.RegisteredAt,
	}
}

func (a *API) loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, codeInvalidRequest, "Invalid login: "+err.Error())
		return
	}

	u, err := a.store.UserByLogin(c.Request.Context(), req.LoginID)
	if errors.Is(err, user.ErrNotFound) {
		fail(c, http.StatusBadRequest, codeInvalidCredentials, "Invalid credentials")
		return
	}
	if err != nil {
		failWith(c, err)
		return
	}

	if err := u.CheckPassword(req.Password); err != nil {
		if errors.Is(err, user.ErrInvalidPassword) {
			fail(c, http.StatusBadRequest, codeInvalidCredentials, "Invalid credentials")
			return
		}
		failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful!",
		"user":    toUserResponse(u),
	})
}
