package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/semanticallynull/smartbike-backend/bike"
	"github.com/semanticallynull/smartbike-backend/internal/middleware"
	"github.com/semanticallynull/smartbike-backend/rental"
	"github.com/semanticallynull/smartbike-backend/ride"
	"github.com/semanticallynull/smartbike-backend/user"
)

const (
	codeInvalidRequest       = "INVALID_REQUEST"
	codeUserExists           = "USER_EXISTS"
	codeInvalidCredentials   = "INVALID_CREDENTIALS"
	codeUserNotFound         = "USER_NOT_FOUND"
	codeBikeNotFound         = "BIKE_NOT_FOUND"
	codeBikeUnavailable      = "BIKE_UNAVAILABLE"
	codeRideNotFound         = "RIDE_NOT_FOUND"
	codeRideAlreadyCompleted = "RIDE_ALREADY_COMPLETED"
	codeInternal             = "INTERNAL_ERROR"
)

type failure struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, failure{Code: code, Message: message})
}

// failWith maps a domain error to its response. Anything unrecognised is logged and
// answered with a generic 500.
func failWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rental.ErrInvalidRequest):
		fail(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
	case errors.Is(err, user.ErrNotFound):
		fail(c, http.StatusNotFound, codeUserNotFound, "User not found")
	case errors.Is(err, bike.ErrNotFound):
		fail(c, http.StatusNotFound, codeBikeNotFound, "Bike not found")
	case errors.Is(err, bike.ErrNotAvailable):
		fail(c, http.StatusBadRequest, codeBikeUnavailable, "Bike is not available")
	case errors.Is(err, ride.ErrNotFound):
		fail(c, http.StatusNotFound, codeRideNotFound, "Ride not found")
	case errors.Is(err, ride.ErrAlreadyCompleted):
		fail(c, http.StatusConflict, codeRideAlreadyCompleted, "Ride already completed")
	default:
		middleware.GetLogger(c).ErrorContext(c.Request.Context(), "request failed", "error", err)
		fail(c, http.StatusInternalServerError, codeInternal, "internal error")
	}
}
