package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/semanticallynull/smartbike-backend/rental"
	"github.com/semanticallynull/smartbike-backend/ride"
)

type rentRequest struct {
	UserID    numericID `json:"userId"`
	BikeID    numericID `json:"bikeId"`
	StationID numericID `json:"stationId"`
	// Duration is the requested rental length in hours.
	Duration numericID `json:"duration"`
}

type rentResponse struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	RideID          string   `json:"rideId"`
	EstimatedAmount int64    `json:"estimatedAmount"`
	Warnings        []string `json:"warnings,omitempty"`
}

func (a *API) rentBikeHandler(c *gin.Context) {
	var req rentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, codeInvalidRequest, "Invalid rental: "+err.Error())
		return
	}

	handle, err := a.rentals.StartRide(c.Request.Context(), rental.StartRequest{
		UserID:         int64(req.UserID),
		BikeID:         int64(req.BikeID),
		StationID:      int64(req.StationID),
		RequestedHours: int(req.Duration),
	})
	if err != nil {
		failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, rentResponse{
		Success:         true,
		Message:         "Bike rented successfully!",
		RideID:          handle.RideID.String(),
		EstimatedAmount: handle.EstimatedAmount,
		Warnings:        handle.SideEffects.Warnings(),
	})
}

type endRideRequest struct {
	RideID    string    `json:"rideId" binding:"required"`
	StationID numericID `json:"stationId"`
}

type endRideResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	FinalAmount int64    `json:"finalAmount"`
	Duration    int64    `json:"duration"`
	Warnings    []string `json:"warnings,omitempty"`
}

func (a *API) endRideHandler(c *gin.Context) {
	var req endRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, codeInvalidRequest, "Invalid request: "+err.Error())
		return
	}
	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		// Not an id any ride could have.
		failWith(c, ride.ErrNotFound)
		return
	}

	receipt, err := a.rentals.EndRide(c.Request.Context(), rideID, int64(req.StationID))
	if err != nil {
		failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, endRideResponse{
		Success:     true,
		Message:     fmt.Sprintf("Ride completed! Duration: %d minutes", receipt.ElapsedMinutes),
		FinalAmount: receipt.FinalAmount,
		Duration:    receipt.ElapsedMinutes,
		Warnings:    receipt.SideEffects.Warnings(),
	})
}

type rideResponse struct {
	ID               string     `json:"id"`
	UserID           int64      `json:"userId"`
	BikeID           int64      `json:"bikeId"`
	StationID        int64      `json:"stationId"`
	StartTime        time.Time  `json:"startTime"`
	RequestedHours   int        `json:"requestedHours"`
	EstimatedAmount  int64      `json:"estimatedAmount"`
	Status           string     `json:"status"`
	EndTime          *time.Time `json:"endTime,omitempty"`
	DurationMinutes  *int64     `json:"durationMinutes,omitempty"`
	DurationHours    *float64   `json:"durationHours,omitempty"`
	Amount           *int64     `json:"amount,omitempty"`
	DropoffStationID *int64     `json:"dropoffStationId,omitempty"`
}

func toRideResponse(r ride.Ride) rideResponse {
	resp := rideResponse{
		ID:              r.ID.String(),
		UserID:          r.UserID,
		BikeID:          r.BikeID,
		StationID:       r.StationID,
		StartTime:       r.StartedAt,
		RequestedHours:  r.RequestedHours,
		EstimatedAmount: r.EstimatedAmount,
		Status:          string(r.Status),
	}
	if r.EndedAt.Valid {
		resp.EndTime = &r.EndedAt.Time
	}
	if r.ElapsedMinutes.Valid {
		resp.DurationMinutes = &r.ElapsedMinutes.Int64
	}
	if r.ElapsedHours.Valid {
		resp.DurationHours = &r.ElapsedHours.Float64
	}
	if r.FinalAmount.Valid {
		resp.Amount = &r.FinalAmount.Int64
	}
	if r.DropoffStationID.Valid {
		resp.DropoffStationID = &r.DropoffStationID.Int64
	}
	return resp
}

func (a *API) ridesHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	rides, err := a.store.RidesByUser(c.Request.Context(), userID, 0)
	if err != nil {
		failWith(c, err)
		return
	}

	resp := make([]rideResponse, 0, len(rides))
	for _, r := range rides {
		resp = append(resp, toRideResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}
