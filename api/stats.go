package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type statsResponse struct {
	TotalRides  int     `json:"totalRides"`
	TotalHours  float64 `json:"totalHours"`
	TotalSpent  int64   `json:"totalSpent"`
	ActiveRides int     `json:"activeRides"`
}

func (a *API) userStatsHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	stats, err := a.rentals.GetUserStatistics(c.Request.Context(), userID)
	if err != nil {
		failWith(c, err)
		return
	}

	c.JSON(http.StatusOK, statsResponse{
		TotalRides:  stats.TotalRides,
		TotalHours:  stats.TotalHours,
		TotalSpent:  stats.TotalSpent,
		ActiveRides: stats.ActiveRides,
	})
}

type activityResponse struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

func (a *API) recentActivityHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	activities, err := a.rentals.RecentActivity(c.Request.Context(), userID, RecentActivityLimit)
	if err != nil {
		failWith(c, err)
		return
	}

	resp := make([]activityResponse, 0, len(activities))
	for _, act := range activities {
		resp = append(resp, activityResponse(act))
	}
	c.JSON(http.StatusOK, resp)
}
