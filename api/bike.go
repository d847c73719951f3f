package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/semanticallynull/smartbike-backend/bike"
)

type bikeResponse struct {
	ID        int64     `json:"id"`
	Model     string    `json:"model"`
	Type      bike.Type `json:"type"`
	StationID *int64    `json:"stationId"`
	Available bool      `json:"available"`
}

func toBikeResponse(b bike.Bike) bikeResponse {
	return bikeResponse{
		ID:        b.ID,
		Model:     b.Model,
		Type:      b.Type,
		StationID: b.StationID,
		Available: b.Available,
	}
}

func (a *API) bikesHandler(c *gin.Context) {
	bikes, err := a.store.Bikes(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}

	resp := make([]bikeResponse, 0, len(bikes))
	for _, b := range bikes {
		resp = append(resp, toBikeResponse(b))
	}
	c.JSON(http.StatusOK, resp)
}
