package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/semanticallynull/smartbike-backend/station"
)

type stationResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	City           string `json:"city"`
	AvailableBikes int    `json:"availableBikes"`
	TotalCapacity  int    `json:"totalCapacity"`
}

func toStationResponse(s station.Station) stationResponse {
	return stationResponse{
		ID:             s.ID,
		Name:           s.Name,
		Address:        s.Address,
		City:           s.City,
		AvailableBikes: s.AvailableBikes,
		TotalCapacity:  s.TotalCapacity,
	}
}

func (a *API) stationsHandler(c *gin.Context) {
	stations, err := a.store.Stations(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}

	resp := make([]stationResponse, 0, len(stations))
	for _, s := range stations {
		resp = append(resp, toStationResponse(s))
	}
	c.JSON(http.StatusOK, resp)
}
