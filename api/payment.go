package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/semanticallynull/smartbike-backend/payment"
)

type paymentResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	// Duration is in minutes.
	Duration      int64  `json:"duration"`
	PaymentMethod string `json:"paymentMethod"`
}

func toPaymentResponse(p payment.Payment) paymentResponse {
	return paymentResponse{
		ID:            p.ID.String(),
		Date:          p.PaidAt,
		Amount:        p.Amount,
		Description:   fmt.Sprintf("Bike Ride #%d", p.BikeID),
		Status:        p.Status,
		Duration:      p.DurationMinutes,
		PaymentMethod: p.Method,
	}
}

func (a *API) paymentsHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	payments, err := a.store.PaymentsByUser(c.Request.Context(), userID)
	if err != nil {
		failWith(c, err)
		return
	}

	resp := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}
