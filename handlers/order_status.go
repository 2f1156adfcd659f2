package handlers

import (
	"net/http"

	"reelbites-api/apperr"
	"reelbites-api/config"
	"reelbites-api/middleware"
	"reelbites-api/models"
	"reelbites-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus drives an order through the fulfillment lifecycle.
// Only the owner of the order's restaurant may transition it, and only
// along a defined edge. A transition touches status and updated_at only.
func UpdateOrderStatus(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		fail(c, notFoundOr(err, apperr.NotFound, "No restaurant found for your account"))
		return
	}

	var orderRef uint
	var prevStatus models.OrderStatus
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return notFoundOr(err, apperr.NotFound, "Order not found")
		}
		if order.RestaurantID != restaurant.ID {
			return apperr.New(apperr.Forbidden, "This order does not belong to your restaurant")
		}
		if err := statemachine.CanTransition(order.Status, req.Status); err != nil {
			return err
		}

		// Guard on the status the edge was validated against, so a
		// racing transition cannot slip an illegal edge through.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", req.Status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.InvalidTransition,
				"Order status changed concurrently, transition is no longer valid")
		}
		orderRef = order.ID
		prevStatus = order.Status
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        orderRef,
		"previous_status": prevStatus,
		"current_status":  req.Status,
	})
}
