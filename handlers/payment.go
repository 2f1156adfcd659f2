package handlers

import (
	"errors"
	"net/http"

	"reelbites-api/apperr"
	"reelbites-api/config"
	"reelbites-api/middleware"
	"reelbites-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"required"`
}

// CreatePayment records a settlement for an existing order. At most one
// payment per order: the pre-check and insert share a transaction, and
// the unique index on order_id is the authoritative guard — a conflict
// surfaces as DuplicatePayment, never as a generic failure.
func CreatePayment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var req CreatePaymentRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	var payment models.Payment
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "Order not found")
			}
			return err
		}
		if order.UserID != userID {
			return apperr.New(apperr.Forbidden, "This order does not belong to you")
		}

		var existing models.Payment
		if err := tx.Where("order_id = ?", order.ID).First(&existing).Error; err == nil {
			return apperr.New(apperr.DuplicatePayment, "This order has already been paid")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		payment = models.Payment{
			OrderID:       order.ID,
			UserID:        userID,
			Amount:        req.Amount,
			Status:        models.PaymentSuccess,
			Method:        req.Method,
			TransactionID: "TXN-" + uuid.NewString(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			if isDuplicateKey(err) {
				return apperr.New(apperr.DuplicatePayment, "This order has already been paid")
			}
			return err
		}
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Payment recorded", "payment": payment})
}

// GetPayment returns the payment for an order the caller purchased
func GetPayment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		fail(c, notFoundOr(err, apperr.NotFound, "Order not found"))
		return
	}
	if order.UserID != userID {
		fail(c, apperr.New(apperr.Forbidden, "This order does not belong to you"))
		return
	}

	var payment models.Payment
	if err := config.DB.Where("order_id = ?", order.ID).First(&payment).Error; err != nil {
		fail(c, notFoundOr(err, apperr.NotFound, "No payment recorded for this order"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
