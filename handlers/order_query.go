package handlers

import (
	"errors"
	"net/http"

	"reelbites-api/apperr"
	"reelbites-api/config"
	"reelbites-api/middleware"
	"reelbites-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func orderQuery() *gorm.DB {
	return config.DB.
		Preload("Items.FoodItem").
		Preload("Restaurant").
		Preload("User").
		Preload("Payment")
}

// ListOrders returns orders scoped to the caller's role: customers see
// their own, owners see their restaurant's, admins see everything. The
// role switch is exhaustive over the closed role set.
func ListOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var orders []models.Order
	query := orderQuery()

	switch middleware.GetRole(c) {
	case models.RoleCustomer:
		query = query.Where("user_id = ?", userID)
	case models.RoleOwner:
		var restaurant models.Restaurant
		if err := config.DB.Where("owner_id = ?", userID).First(&restaurant).Error; err != nil {
			// An owner without a restaurant simply has no orders yet.
			c.JSON(http.StatusOK, gin.H{"count": 0, "orders": []models.Order{}})
			return
		}
		query = query.Where("restaurant_id = ?", restaurant.ID)
	case models.RoleAdmin:
		if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
			query = query.Where("restaurant_id = ?", restaurantID)
		}
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at desc, id desc").Find(&orders).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns one order with its items. Visible to the purchaser,
// the owner of the order's restaurant, and admins.
func GetOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := orderQuery().First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, apperr.New(apperr.NotFound, "Order not found"))
			return
		}
		fail(c, err)
		return
	}

	if !canViewOrder(&order, userID, middleware.GetRole(c)) {
		fail(c, apperr.New(apperr.Forbidden, "You do not have access to this order"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func canViewOrder(order *models.Order, userID uint, role models.UserRole) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleOwner:
		var restaurant models.Restaurant
		if err := config.DB.Where("owner_id = ?", userID).First(&restaurant).Error; err != nil {
			return false
		}
		return order.RestaurantID == restaurant.ID
	default:
		return order.UserID == userID
	}
}
