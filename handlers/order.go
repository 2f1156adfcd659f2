package handlers

import (
	"errors"
	"math"
	"net/http"

	"reelbites-api/apperr"
	"reelbites-api/config"
	"reelbites-api/middleware"
	"reelbites-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultPaymentMethod = "MOCK_CARD"

// newPayment builds the simulated settlement record for an order.
// Settlement always succeeds; there is no pending state.
func newPayment(order *models.Order, method string) models.Payment {
	if method == "" {
		method = defaultPaymentMethod
	}
	return models.Payment{
		OrderID:       order.ID,
		UserID:        order.UserID,
		Amount:        order.TotalPrice,
		Status:        models.PaymentSuccess,
		Method:        method,
		TransactionID: "TXN-" + uuid.NewString(),
	}
}

type DirectBuyRequest struct {
	ReelID        uint   `json:"reel_id" binding:"required"`
	AddressID     uint   `json:"address_id" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

// PlaceDirectBuyOrder converts a reel tap into a quantity-1 order for
// the promoted item, paid immediately.
func PlaceDirectBuyOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req DirectBuyRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	var address models.Address
	if err := config.DB.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		fail(c, notFoundOr(err, apperr.InvalidAddress, "Address does not belong to you"))
		return
	}

	var reel models.Reel
	if err := config.DB.Preload("FoodItem").Preload("Restaurant").First(&reel, req.ReelID).Error; err != nil {
		fail(c, notFoundOr(err, apperr.NotFound, "Reel not found"))
		return
	}
	// A reel can outlive its item or restaurant; an unresolvable
	// promotional reference is NotFound, not an availability problem.
	if reel.FoodItem.ID == 0 || reel.Restaurant.ID == 0 {
		fail(c, apperr.New(apperr.NotFound, "The promoted item is no longer on the menu"))
		return
	}
	if !reel.Restaurant.IsOpen {
		fail(c, apperr.New(apperr.RestaurantClosed, "Restaurant is currently closed"))
		return
	}
	if !reel.FoodItem.IsAvailable {
		fail(c, apperr.New(apperr.ItemUnavailable, "'"+reel.FoodItem.Name+"' is not available right now"))
		return
	}

	addressID := address.ID
	order := models.Order{
		UserID:       userID,
		RestaurantID: reel.RestaurantID,
		AddressID:    &addressID,
		Status:       models.StatusPending,
		TotalPrice:   reel.FoodItem.Price,
		Items: []models.OrderItem{{
			FoodItemID:   reel.FoodItemID,
			Quantity:     1,
			PriceAtOrder: reel.FoodItem.Price,
			Name:         reel.FoodItem.Name,
		}},
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		payment := newPayment(&order, req.PaymentMethod)
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		order.Payment = &payment
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}

	config.DB.Preload("Items.FoodItem").Preload("Restaurant").Preload("Payment").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

type CartLine struct {
	FoodItemID   uint    `json:"food_item_id" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,min=1"`
	PriceAtOrder float64 `json:"price_at_order" binding:"required,gt=0"`
}

type CartOrderRequest struct {
	RestaurantID  uint       `json:"restaurant_id" binding:"required"`
	Items         []CartLine `json:"items" binding:"required,min=1,dive"`
	TotalPrice    float64    `json:"total_price" binding:"required,gt=0"`
	PaymentMethod string     `json:"payment_method"`
}

// PlaceCartOrder checks out a multi-item cart against one restaurant.
// Order, line items and payment are written in a single transaction;
// any validation failure persists nothing.
func PlaceCartOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CartOrderRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		fail(c, notFoundOr(err, apperr.NotFound, "Restaurant not found"))
		return
	}
	if !restaurant.IsOpen {
		fail(c, apperr.New(apperr.RestaurantClosed, "Restaurant is currently closed"))
		return
	}

	// One batch lookup scoped to the restaurant: a missing row means the
	// item doesn't exist or belongs to another restaurant.
	idSet := map[uint]bool{}
	for _, line := range req.Items {
		idSet[line.FoodItemID] = true
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var items []models.FoodItem
	if err := config.DB.Where("restaurant_id = ? AND id IN ?", restaurant.ID, ids).Find(&items).Error; err != nil {
		fail(c, err)
		return
	}
	if len(items) < len(ids) {
		fail(c, apperr.New(apperr.SomeItemsNotFound, "Some items were not found in this restaurant's menu"))
		return
	}

	byID := make(map[uint]models.FoodItem, len(items))
	var unavailable []string
	for _, item := range items {
		byID[item.ID] = item
		if !item.IsAvailable {
			unavailable = append(unavailable, item.Name)
		}
	}
	if len(unavailable) > 0 {
		fail(c, apperr.WithItems(apperr.ItemsUnavailable, "Some items are not available right now", unavailable))
		return
	}

	// Client unit prices are stored verbatim as historical snapshots, but
	// the submitted total must match the sum of the submitted lines.
	var sum float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		sum += line.PriceAtOrder * float64(line.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			FoodItemID:   line.FoodItemID,
			Quantity:     line.Quantity,
			PriceAtOrder: line.PriceAtOrder,
			Name:         byID[line.FoodItemID].Name,
		})
	}
	if math.Abs(sum-req.TotalPrice) > 0.005 {
		fail(c, apperr.New(apperr.ValidationFailed, "Total price does not match the sum of line totals"))
		return
	}

	order := models.Order{
		UserID:       userID,
		RestaurantID: restaurant.ID,
		Status:       models.StatusPending,
		TotalPrice:   req.TotalPrice,
		Items:        orderItems,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		payment := newPayment(&order, req.PaymentMethod)
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		order.Payment = &payment
		return nil
	})
	if err != nil {
		fail(c, err)
		return
	}

	config.DB.Preload("Items.FoodItem").Preload("Restaurant").Preload("Payment").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
