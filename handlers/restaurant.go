package handlers

import (
	"net/http"

	"reelbites-api/apperr"
	"reelbites-api/config"
	"reelbites-api/middleware"
	"reelbites-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ── Restaurant management ───────────────────────────────────────────────────

type CreateRestaurantRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"required,min=3"`
	ImageURL    string `json:"image_url"`
}

// CreateRestaurant creates the caller's restaurant and promotes them to
// owner in the same transaction. A user owns at most one restaurant and
// is promoted exactly once.
func CreateRestaurant(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CreateRestaurantRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	restaurant := models.Restaurant{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		ImageURL:    req.ImageURL,
		IsOpen:      true,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Restaurant
		if err := tx.Where("owner_id = ?", userID).First(&existing).Error; err == nil {
			return apperr.New(apperr.ValidationFailed, "You already own a restaurant")
		}
		if err := tx.Create(&restaurant).Error; err != nil {
			if isDuplicateKey(err) {
				return apperr.New(apperr.ValidationFailed, "You already own a restaurant")
			}
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			Update("role", models.RoleOwner).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Restaurant created, your account is now an owner account. Log in again to refresh your role.",
		"restaurant": restaurant,
	})
}

// GetMyRestaurant fetches the restaurant owned by the logged-in user
func GetMyRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Preload("FoodItems").Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		fail(c, apperr.New(apperr.NotFound, "No restaurant found for your account"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// UpdateRestaurant updates restaurant details, including open/closed
func UpdateRestaurant(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		fail(c, apperr.New(apperr.NotFound, "No restaurant found for your account"))
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.New(apperr.ValidationFailed, "Invalid request body: "+err.Error()))
		return
	}
	allowed := map[string]bool{"name": true, "description": true, "address": true, "image_url": true, "is_open": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if err := config.DB.Model(&restaurant).Updates(update).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// ── Menu management ─────────────────────────────────────────────────────────

type CreateFoodItemRequest struct {
	Name        string  `json:"name" binding:"required,min=2"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// AddFoodItem adds a new item to the caller's restaurant menu
func AddFoodItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		fail(c, apperr.New(apperr.NotFound, "Create a restaurant first before adding menu items"))
		return
	}

	var req CreateFoodItemRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	item := models.FoodItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		IsAvailable:  true,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Food item added", "item": item})
}

// UpdateFoodItem updates a menu item owned by the caller
func UpdateFoodItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	itemID := c.Param("itemId")

	var item models.FoodItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		fail(c, apperr.New(apperr.NotFound, "Food item not found"))
		return
	}
	var restaurant models.Restaurant
	if err := config.DB.Where("id = ? AND owner_id = ?", item.RestaurantID, ownerID).First(&restaurant).Error; err != nil {
		fail(c, apperr.New(apperr.Forbidden, "You don't own this food item"))
		return
	}

	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.New(apperr.ValidationFailed, "Invalid request body: "+err.Error()))
		return
	}
	allowed := map[string]bool{"name": true, "description": true, "price": true, "is_available": true}
	update := map[string]interface{}{}
	for k, v := range req {
		if allowed[k] {
			update[k] = v
		}
	}
	if err := config.DB.Model(&item).Updates(update).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food item updated", "item": item})
}

// DeleteFoodItem removes a menu item owned by the caller
func DeleteFoodItem(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	itemID := c.Param("itemId")

	var item models.FoodItem
	if err := config.DB.First(&item, itemID).Error; err != nil {
		fail(c, apperr.New(apperr.NotFound, "Food item not found"))
		return
	}
	var restaurant models.Restaurant
	if err := config.DB.Where("id = ? AND owner_id = ?", item.RestaurantID, ownerID).First(&restaurant).Error; err != nil {
		fail(c, apperr.New(apperr.Forbidden, "You don't own this food item"))
		return
	}
	// Reels promoting the item go with it, so no reel keeps pointing at
	// a menu entry that no longer exists.
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("food_item_id = ?", item.ID).Delete(&models.Reel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food item deleted"})
}

// ── Reel management ─────────────────────────────────────────────────────────

type CreateReelRequest struct {
	FoodItemID uint   `json:"food_item_id" binding:"required"`
	Title      string `json:"title" binding:"required,min=2"`
	VideoURL   string `json:"video_url" binding:"required,url"`
}

// AddReel publishes a promotional reel for one of the caller's items.
// Upload/storage is external; the URL is stored as-is.
func AddReel(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		fail(c, apperr.New(apperr.NotFound, "Create a restaurant first before publishing reels"))
		return
	}

	var req CreateReelRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	var item models.FoodItem
	if err := config.DB.Where("id = ? AND restaurant_id = ?", req.FoodItemID, restaurant.ID).First(&item).Error; err != nil {
		fail(c, apperr.New(apperr.NotFound, "Food item not found on your menu"))
		return
	}

	reel := models.Reel{
		RestaurantID: restaurant.ID,
		FoodItemID:   item.ID,
		Title:        req.Title,
		VideoURL:     req.VideoURL,
	}
	if err := config.DB.Create(&reel).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reel published", "reel": reel})
}

// DeleteReel removes one of the caller's reels
func DeleteReel(c *gin.Context) {
	ownerID := middleware.GetUserID(c)
	reelID := c.Param("reelId")

	var reel models.Reel
	if err := config.DB.First(&reel, reelID).Error; err != nil {
		fail(c, apperr.New(apperr.NotFound, "Reel not found"))
		return
	}
	var restaurant models.Restaurant
	if err := config.DB.Where("id = ? AND owner_id = ?", reel.RestaurantID, ownerID).First(&restaurant).Error; err != nil {
		fail(c, apperr.New(apperr.Forbidden, "You don't own this reel"))
		return
	}
	if err := config.DB.Delete(&reel).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reel deleted"})
}
