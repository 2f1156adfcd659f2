package handlers

import (
	"net/http"

	"reelbites-api/apperr"
	"reelbites-api/config"
	"reelbites-api/models"
	"reelbites-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns all restaurants (public)
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	if err := query.Find(&restaurants).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

// GetRestaurant returns a single restaurant with its menu
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.Preload("FoodItems").First(&restaurant, c.Param("id")).Error; err != nil {
		fail(c, notFoundOr(err, apperr.NotFound, "Restaurant not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMenu returns the menu for a specific restaurant (public)
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		fail(c, notFoundOr(err, apperr.NotFound, "Restaurant not found"))
		return
	}

	var items []models.FoodItem
	query := config.DB.Where("restaurant_id = ?", restaurantID)
	if available := c.Query("available"); available == "true" {
		query = query.Where("is_available = ?", true)
	}
	if err := query.Find(&items).Error; err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}

// ListReels returns the public reel feed, newest first
func ListReels(c *gin.Context) {
	var reels []models.Reel
	query := config.DB.Preload("FoodItem").Preload("Restaurant")
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}
	if err := query.Order("created_at desc").Find(&reels).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reels), "reels": reels})
}

// GetStateMachineInfo documents the fulfillment lifecycle
func GetStateMachineInfo(c *gin.Context) {
	edges := []gin.H{}
	for from, tos := range statemachine.AllTransitions() {
		for _, to := range tos {
			edges = append(edges, gin.H{"from": from, "to": to, "actor": "restaurant owner"})
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"initial_state":   models.StatusPending,
		"terminal_states": []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		"transitions":     edges,
	})
}
