package models

import "time"

// Reel is a short promotional video merchandising a single food item.
// A tap on a reel places a quantity-1 direct-buy order for that item.
type Reel struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RestaurantID uint       `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	FoodItemID   uint       `json:"food_item_id" gorm:"not null"`
	FoodItem     FoodItem   `json:"food_item,omitempty" gorm:"foreignKey:FoodItemID"`
	Title        string     `json:"title" gorm:"not null"`
	VideoURL     string     `json:"video_url" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
