package models

import "time"

// OrderStatus represents all possible fulfillment states of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusConfirmed      OrderStatus = "CONFIRMED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusOutForDelivery OrderStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

type Order struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	UserID       uint        `json:"user_id" gorm:"not null;index"`
	User         User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID uint        `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   Restaurant  `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	AddressID    *uint       `json:"address_id"`
	Address      *Address    `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	Status       OrderStatus `json:"status" gorm:"not null;default:'PENDING'"`
	TotalPrice   float64     `json:"total_price" gorm:"not null"`
	Items        []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Payment      *Payment    `json:"payment,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	OrderID      uint     `json:"order_id" gorm:"not null;index"`
	FoodItemID   uint     `json:"food_item_id" gorm:"not null"`
	FoodItem     FoodItem `json:"food_item,omitempty" gorm:"foreignKey:FoodItemID"`
	Quantity     int      `json:"quantity" gorm:"not null"`
	PriceAtOrder float64  `json:"price_at_order" gorm:"not null"` // unit price snapshot at order time
	Name         string   `json:"name"`                           // name snapshot
}
