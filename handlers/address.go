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

type AddAddressRequest struct {
	Street     string `json:"street" binding:"required,min=3"`
	City       string `json:"city" binding:"required,min=2"`
	State      string `json:"state" binding:"required,min=2"`
	PostalCode string `json:"postal_code" binding:"required,min=3"`
	Country    string `json:"country" binding:"required,min=2"`
	IsDefault  bool   `json:"is_default"`
}

// AddAddress adds a delivery address. The user's first address always
// becomes the default; a requested default displaces the current one.
// The clear-then-set runs in one transaction so concurrent calls cannot
// leave two defaults.
func AddAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddAddressRequest
	if err := bindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	address := models.Address{
		UserID:     userID,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		address.IsDefault = count == 0 || req.IsDefault
		if address.IsDefault {
			if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Address added", "address": address})
}

// SetDefaultAddress makes the given address the caller's default
func SetDefaultAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	addressID := c.Param("id")

	var address models.Address
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "Address not found")
			}
			return err
		}
		if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		address.IsDefault = true
		return tx.Model(&address).Update("is_default", true).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Default address updated", "address": address})
}

// DeleteAddress removes an address. Deleting the default promotes the
// most-recently-created remaining address, if any.
func DeleteAddress(c *gin.Context) {
	userID := middleware.GetUserID(c)
	addressID := c.Param("id")

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var address models.Address
		if err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "Address not found")
			}
			return err
		}
		if err := tx.Delete(&address).Error; err != nil {
			return err
		}
		if !address.IsDefault {
			return nil
		}
		var successor models.Address
		err := tx.Where("user_id = ?", userID).Order("created_at desc, id desc").First(&successor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // no addresses left, zero defaults is fine
		}
		if err != nil {
			return err
		}
		return tx.Model(&successor).Update("is_default", true).Error
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

// ListAddresses returns the caller's address book, default first
func ListAddresses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", userID).
		Order("is_default desc, created_at desc").
		Find(&addresses).Error; err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(addresses), "addresses": addresses})
}
