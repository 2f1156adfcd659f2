package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"reelbites-api/config"
	"reelbites-api/middleware"
	"reelbites-api/models"
	"reelbites-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	T  *testing.T
	R  *gin.Engine
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A fresh :memory: DB exists per connection; keep the pool at one so
	// every query sees the same database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return &testEnv{T: t, R: r, DB: db}
}

func (env *testEnv) createUser(name string, role models.UserRole) (models.User, string) {
	env.T.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(env.T, err)
	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(env.T, err)
	return user, token
}

func (env *testEnv) createRestaurant(ownerID uint, isOpen bool) models.Restaurant {
	env.T.Helper()
	restaurant := models.Restaurant{
		OwnerID: ownerID,
		Name:    fmt.Sprintf("Restaurant %d", ownerID),
		Address: "1 Main Street",
		IsOpen:  isOpen,
	}
	require.NoError(env.T, env.DB.Create(&restaurant).Error)
	// IsOpen carries gorm:"default:true", so Create drops a false zero
	// value; write the column explicitly so the fixture persists as asked.
	require.NoError(env.T, env.DB.Model(&restaurant).Update("is_open", isOpen).Error)
	restaurant.IsOpen = isOpen
	return restaurant
}

func (env *testEnv) createFoodItem(restaurantID uint, name string, price float64, available bool) models.FoodItem {
	env.T.Helper()
	item := models.FoodItem{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        price,
		IsAvailable:  available,
	}
	require.NoError(env.T, env.DB.Create(&item).Error)
	// IsAvailable carries gorm:"default:true"; same zero-value trap as
	// createRestaurant above.
	require.NoError(env.T, env.DB.Model(&item).Update("is_available", available).Error)
	item.IsAvailable = available
	return item
}

func (env *testEnv) createReel(restaurantID, foodItemID uint) models.Reel {
	env.T.Helper()
	reel := models.Reel{
		RestaurantID: restaurantID,
		FoodItemID:   foodItemID,
		Title:        "Try this",
		VideoURL:     "https://cdn.example.com/reel.mp4",
	}
	require.NoError(env.T, env.DB.Create(&reel).Error)
	return reel
}

func (env *testEnv) createAddress(userID uint, isDefault bool) models.Address {
	env.T.Helper()
	address := models.Address{
		UserID:     userID,
		Street:     "42 Side Street",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62701",
		Country:    "USA",
		IsDefault:  isDefault,
	}
	require.NoError(env.T, env.DB.Create(&address).Error)
	return address
}

func (env *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	env.T.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.R.ServeHTTP(rec, req)
	return rec
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

func addressPath(id uint) string {
	return fmt.Sprintf("/api/addresses/%d", id)
}

func orderPath(id uint) string {
	return fmt.Sprintf("/api/orders/%d", id)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	code, _ := body["code"].(string)
	return code
}
