package handlers_test

import (
	"net/http"
	"testing"

	"reelbites-api/middleware"
	"reelbites-api/models"

	"github.com/stretchr/testify/require"
)

func TestCreateRestaurantPromotesCustomerToOwner(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("alice", models.RoleCustomer)

	rec := env.do(http.MethodPost, "/api/restaurant", token, map[string]interface{}{
		"name":    "Alice's Diner",
		"address": "12 Food Court",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var reloaded models.User
	require.NoError(t, env.DB.First(&reloaded, user.ID).Error)
	require.Equal(t, models.RoleOwner, reloaded.Role)

	var restaurant models.Restaurant
	require.NoError(t, env.DB.Where("owner_id = ?", user.ID).First(&restaurant).Error)
	require.True(t, restaurant.IsOpen)
}

func TestCreateSecondRestaurantRejected(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser("alice", models.RoleOwner)
	env.createRestaurant(user.ID, true)

	// Re-issue a token reflecting the owner role.
	token := ownerToken(env, user)

	rec := env.do(http.MethodPost, "/api/restaurant", token, map[string]interface{}{
		"name":    "Second Diner",
		"address": "13 Food Court",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION_FAILED", errorCode(t, rec))

	require.EqualValues(t, 1, env.countRows(&models.Restaurant{}))
}

func TestUpdateRestaurantOpenClose(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("owner", models.RoleOwner)
	restaurant := env.createRestaurant(user.ID, true)

	rec := env.do(http.MethodPut, "/api/restaurant/", token, map[string]interface{}{
		"is_open": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded models.Restaurant
	require.NoError(t, env.DB.First(&reloaded, restaurant.ID).Error)
	require.False(t, reloaded.IsOpen)
}

func TestAddFoodItemRequiresRestaurant(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("owner", models.RoleOwner)

	rec := env.do(http.MethodPost, "/api/restaurant/menu", token, map[string]interface{}{
		"name":  "Burger",
		"price": 9.50,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteFoodItemRemovesItsReels(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("owner", models.RoleOwner)
	restaurant := env.createRestaurant(user.ID, true)
	item := env.createFoodItem(restaurant.ID, "Taco", 6.40, true)
	env.createReel(restaurant.ID, item.ID)

	rec := env.do(http.MethodDelete, "/api/restaurant/menu/"+itoa(item.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.EqualValues(t, 0, env.countRows(&models.FoodItem{}))
	require.EqualValues(t, 0, env.countRows(&models.Reel{}))
}

func TestAddReelForForeignItemRejected(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser("owner", models.RoleOwner)
	env.createRestaurant(user.ID, true)
	other, _ := env.createUser("other-owner", models.RoleOwner)
	foreign := env.createRestaurant(other.ID, true)
	alien := env.createFoodItem(foreign.ID, "Sushi", 12.00, true)

	rec := env.do(http.MethodPost, "/api/restaurant/reels", token, map[string]interface{}{
		"food_item_id": alien.ID,
		"title":        "Not mine",
		"video_url":    "https://cdn.example.com/x.mp4",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.EqualValues(t, 0, env.countRows(&models.Reel{}))
}

func TestPublicReelFeed(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser("owner", models.RoleOwner)
	restaurant := env.createRestaurant(user.ID, true)
	item := env.createFoodItem(restaurant.ID, "Taco", 6.40, true)
	env.createReel(restaurant.ID, item.ID)

	rec := env.do(http.MethodGet, "/api/reels", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.EqualValues(t, 1, body["count"])
}

func ownerToken(env *testEnv, user models.User) string {
	env.T.Helper()
	var reloaded models.User
	require.NoError(env.T, env.DB.First(&reloaded, user.ID).Error)
	token, err := middleware.GenerateToken(&reloaded)
	require.NoError(env.T, err)
	return token
}
