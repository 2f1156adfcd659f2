package handlers_test

import (
	"net/http"
	"testing"

	"reelbites-api/models"

	"github.com/stretchr/testify/require"
)

func orderIDs(t *testing.T, body map[string]interface{}) []float64 {
	t.Helper()
	raw := body["orders"].([]interface{})
	ids := make([]float64, 0, len(raw))
	for _, o := range raw {
		ids = append(ids, o.(map[string]interface{})["id"].(float64))
	}
	return ids
}

func TestListOrdersCustomerSeesOnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createUser("owner", models.RoleOwner)
	restaurant := env.createRestaurant(owner.ID, true)
	alice, aliceToken := env.createUser("alice", models.RoleCustomer)
	bob, _ := env.createUser("bob", models.RoleCustomer)

	mine := env.unpaidOrder(alice.ID, restaurant.ID, 10.00)
	env.unpaidOrder(bob.ID, restaurant.ID, 20.00)

	rec := env.do(http.MethodGet, "/api/orders", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ids := orderIDs(t, decodeBody(t, rec))
	require.Len(t, ids, 1)
	require.EqualValues(t, mine.ID, ids[0])
}

func TestListOrdersOwnerSeesOnlyTheirRestaurant(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerToken := env.createUser("owner", models.RoleOwner)
	restaurant := env.createRestaurant(owner.ID, true)
	other, _ := env.createUser("other-owner", models.RoleOwner)
	foreign := env.createRestaurant(other.ID, true)
	alice, _ := env.createUser("alice", models.RoleCustomer)

	here := env.unpaidOrder(alice.ID, restaurant.ID, 10.00)
	env.unpaidOrder(alice.ID, foreign.ID, 20.00)

	rec := env.do(http.MethodGet, "/api/orders", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ids := orderIDs(t, decodeBody(t, rec))
	require.Len(t, ids, 1)
	require.EqualValues(t, here.ID, ids[0])
}

func TestListOrdersOwnerWithoutRestaurantGetsEmptyList(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("owner", models.RoleOwner)

	rec := env.do(http.MethodGet, "/api/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.EqualValues(t, 0, body["count"])
}

func TestListOrdersAdminSeesAllWithOptionalFilter(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createUser("owner", models.RoleOwner)
	restaurant := env.createRestaurant(owner.ID, true)
	other, _ := env.createUser("other-owner", models.RoleOwner)
	foreign := env.createRestaurant(other.ID, true)
	alice, _ := env.createUser("alice", models.RoleCustomer)
	_, adminToken := env.createUser("admin", models.RoleAdmin)

	env.unpaidOrder(alice.ID, restaurant.ID, 10.00)
	filtered := env.unpaidOrder(alice.ID, foreign.ID, 20.00)

	rec := env.do(http.MethodGet, "/api/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, orderIDs(t, decodeBody(t, rec)), 2)

	rec = env.do(http.MethodGet, "/api/orders?restaurant_id="+itoa(foreign.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ids := orderIDs(t, decodeBody(t, rec))
	require.Len(t, ids, 1)
	require.EqualValues(t, filtered.ID, ids[0])
}

func TestListOrdersNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createUser("owner", models.RoleOwner)
	restaurant := env.createRestaurant(owner.ID, true)
	alice, token := env.createUser("alice", models.RoleCustomer)

	first := env.unpaidOrder(alice.ID, restaurant.ID, 10.00)
	second := env.unpaidOrder(alice.ID, restaurant.ID, 20.00)

	rec := env.do(http.MethodGet, "/api/orders", token, nil)
	ids := orderIDs(t, decodeBody(t, rec))
	require.Len(t, ids, 2)
	require.EqualValues(t, second.ID, ids[0])
	require.EqualValues(t, first.ID, ids[1])
}

func TestGetOrderVisibility(t *testing.T) {
	env := newTestEnv(t)
	owner, ownerToken := env.createUser("owner", models.RoleOwner)
	restaurant := env.createRestaurant(owner.ID, true)
	alice, aliceToken := env.createUser("alice", models.RoleCustomer)
	_, bobToken := env.createUser("bob", models.RoleCustomer)
	_, adminToken := env.createUser("admin", models.RoleAdmin)
	order := env.unpaidOrder(alice.ID, restaurant.ID, 10.00)

	// Purchaser, owning owner and admin can read it.
	for _, token := range []string{aliceToken, ownerToken, adminToken} {
		rec := env.do(http.MethodGet, orderPath(order.ID), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// An unrelated customer cannot.
	rec := env.do(http.MethodGet, orderPath(order.ID), bobToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "FORBIDDEN", errorCode(t, rec))
}

func TestGetOrderNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser("alice", models.RoleCustomer)

	rec := env.do(http.MethodGet, "/api/orders/999", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", errorCode(t, rec))
}
