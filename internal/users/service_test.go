package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-shop-services/internal/apperr"
)

type countingStore struct {
	*MemStore
	creates, updates, deletes int
}

func (c *countingStore) Create(ctx context.Context, u User) (User, error) {
	c.creates++
	return c.MemStore.Create(ctx, u)
}

func (c *countingStore) Update(ctx context.Context, u User) (User, error) {
	c.updates++
	return c.MemStore.Update(ctx, u)
}

func (c *countingStore) Delete(ctx context.Context, id int64) error {
	c.deletes++
	return c.MemStore.Delete(ctx, id)
}

func setup(t *testing.T) (*Service, *countingStore) {
	t.Helper()
	st := &countingStore{MemStore: NewMemStore()}
	return NewService(st, nil), st
}

func TestAddUser(t *testing.T) {
	svc, st := setup(t)

	u, err := svc.Add(context.Background(), User{Name: "Test User", Role: RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Test User", u.Name)
	assert.Empty(t, u.OrdersList)
	assert.Equal(t, 1, st.creates)
}

func TestAddUserDefaultsRole(t *testing.T) {
	svc, _ := setup(t)

	u, err := svc.Add(context.Background(), User{Name: "No Role"})
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, u.Role)
}

func TestAddUserEmptyName(t *testing.T) {
	svc, st := setup(t)

	for _, name := range []string{"", "   "} {
		_, err := svc.Add(context.Background(), User{Name: name, Role: RoleCustomer})
		require.Error(t, err)
		assert.Equal(t, "User name cannot be empty", err.Error())
		assert.Equal(t, apperr.InvalidInput, apperr.ClassOf(err))
	}
	assert.Zero(t, st.creates)
}

func TestAddUserInvalidRole(t *testing.T) {
	svc, st := setup(t)

	_, err := svc.Add(context.Background(), User{Name: "x", Role: "ROOT"})
	require.Error(t, err)
	assert.Equal(t, "Invalid role: ROOT", err.Error())
	assert.Zero(t, st.creates)
}

func TestUpdateUserKeepsOrders(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	u, err := svc.Add(ctx, User{Name: "Test User"})
	require.NoError(t, err)
	require.NoError(t, svc.AddOrderToUser(ctx, u.ID, 100))

	got, err := svc.Update(ctx, u.ID, User{Name: "Updated User", Role: RoleAdmin, OrdersList: []int64{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "Updated User", got.Name)
	assert.Equal(t, RoleAdmin, got.Role)
	assert.Equal(t, []int64{100}, got.OrdersList)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, st := setup(t)

	_, err := svc.Update(context.Background(), 1, User{Name: "Test User"})
	require.Error(t, err)
	assert.Equal(t, "User not found with id: 1", err.Error())
	assert.Zero(t, st.updates)
}

func TestDeleteUser(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	u, err := svc.Add(ctx, User{Name: "Test User"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))
	_, err = svc.Get(ctx, u.ID)
	assert.True(t, IsNotFound(err))
}

func TestDeleteUserNotFound(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, User{Name: "Keep"})
	require.NoError(t, err)

	err = svc.Delete(ctx, 7)
	require.Error(t, err)
	assert.Equal(t, "User not found with id: 7", err.Error())

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetUserNotFound(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Get(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "User not found with id: 1", err.Error())
	assert.Equal(t, apperr.NotFound, apperr.ClassOf(err))
}

func TestAddOrderToUserAllowsDuplicates(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	u, err := svc.Add(ctx, User{Name: "Test User"})
	require.NoError(t, err)

	require.NoError(t, svc.AddOrderToUser(ctx, u.ID, 100))
	require.NoError(t, svc.AddOrderToUser(ctx, u.ID, 100))
	require.NoError(t, svc.AddOrderToUser(ctx, u.ID, 101))

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 100, 101}, got.OrdersList)
}

func TestAddOrderToUserNotFound(t *testing.T) {
	svc, _ := setup(t)

	err := svc.AddOrderToUser(context.Background(), 3, 100)
	require.Error(t, err)
	assert.Equal(t, "User not found with id: 3", err.Error())
}

func TestListUsers(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	for _, n := range []string{"a", "b"} {
		_, err := svc.Add(ctx, User{Name: n})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
}
