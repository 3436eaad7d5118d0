package services

import (
	"testing"

	"petmarket-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, NewNotificationService(db))

	t.Run("unknown user fails", func(t *testing.T) {
		_, err := svc.GetOrCreateCart(uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("repeated access returns the same cart", func(t *testing.T) {
		user := createUser(t, db, "alice")

		first, err := svc.GetOrCreateCart(user.ID)
		require.NoError(t, err)
		second, err := svc.GetOrCreateCart(user.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})
}

func TestAddItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, NewNotificationService(db))

	user := createUser(t, db, "alice")
	owner := createUser(t, db, "owner")
	business := createBusiness(t, db, "Paws & Claws", owner)
	product := createProduct(t, db, business, "Chew Toy", 9.99, intPtr(3))

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := svc.AddItem(user.ID, product.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = svc.AddItem(user.ID, product.ID, -2)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unknown product fails", func(t *testing.T) {
		_, err := svc.AddItem(user.ID, uuid.New(), 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("same product merges additively, uncapped", func(t *testing.T) {
		cart, err := svc.AddItem(user.ID, product.ID, 2)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 2, cart.Items[0].Quantity)

		// Merged total may exceed stock; only UpdateItemQuantity clamps.
		cart, err = svc.AddItem(user.ID, product.ID, 3)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 5, cart.Items[0].Quantity)

		count, err := svc.GetItemCount(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, count)
	})
}

func TestUpdateItemQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, NewNotificationService(db))

	user := createUser(t, db, "alice")
	stranger := createUser(t, db, "mallory")
	owner := createUser(t, db, "owner")
	business := createBusiness(t, db, "Paws & Claws", owner)
	tracked := createProduct(t, db, business, "Chew Toy", 9.99, intPtr(4))
	untracked := createProduct(t, db, business, "Leash", 14.50, nil)

	cart, err := svc.AddItem(user.ID, tracked.ID, 1)
	require.NoError(t, err)
	trackedItem := cart.Items[0]

	t.Run("rejects quantity below one", func(t *testing.T) {
		_, err := svc.UpdateItemQuantity(user.ID, trackedItem.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unknown item fails", func(t *testing.T) {
		_, err := svc.UpdateItemQuantity(user.ID, uuid.New(), 2)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("item in another user's cart fails", func(t *testing.T) {
		_, err := svc.UpdateItemQuantity(stranger.ID, trackedItem.ID, 2)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("clamps to stock when tracked", func(t *testing.T) {
		cart, err := svc.UpdateItemQuantity(user.ID, trackedItem.ID, 10)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 4, cart.Items[0].Quantity)
	})

	t.Run("no clamp without tracked stock", func(t *testing.T) {
		cart, err := svc.AddItem(user.ID, untracked.ID, 1)
		require.NoError(t, err)

		var itemID uuid.UUID
		for _, item := range cart.Items {
			if item.ProductID == untracked.ID {
				itemID = item.ID
			}
		}
		require.NotEqual(t, uuid.Nil, itemID)

		cart, err = svc.UpdateItemQuantity(user.ID, itemID, 25)
		require.NoError(t, err)
		for _, item := range cart.Items {
			if item.ProductID == untracked.ID {
				assert.Equal(t, 25, item.Quantity)
			}
		}
	})
}

func TestRemoveItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, NewNotificationService(db))

	user := createUser(t, db, "alice")
	owner := createUser(t, db, "owner")
	business := createBusiness(t, db, "Paws & Claws", owner)
	product := createProduct(t, db, business, "Chew Toy", 9.99, nil)

	cart, err := svc.AddItem(user.ID, product.ID, 2)
	require.NoError(t, err)

	// Unknown item is a no-op.
	assert.NoError(t, svc.RemoveItem(user.ID, uuid.New()))

	require.NoError(t, svc.RemoveItem(user.ID, cart.Items[0].ID))
	count, err := svc.GetItemCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetItemCountWithoutCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, NewNotificationService(db))

	user := createUser(t, db, "alice")
	count, err := svc.GetItemCount(user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCheckoutPreconditions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, NewNotificationService(db))

	owner := createUser(t, db, "owner")
	business := createBusiness(t, db, "Paws & Claws", owner)
	product := createProduct(t, db, business, "Chew Toy", 9.99, nil)

	t.Run("missing address leaves everything untouched", func(t *testing.T) {
		user := createUser(t, db, "no-address")
		user.PhoneNumber = "+38970111222"
		require.NoError(t, db.Save(user).Error)
		_, err := svc.AddItem(user.ID, product.ID, 2)
		require.NoError(t, err)

		_, err = svc.Checkout(user.ID)
		require.ErrorIs(t, err, ErrFailedPrecondition)
		assert.Contains(t, err.Error(), "address")

		var orders int64
		require.NoError(t, db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orders).Error)
		assert.Zero(t, orders)

		count, err := svc.GetItemCount(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("missing phone number fails distinctly", func(t *testing.T) {
		user := createUser(t, db, "no-phone")
		user.Address = "1 Main St"
		require.NoError(t, db.Save(user).Error)
		_, err := svc.AddItem(user.ID, product.ID, 1)
		require.NoError(t, err)

		_, err = svc.Checkout(user.ID)
		require.ErrorIs(t, err, ErrFailedPrecondition)
		assert.Contains(t, err.Error(), "phone number")
	})

	t.Run("no cart fails with not found", func(t *testing.T) {
		user := createUser(t, db, "no-cart")
		user.Address = "1 Main St"
		user.PhoneNumber = "+38970111222"
		require.NoError(t, db.Save(user).Error)

		_, err := svc.Checkout(user.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty cart fails", func(t *testing.T) {
		user := createUser(t, db, "empty-cart")
		user.Address = "1 Main St"
		user.PhoneNumber = "+38970111222"
		require.NoError(t, db.Save(user).Error)
		_, err := svc.GetOrCreateCart(user.ID)
		require.NoError(t, err)

		_, err = svc.Checkout(user.ID)
		require.ErrorIs(t, err, ErrFailedPrecondition)
		assert.Contains(t, err.Error(), "cart is empty")
	})
}

func TestCheckoutSuccess(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, NewNotificationService(db))

	buyer := createUser(t, db, "buyer")
	buyer.Address = "1 Main St"
	buyer.PhoneNumber = "+38970111222"
	require.NoError(t, db.Save(buyer).Error)

	ownerA := createUser(t, db, "owner-a")
	ownerB := createUser(t, db, "owner-b")
	storeA := createBusiness(t, db, "Paws & Claws", ownerA)
	storeB := createBusiness(t, db, "Fur Real", ownerB)
	toy := createProduct(t, db, storeA, "Chew Toy", 9.99, intPtr(10))
	leash := createProduct(t, db, storeB, "Leash", 14.50, nil)

	_, err := svc.AddItem(buyer.ID, toy.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(buyer.ID, leash.ID, 1)
	require.NoError(t, err)

	order, err := svc.Checkout(buyer.ID)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, models.OrderConfirmed, order.Status)

	// The snapshot survives later price changes.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", toy.ID).Update("price", 19.99).Error)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, "id = ?", order.ID).Error)
	require.Len(t, stored.Items, 2)
	prices := map[uuid.UUID]float64{}
	for _, item := range stored.Items {
		prices[item.ProductID] = item.PriceAtOrder
	}
	assert.Equal(t, 9.99, prices[toy.ID])
	assert.Equal(t, 14.50, prices[leash.ID])

	// One notification per business owner, not per line.
	listA := notificationsFor(t, db, ownerA.ID)
	require.Len(t, listA, 1)
	assert.Equal(t, "A customer has purchased products from Paws & Claws: Chew Toy (×2).", listA[0].Message)

	listB := notificationsFor(t, db, ownerB.ID)
	require.Len(t, listB, 1)
	assert.Equal(t, "A customer has purchased products from Fur Real: Leash (×1).", listB[0].Message)

	// Cart is emptied in the same transaction.
	count, err := svc.GetItemCount(buyer.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCheckoutGroupsLinesPerBusiness(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db, NewNotificationService(db))

	buyer := createUser(t, db, "buyer")
	buyer.Address = "1 Main St"
	buyer.PhoneNumber = "+38970111222"
	require.NoError(t, db.Save(buyer).Error)

	owner := createUser(t, db, "owner")
	store := createBusiness(t, db, "Paws & Claws", owner)
	toy := createProduct(t, db, store, "Chew Toy", 9.99, nil)
	leash := createProduct(t, db, store, "Leash", 14.50, nil)

	_, err := svc.AddItem(buyer.ID, toy.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(buyer.ID, leash.ID, 3)
	require.NoError(t, err)

	_, err = svc.Checkout(buyer.ID)
	require.NoError(t, err)

	list := notificationsFor(t, db, owner.ID)
	require.Len(t, list, 1)
	assert.Equal(t, "A customer has purchased products from Paws & Claws: Chew Toy (×1), Leash (×3).", list[0].Message)
}
