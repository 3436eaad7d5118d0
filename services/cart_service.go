package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"petmarket-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewCartService(db *gorm.DB, notifications *NotificationService) *CartService {
	return &CartService{db: db, notifications: notifications}
}

// GetOrCreateCart returns the user's cart with items and products loaded,
// creating an empty cart on first access.
func (s *CartService) GetOrCreateCart(userID uuid.UUID) (*models.Cart, error) {
	return getOrCreateCart(s.db, userID)
}

func getOrCreateCart(db *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return nil, err
	}

	var cart models.Cart
	err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if err := db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts quantity units of a product into the user's cart, merging
// additively with an existing line for the same product. The merged total is
// not clamped to stock; only UpdateItemQuantity clamps.
func (s *CartService) AddItem(userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
	}

	var cartID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		cartID = cart.ID

		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %s", ErrNotFound, productID)
			}
			return err
		}

		var existing models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&existing).Error
		switch {
		case err == nil:
			return tx.Model(&existing).Update("quantity", existing.Quantity+quantity).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
			return tx.Create(&item).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return s.loadCart(cartID)
}

// UpdateItemQuantity sets a line's quantity, capped at the product's stock
// when the product tracks stock. The item must belong to the user's cart.
func (s *CartService) UpdateItemQuantity(userID, cartItemID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidArgument)
	}

	var cartID uuid.UUID
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		cartID = cart.ID

		var item models.CartItem
		err = tx.Preload("Product").
			Where("id = ? AND cart_id = ?", cartItemID, cart.ID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart item %s", ErrNotFound, cartItemID)
			}
			return err
		}

		if item.Product != nil && item.Product.StockQuantity != nil && quantity > *item.Product.StockQuantity {
			quantity = *item.Product.StockQuantity
		}
		return tx.Model(&item).Update("quantity", quantity).Error
	})
	if err != nil {
		return nil, err
	}
	return s.loadCart(cartID)
}

func (s *CartService) loadCart(cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := s.db.Preload("Items.Product").First(&cart, "id = ?", cartID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveItem detaches a line from the user's cart. Unknown items are ignored.
func (s *CartService) RemoveItem(userID, cartItemID uuid.UUID) error {
	cart, err := s.GetOrCreateCart(userID)
	if err != nil {
		return err
	}
	return s.db.Where("id = ? AND cart_id = ?", cartItemID, cart.ID).
		Delete(&models.CartItem{}).Error
}

// GetItemCount sums the quantities across the cart's lines; 0 without a cart.
func (s *CartService) GetItemCount(userID uuid.UUID) (int, error) {
	var cart models.Cart
	err := s.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range cart.Items {
		count += item.Quantity
	}
	return count, nil
}

type purchaseNote struct {
	buyerID uuid.UUID
	ownerID uuid.UUID
	message string
}

// Checkout converts the user's cart into an order, notifies each business
// owner once, and empties the cart. Order creation and cart clearing commit
// together; notifications go out after commit and are best effort.
func (s *CartService) Checkout(userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	var notes []purchaseNote

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %s", ErrNotFound, userID)
			}
			return err
		}
		if strings.TrimSpace(user.Address) == "" {
			return fmt.Errorf("%w: please set your address in your profile before placing an order", ErrFailedPrecondition)
		}
		if strings.TrimSpace(user.PhoneNumber) == "" {
			return fmt.Errorf("%w: please set your phone number in your profile before placing an order", ErrFailedPrecondition)
		}

		var cart models.Cart
		err := tx.Preload("Items.Product.Business").
			Where("user_id = ?", userID).
			First(&cart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart for user %s", ErrNotFound, userID)
			}
			return err
		}
		if len(cart.Items) == 0 {
			return fmt.Errorf("%w: your cart is empty", ErrFailedPrecondition)
		}

		order = models.Order{UserID: userID, Status: models.OrderConfirmed}
		for _, line := range cart.Items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				PriceAtOrder: line.Product.Price,
			})
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		notes = groupPurchaseNotes(userID, cart.Items)

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	for _, n := range notes {
		if err := s.notifications.NotifyProductPurchase(n.buyerID, n.ownerID, n.message); err != nil {
			log.Printf("order %s: purchase notification failed: %v", order.ID, err)
		}
	}
	return &order, nil
}

// groupPurchaseNotes builds one note per business, covering every cart line
// from that business. Lines without a resolvable business owner are skipped.
func groupPurchaseNotes(buyerID uuid.UUID, items []models.CartItem) []purchaseNote {
	var seen []uuid.UUID
	grouped := make(map[uuid.UUID][]models.CartItem)
	for _, item := range items {
		if item.Product == nil || item.Product.Business == nil {
			continue
		}
		id := item.Product.BusinessID
		if _, ok := grouped[id]; !ok {
			seen = append(seen, id)
		}
		grouped[id] = append(grouped[id], item)
	}

	var notes []purchaseNote
	for _, businessID := range seen {
		lines := grouped[businessID]
		business := lines[0].Product.Business
		if business.OwnerID == nil {
			continue
		}

		storeName := business.Name
		if strings.TrimSpace(storeName) == "" {
			storeName = "your store"
		}
		parts := make([]string, 0, len(lines))
		for _, line := range lines {
			parts = append(parts, fmt.Sprintf("%s (×%d)", line.Product.Name, line.Quantity))
		}
		notes = append(notes, purchaseNote{
			buyerID: buyerID,
			ownerID: *business.OwnerID,
			message: fmt.Sprintf("A customer has purchased products from %s: %s.", storeName, strings.Join(parts, ", ")),
		})
	}
	return notes
}
