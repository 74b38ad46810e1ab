package service

import (
	"errors"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidItemType  = errors.New("invalid item type")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
)

type CartService interface {
	GetUserCart(userID uint) (*model.Cart, error)
	AddToCart(userID uint, itemType model.ItemType, itemID uint, quantity int) (*model.Cart, error)
	UpdateQuantity(userID, cartItemID uint, quantity int) error
	RemoveItem(userID, cartItemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo      repository.CartRepository
	partRepo      repository.PartRepository
	equipmentRepo repository.EquipmentRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	partRepo repository.PartRepository,
	equipmentRepo repository.EquipmentRepository,
) CartService {
	return &cartService{
		cartRepo:      cartRepo,
		partRepo:      partRepo,
		equipmentRepo: equipmentRepo,
	}
}

// GetUserCart returns the user's cart, creating an empty one on first access.
func (s *cartService) GetUserCart(userID uint) (*model.Cart, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	cart = &model.Cart{UserID: userID}
	if err := s.cartRepo.CreateCart(cart); err != nil {
		// unique index on user_id: another request created it first
		if existing, findErr := s.cartRepo.FindByUserID(userID); findErr == nil {
			return existing, nil
		}
		logger.Error("Failed to create cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Cart created for user", map[string]interface{}{
		"user_id": userID,
		"cart_id": cart.ID,
	})
	cart.Items = []model.CartItem{}
	return cart, nil
}

// AddToCart snapshots the catalog item's current name and price into the
// cart. Adding an item already present merges by incrementing quantity.
func (s *cartService) AddToCart(userID uint, itemType model.ItemType, itemID uint, quantity int) (*model.Cart, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":   userID,
		"item_type": itemType,
		"item_id":   itemID,
		"quantity":  quantity,
	})

	if !itemType.Valid() {
		logger.Warn("Cannot add to cart: unknown item type", map[string]interface{}{
			"user_id":   userID,
			"item_type": itemType,
		})
		return nil, ErrInvalidItemType
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var (
		name        string
		price       float64
		partID      *uint
		equipmentID *uint
	)
	switch itemType {
	case model.ItemTypePart:
		part, err := s.partRepo.FindByID(itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Cannot add to cart: part not found", map[string]interface{}{
					"user_id": userID,
					"part_id": itemID,
				})
				return nil, ErrPartNotFound
			}
			logger.Error("Failed to fetch part for cart", err, map[string]interface{}{
				"part_id": itemID,
			})
			return nil, err
		}
		name = part.Name
		price = part.Price
		id := part.ID
		partID = &id
	case model.ItemTypeEquipment:
		equipment, err := s.equipmentRepo.FindByID(itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Cannot add to cart: equipment not found", map[string]interface{}{
					"user_id":      userID,
					"equipment_id": itemID,
				})
				return nil, ErrEquipmentNotFound
			}
			logger.Error("Failed to fetch equipment for cart", err, map[string]interface{}{
				"equipment_id": itemID,
			})
			return nil, err
		}
		name = equipment.Name
		price = equipment.Price
		id := equipment.ID
		equipmentID = &id
	}

	cart, err := s.GetUserCart(userID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ItemType == itemType && item.ReferenceID() == itemID {
			item.Quantity += quantity
			if err := s.cartRepo.UpdateItem(item); err != nil {
				logger.Error("Failed to merge cart item", err, map[string]interface{}{
					"cart_item_id": item.ID,
				})
				return nil, err
			}
			logger.Info("Cart item quantity merged", map[string]interface{}{
				"cart_item_id": item.ID,
				"quantity":     item.Quantity,
			})
			return s.cartRepo.FindByUserID(userID)
		}
	}

	cartItem := &model.CartItem{
		CartID:      cart.ID,
		ItemType:    itemType,
		PartID:      partID,
		EquipmentID: equipmentID,
		Name:        name,
		Price:       price,
		Quantity:    quantity,
	}
	if err := s.cartRepo.CreateItem(cartItem); err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		return nil, err
	}

	logger.Info("Cart item added", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"cart_id":      cart.ID,
	})
	return s.cartRepo.FindByUserID(userID)
}

// UpdateQuantity sets a cart item's quantity. Values below 1 are clamped
// to 1 rather than rejected.
func (s *cartService) UpdateQuantity(userID, cartItemID uint, quantity int) error {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})

	item, err := s.ownedItem(userID, cartItemID)
	if err != nil {
		return err
	}

	if quantity < 1 {
		quantity = 1
	}
	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}

	logger.Info("Cart item updated", map[string]interface{}{
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})
	return nil
}

func (s *cartService) RemoveItem(userID, cartItemID uint) error {
	logger.Info("Removing cart item", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	item, err := s.ownedItem(userID, cartItemID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		logger.Error("Failed to delete cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}

	logger.Info("Cart item removed", map[string]interface{}{
		"cart_item_id": cartItemID,
	})
	return nil
}

// ClearCart deletes the user's cart and its items. A missing cart is not
// an error.
func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing user cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		logger.Error("Failed to fetch cart for clearing", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	if err := s.cartRepo.DeleteCart(cart.ID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return err
	}

	logger.Info("User cart cleared", map[string]interface{}{
		"user_id": userID,
		"cart_id": cart.ID,
	})
	return nil
}

// ownedItem loads a cart item and verifies it belongs to the user's cart.
// Items owned by other users surface as not found.
func (s *cartService) ownedItem(userID, cartItemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindItemByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found", map[string]interface{}{
				"cart_item_id": cartItemID,
			})
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, err
	}

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.CartID != cart.ID {
		logger.Warn("Cart item access denied: ownership mismatch", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": cartItemID,
		})
		return nil, ErrCartItemNotFound
	}
	return item, nil
}
