package repository

import (
	"time"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	CreateCart(cart *model.Cart) error
	FindByUserID(userID uint) (*model.Cart, error)
	FindItemByID(itemID uint) (*model.CartItem, error)
	CreateItem(item *model.CartItem) error
	UpdateItem(item *model.CartItem) error
	DeleteItem(itemID uint) error
	// DeleteCart removes the cart and all its items in one transaction
	DeleteCart(cartID uint) error
	// DeleteStale removes carts (and their items) not updated since the cutoff
	DeleteStale(cutoff time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) CreateCart(cart *model.Cart) error {
	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"user_id": cart.UserID,
		})
		return err
	}

	logger.Debug("Cart created in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": cart.UserID,
	})
	return nil
}

func (r *cartRepository) FindByUserID(userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).Preload("Items").First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindItemByID(itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.First(&item, itemID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":   item.CartID,
			"item_type": item.ItemType,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      item.CartID,
	})
	return nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteItem(itemID uint) error {
	if err := r.db.Delete(&model.CartItem{}, itemID).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": itemID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteCart(cartID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Cart{}, cartID).Error
	})
	if err != nil {
		logger.Error("Failed to delete cart from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	logger.Debug("Cart deleted from database", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}

func (r *cartRepository) DeleteStale(cutoff time.Time) (int64, error) {
	var staleIDs []uint
	err := r.db.Model(&model.Cart{}).
		Where("updated_at < ?", cutoff).
		Pluck("id", &staleIDs).Error
	if err != nil {
		return 0, err
	}
	if len(staleIDs) == 0 {
		return 0, nil
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id IN ?", staleIDs).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", staleIDs).Delete(&model.Cart{}).Error
	})
	if err != nil {
		logger.Error("Failed to delete stale carts from database", err, map[string]interface{}{
			"cutoff": cutoff,
		})
		return 0, err
	}
	return int64(len(staleIDs)), nil
}
