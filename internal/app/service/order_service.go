package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/internal/app/repository"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
	"github.com/autopartshop/autoparts-backend/pkg/mailer"
	"gorm.io/gorm"
)

// codSurcharge is added to every line item's unit price when the order is
// paid on delivery (cash or card).
const codSurcharge = 1000

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidShipping      = errors.New("invalid shipping method")
	ErrInvalidOrderStatus   = errors.New("invalid order status")
	ErrMissingAddress       = errors.New("shipping and billing addresses are required")
)

// OrderNotifier receives committed orders for live admin feeds.
type OrderNotifier interface {
	BroadcastNewOrder(order *model.Order)
}

type CreateOrderInput struct {
	ShippingAddress string
	BillingAddress  string
	Comment         string
	PaymentMethod   model.PaymentMethod
	ShippingMethod  model.ShippingMethod
}

// OrderDefaults prefills the checkout form from the user's profile.
type OrderDefaults struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	ShippingAddress string `json:"shipping_address"`
	BillingAddress  string `json:"billing_address"`
}

type OrderService interface {
	CreateOrder(userID uint, input CreateOrderInput) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetAllOrders() ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
	DeleteOrder(orderID uint) error
	GetUserOrderDefaults(userID uint) (*OrderDefaults, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	db        *gorm.DB
	mailer    mailer.Mailer
	notifier  OrderNotifier
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
	mail mailer.Mailer,
	notifier OrderNotifier,
) OrderService {
	if mail == nil {
		mail = mailer.NopMailer{}
	}
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		db:        db,
		mailer:    mail,
		notifier:  notifier,
	}
}

// CreateOrder converts the user's cart into an order. The order insert and
// the cart teardown commit in one transaction; the cart ceases to exist
// the moment the order does.
func (s *orderService) CreateOrder(userID uint, input CreateOrderInput) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id":         userID,
		"payment_method":  input.PaymentMethod,
		"shipping_method": input.ShippingMethod,
	})

	if !input.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if !input.ShippingMethod.Valid() {
		return nil, ErrInvalidShipping
	}
	if strings.TrimSpace(input.ShippingAddress) == "" || strings.TrimSpace(input.BillingAddress) == "" {
		return nil, ErrMissingAddress
	}

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create order: no cart", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrEmptyCart
		}
		logger.Error("Failed to fetch cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cart.Items) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
		})
		return nil, ErrEmptyCart
	}

	extraFee := 0
	if input.PaymentMethod == model.PaymentMethodCash || input.PaymentMethod == model.PaymentMethodCardOnDelivery {
		extraFee = codSurcharge
	}

	order := &model.Order{
		UserID:          userID,
		OrderDate:       time.Now(),
		Status:          model.OrderStatusProcessing,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		Comment:         input.Comment,
		PaymentMethod:   input.PaymentMethod,
		ShippingMethod:  input.ShippingMethod,
		ExtraFee:        extraFee,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, model.OrderItem{
			ItemType:    item.ItemType,
			PartID:      item.PartID,
			EquipmentID: item.EquipmentID,
			Name:        item.Name,
			Price:       item.Price + float64(extraFee),
			Quantity:    item.Quantity,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Cart{}, cart.ID).Error
	})
	if err != nil {
		logger.Error("Order transaction failed", err, map[string]interface{}{
			"user_id": userID,
			"cart_id": cart.ID,
		})
		return nil, err
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":   order.ID,
		"user_id":    userID,
		"item_count": len(order.Items),
		"extra_fee":  extraFee,
	})

	s.notifyOrderCreated(order)
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	logger.Debug("Fetching all orders")
	return s.orderRepo.FindAll()
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if !status.Valid() {
		return ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for status update", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if order.User != nil {
		go s.sendMail(order.User.Email, fmt.Sprintf("Order #%d status updated", orderID),
			fmt.Sprintf("Your order #%d is now %s.", orderID, status))
	}
	return nil
}

func (s *orderService) DeleteOrder(orderID uint) error {
	logger.Info("Deleting order", map[string]interface{}{
		"order_id": orderID,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		logger.Error("Failed to fetch order for deletion", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}

	if err := s.orderRepo.Delete(orderID); err != nil {
		return err
	}

	if order.User != nil {
		go s.sendMail(order.User.Email, fmt.Sprintf("Order #%d cancelled", orderID),
			fmt.Sprintf("Your order #%d has been cancelled and removed.", orderID))
	}
	return nil
}

func (s *orderService) GetUserOrderDefaults(userID uint) (*OrderDefaults, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user for order defaults", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return &OrderDefaults{
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		PhoneNumber:     user.PhoneNumber,
		ShippingAddress: user.ShippingAddress,
		BillingAddress:  user.Address,
	}, nil
}

// notifyOrderCreated runs the best-effort post-commit side effects:
// confirmation email and admin websocket broadcast.
func (s *orderService) notifyOrderCreated(order *model.Order) {
	if s.notifier != nil {
		s.notifier.BroadcastNewOrder(order)
	}

	user, err := s.userRepo.FindByID(order.UserID)
	if err != nil {
		logger.Warn("Skipping order confirmation email: user lookup failed", map[string]interface{}{
			"order_id": order.ID,
			"user_id":  order.UserID,
		})
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\nThank you for your order #%d.\nStatus: %s\n\nItems:\n", user.FirstName, order.ID, order.Status)
	var total float64
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d @ %.2f\n", item.Name, item.Quantity, item.Price)
		total += item.Price * float64(item.Quantity)
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n\n", total)
	fmt.Fprintf(&b, "Shipping address: %s\n", order.ShippingAddress)
	fmt.Fprintf(&b, "Billing address: %s\n\n", order.BillingAddress)
	fmt.Fprintf(&b, "Shipping method: %s\n", order.ShippingMethod)
	fmt.Fprintf(&b, "Payment method: %s\n", order.PaymentMethod)

	go s.sendMail(user.Email, fmt.Sprintf("Order #%d confirmed", order.ID), b.String())
}

func (s *orderService) sendMail(to, subject, body string) {
	if err := s.mailer.Send(to, subject, body); err != nil {
		logger.Warn("Failed to send order email", map[string]interface{}{
			"to":      to,
			"subject": subject,
			"error":   err.Error(),
		})
	}
}
