package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kendall-kelly/bakery-api/cart"
	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/repository"
	"github.com/kendall-kelly/bakery-api/utils"
)

// maxCodeAttempts bounds order code re-draws on collision
const maxCodeAttempts = 10

// CreateOrderInput is the checkout payload
type CreateOrderInput struct {
	CustomerName  string               `json:"customerName"`
	Phone         string               `json:"phone"`
	Items         []models.CartItem    `json:"items"`
	Total         float64              `json:"total"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=cash venmo"`
	PickupDate    string               `json:"pickupDate" binding:"omitempty,pickupdate"`
	PickupTime    string               `json:"pickupTime"`
}

// OrderPatch lists the fields a customer may change on an order.
// Item reviews and ratings are keyed by item index. Completion is not
// here: only the admin toggle changes it.
type OrderPatch struct {
	Cancelled   *bool          `json:"cancelled"`
	Review      *string        `json:"review"`
	ItemReviews map[string]any `json:"itemReviews"`
	ItemRatings map[string]any `json:"itemRatings"`
}

func (p OrderPatch) empty() bool {
	return p.Cancelled == nil && p.Review == nil &&
		len(p.ItemReviews) == 0 && len(p.ItemRatings) == 0
}

// ProductReview is one item review collected from past orders
type ProductReview struct {
	Review      string    `json:"review"`
	Rating      *int      `json:"rating,omitempty"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	OrderID     string    `json:"orderId"`
	OrderDate   time.Time `json:"orderDate"`
	PickupDate  string    `json:"pickupDate,omitempty"`
	PickupTime  string    `json:"pickupTime,omitempty"`
}

// OrderService implements the order lifecycle
type OrderService struct {
	orders   *repository.Repository[models.Order]
	pickup   *PickupService
	notifier Notifier
	now      func() time.Time
	newCode  func() (string, error)
	pending  sync.WaitGroup
}

var orderServiceInstance *OrderService

// NewOrderService creates an order service. A nil notifier disables
// notifications.
func NewOrderService(orders *repository.Repository[models.Order], pickup *PickupService, notifier Notifier) *OrderService {
	return &OrderService{
		orders:   orders,
		pickup:   pickup,
		notifier: notifier,
		now:      time.Now,
		newCode:  utils.NewOrderCode,
	}
}

// InitOrderService creates the order service and makes it the global instance
func InitOrderService(orders *repository.Repository[models.Order], pickup *PickupService, notifier Notifier) *OrderService {
	orderServiceInstance = NewOrderService(orders, pickup, notifier)
	return orderServiceInstance
}

// GetOrderService returns the initialized order service
func GetOrderService() *OrderService {
	return orderServiceInstance
}

// SetOrderService sets the order service instance (primarily for testing)
func SetOrderService(service *OrderService) {
	orderServiceInstance = service
}

// Wait blocks until notifications for every created order have finished
func (s *OrderService) Wait() {
	s.pending.Wait()
}

// CreateOrder validates and stores a new order, then notifies the customer
// and the owner in the background
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := s.validateOrder(ctx, &in); err != nil {
		return nil, err
	}

	existing, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	id, err := s.uniqueCode(existing)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		ID:            id,
		Items:         in.Items,
		CustomerName:  in.CustomerName,
		Phone:         in.Phone,
		Total:         in.Total,
		ComputedTotal: cart.Total(in.Items),
		Date:          s.now().UTC(),
		PaymentMethod: in.PaymentMethod,
		PickupDate:    in.PickupDate,
		PickupTime:    in.PickupTime,
	}
	if order.TotalMismatch() {
		log.Printf("Order %s total mismatch: submitted %.2f, computed %.2f", order.ID, order.Total, order.ComputedTotal)
	}

	if err := s.orders.Put(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if s.notifier != nil {
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			Dispatch(context.WithoutCancel(ctx), s.notifier, order)
		}()
	}

	return &order, nil
}

func (s *OrderService) validateOrder(ctx context.Context, in *CreateOrderInput) error {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Phone = strings.TrimSpace(in.Phone)

	switch {
	case in.CustomerName == "":
		return invalid("Missing required field: customerName")
	case in.Phone == "":
		return invalid("Missing required field: phone")
	case len(in.Items) == 0:
		return invalid("Items array is required and must not be empty")
	case in.Total <= 0:
		return invalid("Missing required field: total")
	}

	for i, item := range in.Items {
		if item.Quantity <= 0 {
			return invalid("Item %d must have a quantity greater than zero", i)
		}
		if item.Product.ID == "" {
			return invalid("Item %d is missing its product", i)
		}
	}

	switch in.PaymentMethod {
	case "":
		in.PaymentMethod = models.PaymentCash
	case models.PaymentCash, models.PaymentVenmo:
	default:
		return invalid("Unknown payment method %q", in.PaymentMethod)
	}

	if in.PickupDate == "" {
		if in.PickupTime != "" {
			return invalid("pickupTime requires a pickupDate")
		}
		return nil
	}
	return s.pickup.ValidatePickup(ctx, in.PickupDate, in.PickupTime)
}

func (s *OrderService) uniqueCode(existing []models.Order) (string, error) {
	taken := make(map[string]bool, len(existing))
	for _, o := range existing {
		taken[o.ID] = true
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return "", err
		}
		if !taken[code] {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique order code after %d attempts", maxCodeAttempts)
}

// ListOrders returns orders newest first, optionally only those whose
// phone matches by digits
func (s *OrderService) ListOrders(ctx context.Context, phone string) ([]models.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	if strings.TrimSpace(phone) != "" {
		filtered := make([]models.Order, 0, len(orders))
		for _, o := range orders {
			if utils.SamePhone(o.Phone, phone) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Date.After(orders[j].Date)
	})
	return orders, nil
}

// GetOrder returns one order
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.Get(ctx, id)
}

// DeleteOrder removes an order
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// SetCompleted marks an order completed or reopens it
func (s *OrderService) SetCompleted(ctx context.Context, id string, completed bool) (*models.Order, error) {
	return s.orders.Patch(ctx, id, func(o *models.Order) error {
		s.setCompleted(o, completed)
		return nil
	})
}

// ToggleCompleted flips the completed flag
func (s *OrderService) ToggleCompleted(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.Patch(ctx, id, func(o *models.Order) error {
		s.setCompleted(o, !o.Completed)
		return nil
	})
}

// CancelOrder marks an order cancelled. There is no way back.
func (s *OrderService) CancelOrder(ctx context.Context, id string) (*models.Order, error) {
	cancelled := true
	return s.UpdateOrder(ctx, id, OrderPatch{Cancelled: &cancelled})
}

// UpdateOrder applies a patch. Review text and ratings for items that do
// not exist, and ratings outside 1-5, are ignored.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, patch OrderPatch) (*models.Order, error) {
	if patch.Cancelled != nil && !*patch.Cancelled {
		return nil, invalid("A cancelled order cannot be reopened")
	}
	if patch.empty() {
		return s.orders.Get(ctx, id)
	}

	return s.orders.Patch(ctx, id, func(o *models.Order) error {
		if patch.Cancelled != nil && !o.Cancelled {
			now := s.now().UTC()
			o.Cancelled = true
			o.CancelledDate = &now
		}
		if patch.Review != nil {
			o.Review = *patch.Review
		}
		for key, value := range patch.ItemReviews {
			text, ok := value.(string)
			i, valid := itemIndex(key, len(o.Items))
			if ok && valid {
				o.Items[i].Review = text
			}
		}
		for key, value := range patch.ItemRatings {
			rating, ok := parseRating(value)
			i, valid := itemIndex(key, len(o.Items))
			if ok && valid {
				o.Items[i].Rating = &rating
			}
		}
		return nil
	})
}

func (s *OrderService) setCompleted(o *models.Order, completed bool) {
	o.Completed = completed
	if completed {
		now := s.now().UTC()
		o.CompletedDate = &now
	} else {
		o.CompletedDate = nil
	}
}

func itemIndex(key string, n int) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// parseRating accepts whole numbers from 1 to 5, sent either as JSON
// numbers or numeric strings
func parseRating(value any) (int, bool) {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || f != math.Trunc(f) || f < 1 || f > 5 {
		return 0, false
	}
	return int(f), true
}

// ProductReviews collects reviews and ratings left for a product across
// all orders, newest order first
func (s *OrderService) ProductReviews(ctx context.Context, productID string) ([]ProductReview, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	reviews := []ProductReview{}
	for _, o := range orders {
		for _, item := range o.Items {
			if item.Product.ID != productID {
				continue
			}
			if strings.TrimSpace(item.Review) == "" && item.Rating == nil {
				continue
			}
			reviews = append(reviews, ProductReview{
				Review:      item.Review,
				Rating:      item.Rating,
				ProductID:   item.Product.ID,
				ProductName: item.Product.Name,
				OrderID:     o.ID,
				OrderDate:   o.Date,
				PickupDate:  o.PickupDate,
				PickupTime:  o.PickupTime,
			})
		}
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].OrderDate.After(reviews[j].OrderDate)
	})
	return reviews, nil
}
