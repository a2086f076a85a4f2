package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/repository"
	"github.com/kendall-kelly/bakery-api/schedule"
	"github.com/kendall-kelly/bakery-api/storage"
)

var central = time.FixedZone("CST", -6*60*60)

// Saturday 2025-12-20, 3pm local
var testNow = time.Date(2025, 12, 20, 15, 0, 0, 0, central)

func testScheduler() *schedule.Scheduler {
	return schedule.New(central, schedule.WithClock(func() time.Time { return testNow }))
}

// recordingNotifier remembers every notification and can be told to fail
type recordingNotifier struct {
	mu        sync.Mutex
	customers []string
	owners    []string
	err       error
}

func (r *recordingNotifier) NotifyCustomer(ctx context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = append(r.customers, order.ID)
	return r.err
}

func (r *recordingNotifier) NotifyOwner(ctx context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners = append(r.owners, order.ID)
	return r.err
}

func (r *recordingNotifier) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.customers), len(r.owners)
}

// failingStore fails every call
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("store offline") }
func (failingStore) Set(context.Context, string, []byte) error   { return errors.New("store offline") }
func (failingStore) Ping(context.Context) error                  { return errors.New("store offline") }

type orderFixture struct {
	store    *storage.MemoryStore
	service  *OrderService
	pickup   *PickupService
	notifier *recordingNotifier
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	store := storage.NewMemoryStore()
	pickup := NewPickupService(repository.NewBlockedDates(store), testScheduler())
	notifier := &recordingNotifier{}
	service := NewOrderService(repository.NewOrderRepository(store), pickup, notifier)
	service.now = func() time.Time { return testNow }

	t.Cleanup(service.Wait)
	return &orderFixture{store: store, service: service, pickup: pickup, notifier: notifier}
}

var (
	sourdough = models.Product{ID: "classic-sourdough", Name: "Classic Sourdough", Price: 10, Category: "Sourdough Bread", InStock: true}
	cookies   = models.Product{ID: "cookies", Name: "Cookies", Price: 12, Category: "Sweets", InStock: true}
)

func validOrderInput() CreateOrderInput {
	return CreateOrderInput{
		CustomerName: "Jane Doe",
		Phone:        "+1 (555) 123-4567",
		Items: []models.CartItem{
			{Product: sourdough, Quantity: 2, Cut: true},
			{Product: cookies, Quantity: 1},
		},
		Total:      34,
		PickupDate: "2025-12-22",
		PickupTime: "10:00 AM",
	}
}
