package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kendall-kelly/bakery-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	to, subject, body string
}

// fakeSender records SMS and e-mail sends
type fakeSender struct {
	mu   sync.Mutex
	sms  []sentMessage
	mail []sentMessage
	err  error
}

func (f *fakeSender) SendSMS(ctx context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sms = append(f.sms, sentMessage{to: to, body: body})
	return f.err
}

func (f *fakeSender) SendMail(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mail = append(f.mail, sentMessage{to: to, subject: subject, body: body})
	return f.err
}

func testOrder() models.Order {
	return models.Order{
		ID:           "K7M2QX",
		CustomerName: "Jane Doe",
		Phone:        "(555) 123-4567",
		Items: []models.CartItem{
			{Product: sourdough, Quantity: 2},
			{Product: cookies, Quantity: 1},
		},
		Total:         32,
		Date:          time.Date(2025, 12, 20, 21, 5, 0, 0, time.UTC),
		PaymentMethod: models.PaymentVenmo,
		PickupDate:    "2025-12-22",
		PickupTime:    "10:30 AM",
	}
}

func TestCustomerMessage(t *testing.T) {
	msg := CustomerMessage(testOrder())

	assert.Contains(t, msg, "Order #: K7M2QX")
	assert.Contains(t, msg, "Items: 2x Classic Sourdough, 1x Cookies")
	assert.Contains(t, msg, "Total: $32.00")
	assert.Contains(t, msg, "Payment: Venmo (pre-pay)")
	assert.Contains(t, msg, "Pickup: Mon, Dec 22 at 10:30 AM")
}

func TestCustomerMessage_NoPickup(t *testing.T) {
	order := testOrder()
	order.PickupDate = ""
	order.PickupTime = ""
	order.PaymentMethod = models.PaymentCash

	msg := CustomerMessage(order)
	assert.Contains(t, msg, "Pickup: TBD")
	assert.Contains(t, msg, "Payment: Cash (at pickup)")
}

func TestOwnerMessage(t *testing.T) {
	msg := OwnerMessage(testOrder(), central)

	assert.Contains(t, msg, "Customer: Jane Doe")
	assert.Contains(t, msg, "Phone: (555) 123-4567")
	assert.Contains(t, msg, "Order placed: 12/20/2025, 3:05:00 PM")
}

func TestNotifyCustomer(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotificationService(sender, nil, "", "", central)

	require.NoError(t, n.NotifyCustomer(context.Background(), testOrder()))
	require.Len(t, sender.sms, 1)
	assert.Equal(t, "+15551234567", sender.sms[0].to)
}

func TestNotifyOwner_SMSAndMail(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotificationService(sender, sender, "555.000.1111", "owner@example.com", central)

	require.NoError(t, n.NotifyOwner(context.Background(), testOrder()))
	require.Len(t, sender.sms, 1)
	assert.Equal(t, "+15550001111", sender.sms[0].to)
	require.Len(t, sender.mail, 1)
	assert.Equal(t, "owner@example.com", sender.mail[0].to)
	assert.Equal(t, "New order K7M2QX from Jane Doe", sender.mail[0].subject)
}

func TestNotify_SkipsUnconfiguredChannels(t *testing.T) {
	n := NewNotificationService(nil, nil, "", "", nil)

	assert.NoError(t, n.NotifyCustomer(context.Background(), testOrder()))
	assert.NoError(t, n.NotifyOwner(context.Background(), testOrder()))

	sender := &fakeSender{}
	n = NewNotificationService(sender, nil, "", "", nil)
	assert.NoError(t, n.NotifyOwner(context.Background(), testOrder()))
	assert.Empty(t, sender.sms, "No owner phone means no owner SMS")
}

func TestNotifyOwner_JoinsErrors(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay down")}
	n := NewNotificationService(sender, sender, "5550001111", "owner@example.com", central)

	err := n.NotifyOwner(context.Background(), testOrder())
	require.Error(t, err)
	assert.Len(t, sender.sms, 1)
	assert.Len(t, sender.mail, 1, "A failed SMS does not stop the e-mail")
}

func TestDispatch_SendsBoth(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("fail")}

	Dispatch(context.Background(), notifier, testOrder())

	customers, owners := notifier.counts()
	assert.Equal(t, 1, customers)
	assert.Equal(t, 1, owners)
}

func TestWithContext_StopsWaitingOnHungSend(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := withContext(ctx, func() error {
		<-release
		return nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)

	assert.EqualError(t, withContext(context.Background(), func() error { return errors.New("rejected") }), "rejected")
}

func TestSenders_HonorCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mailer := NewSMTPMailer("127.0.0.1", 1, "shop@example.com", "secret", "")
	assert.ErrorIs(t, mailer.SendMail(ctx, "owner@example.com", "New order", "body"), context.Canceled)

	sms := NewTwilioSMSSender("AC123", "token", "+15550001111")
	assert.ErrorIs(t, sms.SendSMS(ctx, "+15550002222", "body"), context.Canceled)
}
