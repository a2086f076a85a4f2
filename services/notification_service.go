package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/kendall-kelly/bakery-api/models"
	"github.com/kendall-kelly/bakery-api/schedule"
	"github.com/kendall-kelly/bakery-api/utils"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"
)

// NotifyTimeout bounds how long Dispatch waits on the senders
const NotifyTimeout = 15 * time.Second

// SMSSender delivers a text message to an E.164 number
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// Mailer delivers a plain text e-mail
type Mailer interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

// TwilioSMSSender sends SMS through the Twilio REST API
type TwilioSMSSender struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSMSSender creates a sender for the given account and number
func NewTwilioSMSSender(accountSID, authToken, from string) *TwilioSMSSender {
	return &TwilioSMSSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

// SendSMS sends body to the number to
func (s *TwilioSMSSender) SendSMS(ctx context.Context, to, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	err := withContext(ctx, func() error {
		_, err := s.client.Api.CreateMessage(params)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", to, err)
	}
	return nil
}

// SMTPMailer sends e-mail through an SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer. The username doubles as the sender
// address unless it is empty.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	if from == "" {
		from = username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendMail sends a plain text message
func (m *SMTPMailer) SendMail(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := withContext(ctx, func() error { return m.dialer.DialAndSend(msg) }); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// withContext runs send and stops waiting once ctx is done. Neither the
// Twilio client nor the SMTP dialer accepts a context, so an abandoned
// send finishes in the background.
func withContext(ctx context.Context, send func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- send() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Notifier is told about every placed order
type Notifier interface {
	NotifyCustomer(ctx context.Context, order models.Order) error
	NotifyOwner(ctx context.Context, order models.Order) error
}

// NotificationService formats order messages and hands them to the
// configured senders. A nil sender disables that channel.
type NotificationService struct {
	sms        SMSSender
	mailer     Mailer
	ownerPhone string
	ownerEmail string
	loc        *time.Location
}

// NewNotificationService creates the dispatcher
func NewNotificationService(sms SMSSender, mailer Mailer, ownerPhone, ownerEmail string, loc *time.Location) *NotificationService {
	if loc == nil {
		loc = time.Local
	}
	return &NotificationService{
		sms:        sms,
		mailer:     mailer,
		ownerPhone: ownerPhone,
		ownerEmail: ownerEmail,
		loc:        loc,
	}
}

// NotifyCustomer texts the order confirmation to the customer
func (n *NotificationService) NotifyCustomer(ctx context.Context, order models.Order) error {
	if n.sms == nil {
		log.Printf("SMS not configured, skipping confirmation for order %s", order.ID)
		return nil
	}
	return n.sms.SendSMS(ctx, utils.FormatE164(order.Phone), CustomerMessage(order))
}

// NotifyOwner texts and e-mails the new order alert to the store owner
func (n *NotificationService) NotifyOwner(ctx context.Context, order models.Order) error {
	var errs []error
	body := OwnerMessage(order, n.loc)

	switch {
	case n.sms == nil:
		log.Printf("SMS not configured, skipping owner alert for order %s", order.ID)
	case n.ownerPhone == "":
		log.Printf("Store owner phone not configured, skipping owner alert for order %s", order.ID)
	default:
		if err := n.sms.SendSMS(ctx, utils.FormatE164(n.ownerPhone), body); err != nil {
			errs = append(errs, err)
		}
	}

	if n.mailer != nil && n.ownerEmail != "" {
		subject := fmt.Sprintf("New order %s from %s", order.ID, order.CustomerName)
		if err := n.mailer.SendMail(ctx, n.ownerEmail, subject, body); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Dispatch sends both notifications concurrently and waits for them.
// Failures are logged and never returned.
func Dispatch(ctx context.Context, notifier Notifier, order models.Order) {
	ctx, cancel := context.WithTimeout(ctx, NotifyTimeout)
	defer cancel()

	var wg sync.WaitGroup
	send := func(name string, fn func(context.Context, models.Order) error) {
		defer wg.Done()
		if err := fn(ctx, order); err != nil {
			log.Printf("Failed to send %s notification for order %s: %v", name, order.ID, err)
		}
	}

	wg.Add(2)
	go send("customer", notifier.NotifyCustomer)
	go send("owner", notifier.NotifyOwner)
	wg.Wait()
}

// CustomerMessage is the SMS confirmation sent to the customer
func CustomerMessage(order models.Order) string {
	return fmt.Sprintf(`Order Confirmed!

Order #: %s
Items: %s
Total: $%.2f
Payment: %s
Pickup: %s

Thank you for your order!`,
		order.ID, itemSummary(order.Items), order.Total, order.PaymentMethod.Label(), pickupSummary(order))
}

// OwnerMessage is the alert sent to the store owner
func OwnerMessage(order models.Order, loc *time.Location) string {
	return fmt.Sprintf(`New Order Received!

Order #: %s
Customer: %s
Phone: %s
Items: %s
Total: $%.2f
Payment: %s
Pickup: %s

Order placed: %s`,
		order.ID, order.CustomerName, order.Phone, itemSummary(order.Items), order.Total,
		order.PaymentMethod.Label(), pickupSummary(order), order.Date.In(loc).Format("1/2/2006, 3:04:05 PM"))
}

func itemSummary(items []models.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Product.Name))
	}
	return strings.Join(parts, ", ")
}

func pickupSummary(order models.Order) string {
	if !order.HasPickup() {
		return "TBD"
	}
	return fmt.Sprintf("%s at %s", schedule.DisplayDate(order.PickupDate), order.PickupTime)
}
