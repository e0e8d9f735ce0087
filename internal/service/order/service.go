package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"liquorhole/internal/domain"
	"liquorhole/internal/mailer"
)

// ErrEmailFailed signals that the order was committed but one of the
// notification emails was not delivered. The order stays pending; the admin
// dashboard is the recovery path.
var ErrEmailFailed = errors.New("order saved but email delivery failed")

type orderRepo interface {
	Insert(ctx context.Context, o domain.Order) (*domain.Order, error)
}

// Service is the order submission boundary: validate, persist as pending,
// then best-effort notify the operator and the customer.
type Service struct {
	repo           orderRepo
	mailer         mailer.Mailer
	operatorEmail  string
	fromName       string
	whatsAppNumber string
	logger         *log.Logger
}

func New(repo orderRepo, m mailer.Mailer, operatorEmail, whatsAppNumber string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:           repo,
		mailer:         m,
		operatorEmail:  operatorEmail,
		fromName:       "Liquor Hole",
		whatsAppNumber: whatsAppNumber,
		logger:         logger,
	}
}

// SubmitInput is the checkout payload.
type SubmitInput struct {
	CustomerName string
	PhoneNumber  string
	Email        string
	Address      string
	Notes        string
	Items        []domain.OrderItem
	Total        decimal.Decimal
}

// Result reports a committed order.
type Result struct {
	OrderID     string `json:"orderId"`
	WhatsAppURL string `json:"whatsappUrl,omitempty"`
}

// Submit validates the payload, persists the order with status pending and
// sends the two notification emails. Validation failures abort before any
// write. Email failure after the insert returns ErrEmailFailed together with
// the result carrying the committed order id.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	saved, err := s.repo.Insert(ctx, domain.Order{
		CustomerName: strings.TrimSpace(in.CustomerName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Email:        strings.TrimSpace(in.Email),
		Address:      strings.TrimSpace(in.Address),
		Notes:        strings.TrimSpace(in.Notes),
		Items:        in.Items,
		TotalPrice:   in.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	summary := FormatItemsText(in.Items, in.Total)
	result := &Result{
		OrderID:     saved.ID,
		WhatsAppURL: s.whatsAppLink(in, summary),
	}

	if err := s.notify(ctx, in, summary); err != nil {
		s.logger.Printf("order %s: email delivery failed: %v", saved.ID, err)
		return result, ErrEmailFailed
	}
	return result, nil
}

func validate(in SubmitInput) error {
	switch {
	case strings.TrimSpace(in.CustomerName) == "":
		return fmt.Errorf("%w: customer name required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.PhoneNumber) == "":
		return fmt.Errorf("%w: phone number required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Email) == "":
		return fmt.Errorf("%w: email required", domain.ErrInvalidInput)
	case strings.TrimSpace(in.Address) == "":
		return fmt.Errorf("%w: address required", domain.ErrInvalidInput)
	case len(in.Items) == 0:
		return fmt.Errorf("%w: cart is empty", domain.ErrInvalidInput)
	}
	return nil
}

func (s *Service) notify(ctx context.Context, in SubmitInput, summary string) error {
	operator := mailer.Message{
		To:      s.operatorEmail,
		Subject: "New Order Received",
		Body: fmt.Sprintf("Order from: %s\nPhone: %s\nEmail: %s\nAddress: %s\nNote: %s\n\n%s",
			in.CustomerName, in.PhoneNumber, in.Email, in.Address, in.Notes, summary),
	}
	if err := s.mailer.Send(ctx, operator); err != nil {
		return err
	}

	customer := mailer.Message{
		To:      in.Email,
		Subject: "Your Liquor Hole Order Confirmation",
		Body: fmt.Sprintf("Hi %s,\n\nThank you for your order!\n\nHere are the details:\n%s\nWe'll contact you soon for delivery.\n\nCheers,\n%s",
			in.CustomerName, summary, s.fromName),
	}
	return s.mailer.Send(ctx, customer)
}

// whatsAppLink builds the prefilled wa.me deep link for manual follow-up.
// Empty when no operator number is configured.
func (s *Service) whatsAppLink(in SubmitInput, summary string) string {
	if s.whatsAppNumber == "" {
		return ""
	}
	text := fmt.Sprintf("New order from %s (%s)\n%s", in.CustomerName, in.PhoneNumber, summary)
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.whatsAppNumber, url.QueryEscape(text))
}

// FormatItemsText renders the human-readable item/total summary used in both
// emails and the WhatsApp link.
func FormatItemsText(items []domain.OrderItem, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("Items:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s x%d ($%s)\n", it.Name, it.Quantity, it.LineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n", total.StringFixed(2))
	return b.String()
}
