package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ivangarciagi10/email-servicev2/internal/domain"
	apperrors "github.com/ivangarciagi10/email-servicev2/pkg/errors"
)

// AdvisorSource yields the advisor assigned to a customer.
type AdvisorSource interface {
	Resolve(ctx context.Context, customerID int64) (*domain.Advisor, error)
}

// Mailer sends the two draft order notifications.
type Mailer interface {
	SendCustomerConfirmation(ctx context.Context, order *domain.DraftOrder, customer *domain.Customer) error
	SendAdvisorNotification(ctx context.Context, order *domain.DraftOrder, customer *domain.Customer, advisor *domain.Advisor) error
}

// DraftOrderProcessor runs the processing pipeline for one webhook delivery:
// resolve the customer, resolve the advisor, send both emails. Any error
// leaves partial state (attempt count, already-sent emails) in place so a
// retried delivery picks up where this one failed.
type DraftOrderProcessor struct {
	advisors AdvisorSource
	mailer   Mailer
	logger   *zap.Logger
}

// NewDraftOrderProcessor creates a new draft order processor
func NewDraftOrderProcessor(advisors AdvisorSource, mailer Mailer, logger *zap.Logger) *DraftOrderProcessor {
	return &DraftOrderProcessor{
		advisors: advisors,
		mailer:   mailer,
		logger:   logger,
	}
}

// Process handles one draft order end to end.
func (p *DraftOrderProcessor) Process(ctx context.Context, order *domain.DraftOrder) error {
	customer := order.Customer
	switch {
	case customer == nil && order.Email != "":
		// The payload carried only a bare email; synthesize a placeholder so
		// the customer confirmation can still go out.
		p.logger.Info("No customer in payload, using placeholder",
			zap.Int64("draft_order_id", order.ID),
			zap.String("email", order.Email),
		)
		customer = domain.PlaceholderCustomer(order.Email)
	case customer != nil && customer.Email == "" && order.Email != "":
		// An embedded customer without an email still identifies the buyer;
		// the order-level email fills the gap.
		withEmail := *customer
		withEmail.Email = order.Email
		customer = &withEmail
	}
	if customer == nil {
		// No customer and no email at all. An embedded customer with no
		// usable email is not an error: the confirmation send skips it and
		// the advisor is still notified.
		return &apperrors.ErrNotFound{Resource: "cliente", ID: strconv.FormatInt(order.ID, 10)}
	}

	p.logger.Info("Processing draft order",
		zap.Int64("draft_order_id", order.ID),
		zap.String("customer", customer.FullName()),
		zap.String("customer_email", customer.Email),
	)

	advisor, err := p.advisors.Resolve(ctx, customer.ID)
	if err != nil {
		return fmt.Errorf("resolve advisor: %w", err)
	}

	// Sequential on purpose: a failure after the first send must leave the
	// sent-email ledger in a state where a retry skips only the first one.
	if err := p.mailer.SendCustomerConfirmation(ctx, order, customer); err != nil {
		return fmt.Errorf("send customer confirmation: %w", err)
	}
	if err := p.mailer.SendAdvisorNotification(ctx, order, customer, advisor); err != nil {
		return fmt.Errorf("send advisor notification: %w", err)
	}

	p.logger.Info("Draft order emails dispatched",
		zap.Int64("draft_order_id", order.ID),
		zap.String("advisor_email", advisor.Email),
	)
	return nil
}
