package service

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/ivangarciagi10/email-servicev2/internal/config"
	"github.com/ivangarciagi10/email-servicev2/internal/domain"
	apperrors "github.com/ivangarciagi10/email-servicev2/pkg/errors"
)

const (
	customerEmailSubject = "Cotización Creada Exitosamente"
	advisorEmailSubject  = "Nueva Cotización Generada por Cliente"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// mailSender abstracts the SendGrid client so tests can fake delivery.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// EmailService sends the two transactional emails for a draft order. A
// per-recipient sent set prevents double-sends when a partially failed
// delivery is retried; it is cleared hourly, independently of the processing
// ledger. Without an API key every send is simulated and still recorded as
// sent, which is the intended degraded mode for credential-less environments.
type EmailService struct {
	sender    mailSender
	fromEmail string
	fromName  string

	mu   sync.Mutex
	sent map[string]struct{}

	logger *zap.Logger
}

// NewEmailService creates a new email service
func NewEmailService(cfg config.SendGridConfig, logger *zap.Logger) *EmailService {
	var sender mailSender
	if cfg.APIKey != "" {
		sender = sendgrid.NewSendClient(cfg.APIKey)
	} else {
		logger.Warn("SENDGRID_API_KEY is not configured, emails will be simulated")
	}

	return &EmailService{
		sender:    sender,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		sent:      make(map[string]struct{}),
		logger:    logger,
	}
}

// SendCustomerConfirmation sends the quote confirmation to the customer.
func (s *EmailService) SendCustomerConfirmation(ctx context.Context, order *domain.DraftOrder, customer *domain.Customer) error {
	key := fmt.Sprintf("customer_%d_%s", order.ID, customer.Email)
	text := customerEmailText(order, customer)
	html := customerEmailHTML(order, customer)
	return s.send(ctx, key, customer.Email, customer.FullName(), customerEmailSubject, text, html)
}

// SendAdvisorNotification notifies the assigned advisor about the new quote.
func (s *EmailService) SendAdvisorNotification(ctx context.Context, order *domain.DraftOrder, customer *domain.Customer, advisor *domain.Advisor) error {
	key := fmt.Sprintf("advisor_%d_%s", order.ID, advisor.Email)
	text := advisorEmailText(order, customer, advisor)
	html := advisorEmailHTML(order, customer, advisor)
	return s.send(ctx, key, advisor.Email, advisor.FullName(), advisorEmailSubject, text, html)
}

func (s *EmailService) send(ctx context.Context, key, to, toName, subject, text, html string) error {
	if !emailPattern.MatchString(to) {
		// An unusable recipient address is skipped, not failed: retrying the
		// delivery would never fix it.
		s.logger.Error("Recipient email is invalid, skipping send", zap.String("to", to))
		return nil
	}

	if s.alreadySent(key) {
		s.logger.Info("Email already sent, skipping", zap.String("key", key))
		return nil
	}

	if s.sender == nil {
		s.logger.Info("Simulating email send",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		s.markSent(key)
		return nil
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromEmail),
		subject,
		mail.NewEmail(toName, to),
		text,
		html,
	)

	resp, err := s.sender.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", to, err)
	}
	if resp.StatusCode >= 300 {
		return &apperrors.ErrTransport{Op: "sendgrid send", Status: resp.StatusCode, Message: resp.Body}
	}

	s.markSent(key)
	s.logger.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}

func (s *EmailService) alreadySent(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sent[key]
	return ok
}

func (s *EmailService) markSent(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[key] = struct{}{}
}

// Reset clears the sent-email set in one atomic step.
func (s *EmailService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = make(map[string]struct{})
}

// RunResetLoop clears the sent-email set every interval until ctx is
// cancelled. No coordination with the processing ledger is needed.
func (s *EmailService) RunResetLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Reset()
			s.logger.Info("Sent email cache cleared")
		}
	}
}
