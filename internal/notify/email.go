package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"go.uber.org/zap"
)

// AddressBook resolves a user id to an email address. Users without an
// address are skipped silently; in-app delivery still happens via StoreSink.
type AddressBook interface {
	EmailFor(userID int64) (string, bool)
}

// EmailConfig holds SMTP settings for the email sink
type EmailConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// EmailSender delivers notifications by email. It is a best-effort sink:
// delivery errors are returned to the dispatcher which logs them.
type EmailSender struct {
	cfg       EmailConfig
	addresses AddressBook
	logger    *zap.Logger

	// send is swappable in tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailSender creates a new email sink
func NewEmailSender(cfg EmailConfig, addresses AddressBook, logger *zap.Logger) *EmailSender {
	return &EmailSender{
		cfg:       cfg,
		addresses: addresses,
		logger:    logger,
		send:      smtp.SendMail,
	}
}

// Notify sends the notification as a plain-text email
func (s *EmailSender) Notify(ctx context.Context, n *entity.Notification) error {
	to, ok := s.addresses.EmailFor(n.UserID)
	if !ok {
		s.logger.Debug("No email address for user, skipping email delivery",
			zap.Int64("user_id", n.UserID))
		return nil
	}

	msg := s.buildMessage(to, n)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	s.logger.Info("Notification email sent",
		zap.Int64("user_id", n.UserID),
		zap.Int64("plan_id", n.EventPlanID),
		zap.String("type", n.Type))
	return nil
}

func (s *EmailSender) buildMessage(to string, n *entity.Notification) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", n.Title)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(n.Message)
	b.WriteString("\r\n\r\n---\r\nCampus Event Approval Service\r\n")
	return []byte(b.String())
}

// StaticAddressBook is a config-backed user id -> email table
type StaticAddressBook struct {
	addresses map[int64]string
}

// NewStaticAddressBook creates an address book from a user id -> email map
func NewStaticAddressBook(addresses map[int64]string) *StaticAddressBook {
	return &StaticAddressBook{addresses: addresses}
}

// EmailFor returns the address for a user id
func (s *StaticAddressBook) EmailFor(userID int64) (string, bool) {
	addr, ok := s.addresses[userID]
	return addr, ok
}
