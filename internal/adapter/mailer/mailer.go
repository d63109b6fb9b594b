package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// Notifier delivers customer-facing notifications. All callers treat
// delivery as best-effort; a failed send never fails the triggering
// operation.
type Notifier interface {
	SendReceipt(ctx context.Context, order model.Order, to string) error
	SendTemporaryPassword(ctx context.Context, to, password string) error
}

// SMTPNotifier sends plain-text order receipts over SMTP.
type SMTPNotifier struct {
	addr   string
	auth   smtp.Auth
	from   string
	logger *slog.Logger
}

// NewSMTPNotifier builds a notifier for the given SMTP endpoint.
func NewSMTPNotifier(host string, port int, user, pass, from string, logger *slog.Logger) *SMTPNotifier {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	if from == "" {
		from = user
	}
	return &SMTPNotifier{
		addr:   fmt.Sprintf("%s:%d", host, port),
		auth:   auth,
		from:   from,
		logger: logger,
	}
}

// SendReceipt emails the order confirmation.
func (n *SMTPNotifier) SendReceipt(_ context.Context, order model.Order, to string) error {
	if to == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: e-Biblio <%s>\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: Votre commande e-Biblio #%s\r\n", order.Number)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	b.WriteString("Bonjour,\r\n\r\n")
	fmt.Fprintf(&b, "Merci pour votre commande #%s.\r\n\r\nDétail :\r\n", order.Number)
	for _, line := range order.Lines {
		title := line.Book.Title
		if title == "" {
			title = "Article"
		}
		fmt.Fprintf(&b, "- %s x%d : %.2f CAD\r\n", title, line.Quantity, line.Price)
	}
	fmt.Fprintf(&b, "\r\nTotal : %.2f CAD\r\n", order.TotalAmount)
	fmt.Fprintf(&b, "Statut : %s\r\n\r\ne-Biblio\r\n", order.Status)

	return smtp.SendMail(n.addr, n.auth, n.from, []string{to}, []byte(b.String()))
}

// SendTemporaryPassword emails the credentials of an account opened by an
// administrator. The recipient is expected to change the password on first
// login.
func (n *SMTPNotifier) SendTemporaryPassword(_ context.Context, to, password string) error {
	if to == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: e-Biblio <%s>\r\n", n.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	b.WriteString("Subject: Votre compte e-Biblio\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	b.WriteString("Bonjour,\r\n\r\n")
	b.WriteString("Un compte e-Biblio a été créé pour vous.\r\n\r\n")
	fmt.Fprintf(&b, "Mot de passe provisoire : %s\r\n\r\n", password)
	b.WriteString("Merci de le changer dès votre première connexion.\r\n\r\ne-Biblio\r\n")

	return smtp.SendMail(n.addr, n.auth, n.from, []string{to}, []byte(b.String()))
}

// NopNotifier is used when no SMTP endpoint is configured; it only logs.
type NopNotifier struct {
	logger *slog.Logger
}

// NewNopNotifier constructs the logging fallback.
func NewNopNotifier(logger *slog.Logger) *NopNotifier {
	return &NopNotifier{logger: logger}
}

// SendReceipt records that a receipt would have been sent.
func (n *NopNotifier) SendReceipt(_ context.Context, order model.Order, to string) error {
	n.logger.Info("receipt delivery skipped, smtp not configured",
		slog.String("order", order.Number), slog.String("to", to))
	return nil
}

// SendTemporaryPassword records that credentials would have been sent. The
// password itself is never logged.
func (n *NopNotifier) SendTemporaryPassword(_ context.Context, to, _ string) error {
	n.logger.Info("temporary password delivery skipped, smtp not configured",
		slog.String("to", to))
	return nil
}
