package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ebiblio/storefront/internal/config"
)

// Module exposes the notifier implementation to fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) Notifier {
	if p.Config.SMTPHost == "" {
		return NewNopNotifier(p.Logger)
	}
	return NewSMTPNotifier(p.Config.SMTPHost, p.Config.SMTPPort, p.Config.SMTPUser, p.Config.SMTPPass, p.Config.MailFrom, p.Logger)
}
