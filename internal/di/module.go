package di

import (
	"go.uber.org/fx"

	"github.com/ebiblio/storefront/internal/adapter/mailer"
	"github.com/ebiblio/storefront/internal/adapter/payment"
	"github.com/ebiblio/storefront/internal/app"
	"github.com/ebiblio/storefront/internal/config"
	"github.com/ebiblio/storefront/internal/logger"
	"github.com/ebiblio/storefront/internal/pkg/auth"
	"github.com/ebiblio/storefront/internal/server/http/handlers"
	"github.com/ebiblio/storefront/internal/server/http/router"
	"github.com/ebiblio/storefront/internal/storage/postgres"
	"github.com/ebiblio/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		mailer.Module,
		usecase.Module,
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
