package router

import (
	"github.com/viorex/viorex-exchange/internal/config"
	"github.com/viorex/viorex-exchange/internal/market"
	"github.com/viorex/viorex-exchange/internal/network/handlers"
	"github.com/viorex/viorex-exchange/internal/network/middleware"
	"github.com/viorex/viorex-exchange/internal/network/stream"
	"github.com/viorex/viorex-exchange/internal/notifier"
	"github.com/viorex/viorex-exchange/internal/services"
	"github.com/viorex/viorex-exchange/internal/storage"
	"github.com/go-chi/chi/v5"

	"github.com/go-chi/jwtauth/v5"
)

type Router struct {
	Config        config.Config
	Indentity     services.IdentityService
	Trade         services.TradeService
	Market        *market.Table
	Notifications *notifier.Hub
	Stream        *stream.Hub
}

func NewRouter(config config.Config, storage storage.AccountStorage, table *market.Table, notifications *notifier.Hub, marketStream *stream.Hub) *Router {
	return &Router{
		Config:        config,
		Indentity:     services.NewIdentity(config, storage),
		Trade:         services.NewTrade(config, storage, table),
		Market:        table,
		Notifications: notifications,
		Stream:        marketStream,
	}
}

func (router *Router) HandleRouter() chi.Router {
	ja := router.Indentity.GetTokenAuth()
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LogHandle)
		r.Use(middleware.RateLimitHandle(router.Config.Server.RateLimitRPS))
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", handlers.RegisterUserHandler(router.Indentity, router.Notifications))
			r.Post("/login", handlers.LoginUserHandler(router.Indentity, router.Notifications))
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(ja))
				r.Use(jwtauth.Authenticator(ja))
				r.Post("/logout", handlers.LogoutHandler(router.Indentity, router.Notifications))
				r.Get("/profile", handlers.GetProfileHandler(router.Indentity))
				r.Get("/assets", handlers.GetAssetsHandler(router.Indentity))
			})
		})
		r.Route("/markets", func(r chi.Router) {
			r.Get("/", handlers.GetMarketsHandler(router.Market))
			r.Get("/ws", router.Stream.HandleWS)
			r.Get("/{base}-{quote}", handlers.GetMarketPairHandler(router.Market))
		})
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(ja))
			r.Use(jwtauth.Authenticator(ja))
			r.Post("/trade", handlers.ExecuteTradeHandler(router.Trade, router.Notifications))
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", handlers.GetNotificationsHandler(router.Notifications))
				r.Delete("/{id}", handlers.DismissNotificationHandler(router.Notifications))
			})
		})
	})
	return r
}
