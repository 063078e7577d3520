package api

import (
	_ "cryptodesk/docs"
	"cryptodesk/internal/api/adminauth"
	ledgerhandler "cryptodesk/internal/ledger/handler"
	markethandler "cryptodesk/internal/market/handler"
	tickerhandler "cryptodesk/internal/ticker/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Market *markethandler.Handler
	Ledger *ledgerhandler.Handler
	Ticker *tickerhandler.Handler
}

func NewRouter(h Handlers, auth *adminauth.Middleware) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/prices", h.Market.GetPrices)
		r.Get("/markets", h.Market.GetMarkets)
		r.Get("/ticker/ws", h.Ticker.Stream)
		r.Get("/deposit-address", h.Ledger.GetDepositAddress)
		r.Get("/orders", h.Ledger.GetOrders)

		r.Group(func(r chi.Router) {
			r.Use(auth.Handler)

			r.Get("/accounts/{username}/assets", h.Ledger.GetAssets)
			r.Get("/accounts/{username}/transactions", h.Ledger.GetTransactions)

			r.Get("/admin/users", h.Ledger.ListUsers)
			r.Get("/admin/users/{username}/assets", h.Ledger.GetUserBalances)
			r.Post("/admin/balances/set", h.Ledger.SetBalance)
			r.Post("/admin/balances/adjust", h.Ledger.AdjustBalance)
			r.Post("/admin/deposits", h.Ledger.CreateDeposit)
		})
	})
	return router
}
