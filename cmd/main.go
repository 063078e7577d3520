package main

import (
	"cryptodesk/internal/app"

	"github.com/sirupsen/logrus"
)

// @title           cryptodesk API
// @version         1.0
// @description     Crypto prices, markets, live ticker and a custodial balance ledger.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped with error")
	}
}
