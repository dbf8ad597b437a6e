package main

import (
	"fxconvert/internal/app"
	"os"

	"github.com/sirupsen/logrus"
)

// @title FX Convert API
// @version 1.0
// @description Currency conversion sessions backed by live exchange rates
// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}
