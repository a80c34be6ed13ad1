// @title Product Ordering API
// @version 1.0
// @description Каталог продуктов и состав заказа, связанные через шину сообщений.
// @BasePath /api/v1
package main

import (
	"os"

	"github.com/DRSN-tech/product-ordering/internal/app"
	config "github.com/DRSN-tech/product-ordering/internal/cfg"
	"github.com/DRSN-tech/product-ordering/pkg/logger"
)

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
