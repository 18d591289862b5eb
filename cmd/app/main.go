package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"schoolstore/cmd"
	_ "schoolstore/docs"
	httpin "schoolstore/internal/adapters/in/http"
)

//	@title			School Supplies Order API
//	@version		1.0
//	@description	Conversational order intake, payment reconciliation and courier dispatch.
//	@BasePath		/

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(postgresdriver.Open(postgresDSN(configs)), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		PaymentBaseURL:       goDotEnvVariable("PAYMENT_BASE_URL"),
		PaymentKeyID:         goDotEnvVariable("PAYMENT_KEY_ID"),
		PaymentKeySecret:     goDotEnvVariable("PAYMENT_KEY_SECRET"),
		PaymentWebhookSecret: goDotEnvVariable("PAYMENT_WEBHOOK_SECRET"),
		CourierBaseURL:       goDotEnvVariable("COURIER_BASE_URL"),
		CourierAPIToken:      goDotEnvVariable("COURIER_API_TOKEN"),
		MessengerBaseURL:     goDotEnvVariable("MESSENGER_BASE_URL"),
		MessengerAPIToken:    goDotEnvVariable("MESSENGER_API_TOKEN"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func postgresDSN(configs cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.Use(httpin.MetricsMiddleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", httpin.MetricsHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
