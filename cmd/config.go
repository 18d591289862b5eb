package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	PaymentBaseURL       string
	PaymentKeyID         string
	PaymentKeySecret     string
	PaymentWebhookSecret string

	CourierBaseURL  string
	CourierAPIToken string

	MessengerBaseURL  string
	MessengerAPIToken string
}
