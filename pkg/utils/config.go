package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Razorpay RazorpayConfig
	Email    EmailConfig
	Sweep    SweepConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	Currency string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RazorpayConfig struct {
	KeyID          string
	KeySecret      string
	TimeoutSeconds int
	MaxRetries     int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type SweepConfig struct {
	IntervalMinutes int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CURRENCY", "INR")
	viper.SetDefault("RAZORPAY_TIMEOUT_SECONDS", 10)
	viper.SetDefault("RAZORPAY_MAX_RETRIES", 3)
	viper.SetDefault("SWEEP_INTERVAL_MINUTES", 30)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Port:     viper.GetString("PORT"),
			Debug:    viper.GetBool("DEBUG"),
			LogPath:  viper.GetString("LOG_PATH"),
			Currency: viper.GetString("CURRENCY"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Razorpay: RazorpayConfig{
			KeyID:          viper.GetString("RAZORPAY_KEY_ID"),
			KeySecret:      viper.GetString("RAZORPAY_KEY_SECRET"),
			TimeoutSeconds: viper.GetInt("RAZORPAY_TIMEOUT_SECONDS"),
			MaxRetries:     viper.GetInt("RAZORPAY_MAX_RETRIES"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Sweep: SweepConfig{
			IntervalMinutes: viper.GetInt("SWEEP_INTERVAL_MINUTES"),
		},
	}

	return config, nil
}
