package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	DBURL string `envconfig:"DB_URL"`

	JWTSecret      string `envconfig:"JWT_SECRET"`
	JWTExpiryHours int    `envconfig:"JWT_EXPIRY_HOURS" default:"24"`

	// Outbound email (fire-and-forget confirmations)
	SMTPHost  string `envconfig:"SMTP_HOST"`
	SMTPPort  string `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser  string `envconfig:"SMTP_USER"`
	SMTPPass  string `envconfig:"SMTP_PASS"`
	EmailFrom string `envconfig:"EMAIL_FROM" default:"CareOps <no-reply@careops.local>"`

	// Outbound SMS
	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `envconfig:"TWILIO_PHONE_NUMBER"`

	// Cron expression for the overdue-form sweep
	SweepSchedule string `envconfig:"SWEEP_SCHEDULE" default:"@hourly"`
}

var C Config

func Load() {
	if err := envconfig.Process("", &C); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}
