package domain

import "time"

// Config represents the payflow configuration loaded from payflow.yaml.
type Config struct {
	Processors    ProcessorsConfig
	Notifications NotificationsConfig
	Log           LogConfig
	Events        EventsConfig
	Paths         PathsConfig
}

type ProcessorsConfig struct {
	StripeCurrencies []string
	LocalCurrencies  []string
	Stripe           StripeConfig
}

// StripeConfig is read from STRIPE_API_KEY / STRIPE_RECURRING_PRICE_ID when not in the file.
type StripeConfig struct {
	APIKey           string
	RecurringPriceID string
	BaseURL          string
	Timeout          time.Duration
}

type NotificationsConfig struct {
	Channel   NotificationChannel
	EmailFrom string
	SMSFrom   string
}

// LogSink selects the transaction trace backend.
type LogSink string

const (
	SinkText  LogSink = "text"
	SinkJSONL LogSink = "jsonl"
	SinkSQL   LogSink = "sql"
)

type LogConfig struct {
	Sink    LogSink
	Path    string
	Driver  string
	DSN     string
	Masking bool
}

type EventsConfig struct {
	RedisAddr    string
	RedisChannel string
}

type PathsConfig struct {
	ScenariosDir string
}

// DefaultConfig provides sane defaults if payflow.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Processors: ProcessorsConfig{
			StripeCurrencies: []string{"USD", "EUR", "GBP"},
			LocalCurrencies:  []string{"MXN"},
			Stripe: StripeConfig{
				BaseURL: "https://api.stripe.com",
				Timeout: 10 * time.Second,
			},
		},
		Notifications: NotificationsConfig{
			Channel:   ChannelEmail,
			EmailFrom: "payments@payflow.local",
			SMSFrom:   "PAYFLOW",
		},
		Log: LogConfig{
			Sink:    SinkText,
			Path:    ".payflow/transactions.log",
			Driver:  "sqlite3",
			Masking: true,
		},
		Events: EventsConfig{
			RedisChannel: "payflow.events",
		},
		Paths: PathsConfig{
			ScenariosDir: "scenarios",
		},
	}
}
