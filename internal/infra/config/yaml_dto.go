package config

// YAMLConfig mirrors payflow.yaml. The mapstructure tags drive viper, the
// yaml tags drive Encode.
type YAMLConfig struct {
	Processors    YAMLProcessors    `mapstructure:"processors" yaml:"processors"`
	Notifications YAMLNotifications `mapstructure:"notifications" yaml:"notifications"`
	Log           YAMLLog           `mapstructure:"log" yaml:"log"`
	Events        YAMLEvents        `mapstructure:"events" yaml:"events"`
	Paths         YAMLPaths         `mapstructure:"paths" yaml:"paths"`
}

type YAMLProcessors struct {
	StripeCurrencies []string   `mapstructure:"stripe_currencies" yaml:"stripe_currencies"`
	LocalCurrencies  []string   `mapstructure:"local_currencies" yaml:"local_currencies"`
	Stripe           YAMLStripe `mapstructure:"stripe" yaml:"stripe"`
}

type YAMLStripe struct {
	// Secrets normally come from STRIPE_API_KEY; the file value is a fallback.
	APIKey           string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	RecurringPriceID string `mapstructure:"recurring_price_id" yaml:"recurring_price_id,omitempty"`
	BaseURL          string `mapstructure:"base_url" yaml:"base_url"`
	Timeout          string `mapstructure:"timeout" yaml:"timeout"`
}

type YAMLNotifications struct {
	Channel   string `mapstructure:"channel" yaml:"channel"`
	EmailFrom string `mapstructure:"email_from" yaml:"email_from"`
	SMSFrom   string `mapstructure:"sms_from" yaml:"sms_from"`
}

type YAMLLog struct {
	Sink    string `mapstructure:"sink" yaml:"sink"`
	Path    string `mapstructure:"path" yaml:"path"`
	Driver  string `mapstructure:"driver" yaml:"driver"`
	DSN     string `mapstructure:"dsn" yaml:"dsn,omitempty"`
	Masking bool   `mapstructure:"masking" yaml:"masking"`
}

type YAMLEvents struct {
	RedisAddr    string `mapstructure:"redis_addr" yaml:"redis_addr,omitempty"`
	RedisChannel string `mapstructure:"redis_channel" yaml:"redis_channel"`
}

type YAMLPaths struct {
	ScenariosDir string `mapstructure:"scenarios_dir" yaml:"scenarios_dir"`
}
