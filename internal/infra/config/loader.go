// Package config loads payflow.yaml with viper and maps it onto domain.Config.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/aalvaropc/payflow/internal/domain"
)

const (
	FileName = "payflow.yaml"
	// AltFileName is accepted when FileName is absent.
	AltFileName = "payflow.yml"
	EnvPrefix   = "PAYFLOW"
)

// Load reads path on top of the defaults, then applies environment overrides
// (PAYFLOW_<SECTION>_<KEY>, STRIPE_API_KEY, STRIPE_RECURRING_PRICE_ID).
// An empty path skips the file.
func Load(path string) (domain.Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			kind := domain.KindExecution
			if errors.Is(err, os.ErrNotExist) {
				kind = domain.KindNotFound
			}
			return domain.DefaultConfig(), &domain.OpError{Op: "config.load", Kind: kind, Path: path, Err: err}
		}

		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return domain.DefaultConfig(), &domain.OpError{Op: "config.load", Kind: domain.KindInvalidConfig, Path: path, Err: err}
		}
	}

	var dto YAMLConfig
	if err := v.Unmarshal(&dto); err != nil {
		return domain.DefaultConfig(), &domain.OpError{Op: "config.decode", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	return MapConfig(path, dto)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, FromDomain(domain.DefaultConfig()))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("processors.stripe.api_key", "STRIPE_API_KEY", EnvPrefix+"_PROCESSORS_STRIPE_API_KEY")
	_ = v.BindEnv("processors.stripe.recurring_price_id", "STRIPE_RECURRING_PRICE_ID", EnvPrefix+"_PROCESSORS_STRIPE_RECURRING_PRICE_ID")
	return v
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d YAMLConfig) {
	v.SetDefault("processors.stripe_currencies", d.Processors.StripeCurrencies)
	v.SetDefault("processors.local_currencies", d.Processors.LocalCurrencies)
	v.SetDefault("processors.stripe.api_key", d.Processors.Stripe.APIKey)
	v.SetDefault("processors.stripe.recurring_price_id", d.Processors.Stripe.RecurringPriceID)
	v.SetDefault("processors.stripe.base_url", d.Processors.Stripe.BaseURL)
	v.SetDefault("processors.stripe.timeout", d.Processors.Stripe.Timeout)

	v.SetDefault("notifications.channel", d.Notifications.Channel)
	v.SetDefault("notifications.email_from", d.Notifications.EmailFrom)
	v.SetDefault("notifications.sms_from", d.Notifications.SMSFrom)

	v.SetDefault("log.sink", d.Log.Sink)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.driver", d.Log.Driver)
	v.SetDefault("log.dsn", d.Log.DSN)
	v.SetDefault("log.masking", d.Log.Masking)

	v.SetDefault("events.redis_addr", d.Events.RedisAddr)
	v.SetDefault("events.redis_channel", d.Events.RedisChannel)

	v.SetDefault("paths.scenarios_dir", d.Paths.ScenariosDir)
}
