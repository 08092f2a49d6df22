package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aalvaropc/payflow/internal/domain"
)

// MapConfig validates dto and converts it. Errors name the offending field.
func MapConfig(path string, dto YAMLConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	stripeCur, err := mapCurrencies(path, "processors.stripe_currencies", dto.Processors.StripeCurrencies)
	if err != nil {
		return cfg, err
	}
	localCur, err := mapCurrencies(path, "processors.local_currencies", dto.Processors.LocalCurrencies)
	if err != nil {
		return cfg, err
	}
	cfg.Processors.StripeCurrencies = stripeCur
	cfg.Processors.LocalCurrencies = localCur

	st := dto.Processors.Stripe
	cfg.Processors.Stripe.APIKey = strings.TrimSpace(st.APIKey)
	cfg.Processors.Stripe.RecurringPriceID = strings.TrimSpace(st.RecurringPriceID)
	if base := strings.TrimSpace(st.BaseURL); base != "" {
		u, err := url.Parse(base)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return cfg, invalidField(path, "processors.stripe.base_url", "must be an absolute http(s) URL")
		}
		cfg.Processors.Stripe.BaseURL = base
	}
	if t := strings.TrimSpace(st.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d <= 0 {
			return cfg, invalidField(path, "processors.stripe.timeout", fmt.Sprintf("invalid duration %q", t))
		}
		cfg.Processors.Stripe.Timeout = d
	}

	switch ch := domain.NotificationChannel(strings.ToLower(strings.TrimSpace(dto.Notifications.Channel))); ch {
	case "":
	case domain.ChannelEmail, domain.ChannelSMS:
		cfg.Notifications.Channel = ch
	default:
		return cfg, invalidField(path, "notifications.channel", fmt.Sprintf("unsupported channel %q (email|sms)", dto.Notifications.Channel))
	}
	if v := strings.TrimSpace(dto.Notifications.EmailFrom); v != "" {
		cfg.Notifications.EmailFrom = v
	}
	if v := strings.TrimSpace(dto.Notifications.SMSFrom); v != "" {
		cfg.Notifications.SMSFrom = v
	}

	if err := mapLog(path, dto.Log, &cfg.Log); err != nil {
		return cfg, err
	}

	cfg.Events.RedisAddr = strings.TrimSpace(dto.Events.RedisAddr)
	if v := strings.TrimSpace(dto.Events.RedisChannel); v != "" {
		cfg.Events.RedisChannel = v
	}

	if v := strings.TrimSpace(dto.Paths.ScenariosDir); v != "" {
		cfg.Paths.ScenariosDir = v
	}

	return cfg, nil
}

func mapLog(path string, in YAMLLog, out *domain.LogConfig) error {
	out.Masking = in.Masking

	switch sink := domain.LogSink(strings.ToLower(strings.TrimSpace(in.Sink))); sink {
	case "":
	case domain.SinkText, domain.SinkJSONL, domain.SinkSQL:
		out.Sink = sink
	default:
		return invalidField(path, "log.sink", fmt.Sprintf("unsupported sink %q (text|jsonl|sql)", in.Sink))
	}

	if v := strings.TrimSpace(in.Path); v != "" {
		out.Path = v
	}
	if v := strings.TrimSpace(in.Driver); v != "" {
		out.Driver = v
	}
	out.DSN = strings.TrimSpace(in.DSN)

	if out.Sink != domain.SinkSQL {
		return nil
	}
	switch out.Driver {
	case "postgres", "sqlite3":
	default:
		return invalidField(path, "log.driver", fmt.Sprintf("unsupported driver %q (postgres|sqlite3)", out.Driver))
	}
	if out.DSN == "" {
		return invalidField(path, "log.dsn", "dsn is required for the sql sink")
	}
	return nil
}

func mapCurrencies(path, field string, in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for i, c := range in {
		cur, err := domain.NormalizeCurrency(c)
		if err != nil {
			return nil, invalidField(path, fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("invalid currency %q", c))
		}
		out = append(out, cur)
	}
	return out, nil
}

// FromDomain is the inverse of MapConfig, used for defaults and for writing files.
func FromDomain(cfg domain.Config) YAMLConfig {
	timeout := ""
	if cfg.Processors.Stripe.Timeout > 0 {
		timeout = cfg.Processors.Stripe.Timeout.String()
	}
	return YAMLConfig{
		Processors: YAMLProcessors{
			StripeCurrencies: append([]string(nil), cfg.Processors.StripeCurrencies...),
			LocalCurrencies:  append([]string(nil), cfg.Processors.LocalCurrencies...),
			Stripe: YAMLStripe{
				APIKey:           cfg.Processors.Stripe.APIKey,
				RecurringPriceID: cfg.Processors.Stripe.RecurringPriceID,
				BaseURL:          cfg.Processors.Stripe.BaseURL,
				Timeout:          timeout,
			},
		},
		Notifications: YAMLNotifications{
			Channel:   string(cfg.Notifications.Channel),
			EmailFrom: cfg.Notifications.EmailFrom,
			SMSFrom:   cfg.Notifications.SMSFrom,
		},
		Log: YAMLLog{
			Sink:    string(cfg.Log.Sink),
			Path:    cfg.Log.Path,
			Driver:  cfg.Log.Driver,
			DSN:     cfg.Log.DSN,
			Masking: cfg.Log.Masking,
		},
		Events: YAMLEvents{
			RedisAddr:    cfg.Events.RedisAddr,
			RedisChannel: cfg.Events.RedisChannel,
		},
		Paths: YAMLPaths{ScenariosDir: cfg.Paths.ScenariosDir},
	}
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
