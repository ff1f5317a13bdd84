// Package config reads the bot settings from config.toml and CIESTA_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	BotToken      string
	LogLevel      zerolog.Level
	OwnerIDs      []string
	OwnerContact  string
	CommandPrefix string

	HandlerTimeout time.Duration

	BroadcastDelay  time.Duration
	DeliveryTimeout time.Duration

	StorageDriver string
	StoragePath   string
	RedisAddr     string
	RedisKey      string

	NewsAPIKey       string
	NewsURL          string
	WeatherAPIKey    string
	WeatherURL       string
	DefaultCity      string
	IPURL            string
	EunsooURL        string
	ImageCollections map[string]string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.command_prefix", "/")
	v.SetDefault("bot.owner_contact", "Contact the bot owner through the group admins.")
	v.SetDefault("handler.timeout", "30s")
	v.SetDefault("broadcast.delay", "100ms")
	v.SetDefault("broadcast.delivery_timeout", "10s")
	v.SetDefault("storage.driver", "json")
	v.SetDefault("storage.path", "database/user.json")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_key", "ciesta:users")
	v.SetDefault("weather.default_city", "Jakarta")
	v.SetDefault("images.eunsoo_url", "https://upload.wikimedia.org/wikipedia/commons/thumb/f/f2/"+
		"Shin_Eun-soo_in_January_2024.png/1200px-Shin_Eun-soo_in_January_2024.png")
	v.SetDefault("images.collections", map[string]string{
		"waifu": "src/Anime/waifu.json",
		"anime": "src/Anime/random.json",
	})
}

// Load reads config.toml from the given directories. A missing file is fine as long as
// the environment provides the bot token.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("CIESTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	c := &Config{
		BotToken:         strings.TrimSpace(v.GetString("telegram.bot_token")),
		LogLevel:         parseLevel(v.GetString("bot.log_level")),
		OwnerIDs:         ownerIDs(v.Get("bot.owner_ids")),
		OwnerContact:     v.GetString("bot.owner_contact"),
		CommandPrefix:    v.GetString("bot.command_prefix"),
		HandlerTimeout:   v.GetDuration("handler.timeout"),
		BroadcastDelay:   v.GetDuration("broadcast.delay"),
		DeliveryTimeout:  v.GetDuration("broadcast.delivery_timeout"),
		StorageDriver:    strings.ToLower(v.GetString("storage.driver")),
		StoragePath:      v.GetString("storage.path"),
		RedisAddr:        v.GetString("storage.redis_addr"),
		RedisKey:         v.GetString("storage.redis_key"),
		NewsAPIKey:       v.GetString("news.api_key"),
		NewsURL:          v.GetString("news.url"),
		WeatherAPIKey:    v.GetString("weather.api_key"),
		WeatherURL:       v.GetString("weather.url"),
		DefaultCity:      v.GetString("weather.default_city"),
		IPURL:            v.GetString("ip.url"),
		EunsooURL:        v.GetString("images.eunsoo_url"),
		ImageCollections: v.GetStringMapString("images.collections"),
	}

	if c.BotToken == "" {
		return nil, errors.New("telegram.bot_token is required")
	}

	if c.HandlerTimeout <= 0 {
		return nil, fmt.Errorf("invalid timeout for handler in config: %q", v.GetString("handler.timeout"))
	}

	if c.DeliveryTimeout <= 0 {
		return nil, fmt.Errorf("invalid broadcast delivery timeout in config: %q",
			v.GetString("broadcast.delivery_timeout"))
	}

	if c.BroadcastDelay < 0 {
		return nil, fmt.Errorf("invalid broadcast delay in config: %q", v.GetString("broadcast.delay"))
	}

	if c.CommandPrefix == "" {
		c.CommandPrefix = "/"
	}

	return c, nil
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ownerIDs accepts a TOML list of numbers or strings, or a comma or space separated string
// from the environment.
func ownerIDs(raw any) []string {
	var parts []string

	switch val := raw.(type) {
	case nil:
		return nil
	case string:
		parts = strings.FieldsFunc(val, func(r rune) bool { return r == ',' || r == ' ' })
	case []any:
		for _, p := range val {
			parts = append(parts, fmt.Sprint(p))
		}
	case []string:
		parts = val
	default:
		parts = []string{fmt.Sprint(val)}
	}

	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}

	return ids
}
