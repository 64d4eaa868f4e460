package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

// Settings is everything the API client needs to reach and authenticate against
// a Megam gateway.
//
// Example file (YAML):
//
//	host: api.megam.io
//	scheme: https
//	email: ops@example.com
//	api_key: ${MEGAM_API_KEY}
//	org_id: ORG123
//	timeout: 30s
type Settings struct {
	Host   string `mapstructure:"host" json:"host"`
	Scheme string `mapstructure:"scheme" json:"scheme"`
	// Port overrides the scheme default (9000 for http).
	Port int `mapstructure:"port" json:"port,omitempty"`

	Email    string `mapstructure:"email" json:"email"`
	APIKey   string `mapstructure:"api_key" json:"api_key,omitempty"`
	Password string `mapstructure:"password" json:"password,omitempty"`
	OrgID    string `mapstructure:"org_id" json:"org_id"`

	Headers map[string]string `mapstructure:"headers" json:"headers,omitempty"`

	Timeout   time.Duration `mapstructure:"timeout" json:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit" json:"rate_limit,omitempty"`
	// Insecure skips TLS verification.
	Insecure bool `mapstructure:"insecure" json:"insecure,omitempty"`
}

// Defaults mirrors the gateway's out-of-the-box deployment: a local node on plain http.
func Defaults() map[string]any {
	return map[string]any{
		"host":       "127.0.0.1",
		"scheme":     "http",
		"port":       0,
		"email":      "",
		"api_key":    "",
		"password":   "",
		"org_id":     "",
		"timeout":    30 * time.Second,
		"rate_limit": 0.0,
		"insecure":   false,
	}
}

func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Host, validation.Required),
		validation.Field(&s.Scheme, validation.Required, validation.In("http", "https")),
		validation.Field(&s.Port, validation.Min(0), validation.Max(65535)),
		validation.Field(&s.Email, is.EmailFormat),
		validation.Field(&s.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&s.RateLimit, validation.Min(0.0)),
	)
}

// String renders the settings with secrets masked.
func (s Settings) String() string {
	mask := func(v string) string {
		if v == "" {
			return ""
		}
		return "****"
	}
	return fmt.Sprintf("%s://%s port=%d email=%s org_id=%s api_key=%s password=%s",
		s.Scheme, s.Host, s.Port, s.Email, s.OrgID, mask(s.APIKey), mask(s.Password))
}

// LoadSettings reads and validates settings from path, with MEGAM_* overrides.
// Reloads that fail validation are ignored.
func LoadSettings(path string, opts ...Option[Settings]) (*Config[Settings], error) {
	base := []Option[Settings]{
		WithDefaults[Settings](Defaults()),
		WithEnv[Settings](EnvPrefix),
		WithValidator(Settings.Validate),
	}
	c, err := Load(path, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return c, nil
}

// FromEnv builds settings from defaults and MEGAM_* variables only.
func FromEnv() (Settings, error) {
	v := viper.New()
	for k, d := range Defaults() {
		v.SetDefault(k, d)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings from env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings from env: %w", err)
	}
	return s, nil
}
