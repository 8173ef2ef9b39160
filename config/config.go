// Package config loads coordinator settings from a YAML file and
// environment variables via viper, falling back to the defaults documented
// alongside the wire protocol.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

// Config holds every tunable the coordinator needs to dial, pace, retry
// and poll a GivEnergy data adapter.
type Config struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	RefreshPeriod   time.Duration `mapstructure:"refresh_period"`
	FullRefreshTick int           `mapstructure:"full_refresh_tick"`

	PacingMin time.Duration `mapstructure:"pacing_min"`
	PacingMax time.Duration `mapstructure:"pacing_max"`

	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	ReadRetries  int `mapstructure:"read_retries"`
	WriteRetries int `mapstructure:"write_retries"`

	HeartbeatDeadline time.Duration `mapstructure:"heartbeat_deadline"`
	NumBatteries      int           `mapstructure:"num_batteries"`

	LogLevel string `mapstructure:"log_level"`
}

// Load builds a Config from defaults, an optional YAML file at path (if
// non-empty and present), and GIVENERGY_MODBUS_-prefixed environment
// variables, in that order of increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("givenergy_modbus")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "givenergy.local")
	v.SetDefault("port", common.DefaultPort)
	v.SetDefault("refresh_period", time.Duration(common.DefaultRefreshPeriod)*time.Millisecond)
	v.SetDefault("full_refresh_tick", common.DefaultFullRefreshTick)
	v.SetDefault("pacing_min", time.Duration(common.DefaultPacingMinMillis)*time.Millisecond)
	v.SetDefault("pacing_max", time.Duration(common.DefaultPacingMaxMillis)*time.Millisecond)
	v.SetDefault("connect_timeout", time.Duration(common.DefaultConnectTimeoutMillis)*time.Millisecond)
	v.SetDefault("request_timeout", time.Duration(common.DefaultRequestTimeoutMillis)*time.Millisecond)
	v.SetDefault("read_retries", common.DefaultReadRetries)
	v.SetDefault("write_retries", common.DefaultWriteRetries)
	v.SetDefault("heartbeat_deadline", time.Duration(common.DefaultHeartbeatDeadlineSeconds)*time.Second)
	v.SetDefault("num_batteries", 1)
	v.SetDefault("log_level", "info")
}

// LogLevelValue parses LogLevel into a common.LogLevel, defaulting to
// LevelInfo for an unrecognized string.
func (c *Config) LogLevelValue() common.LogLevel {
	switch strings.ToLower(c.LogLevel) {
	case "trace":
		return common.LevelTrace
	case "debug":
		return common.LevelDebug
	case "warn", "warning":
		return common.LevelWarn
	case "error":
		return common.LevelError
	case "none":
		return common.LevelNone
	default:
		return common.LevelInfo
	}
}
