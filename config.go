package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gravitational/trace"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// --- CONFIGURATION ---

// Config holds the console settings.
type Config struct {
	Proxy           string        `mapstructure:"proxy"`
	Cluster         string        `mapstructure:"cluster"`
	Token           string        `mapstructure:"token"`
	Fixture         string        `mapstructure:"fixture"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
	Log             LogConfig     `mapstructure:"log"`
}

// LogConfig controls where logs go. The terminal belongs to the UI, so an
// empty File discards them.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// routeTable lists the console destinations.
type routeTable struct {
	Nodes    string
	Sessions string
}

var routes = routeTable{
	Nodes:    "/web/nodes",
	Sessions: "/web/sessions",
}

// MenuItem is one entry of the left navigation bar.
type MenuItem struct {
	Icon  string
	To    string
	Title string
}

var menuItems = []MenuItem{
	{Icon: "🔗", To: routes.Nodes, Title: "Nodes"},
	{Icon: "👥", To: routes.Sessions, Title: "Sessions"},
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("proxy", "https://localhost:3080")
	v.SetDefault("cluster", "")
	v.SetDefault("token", "")
	v.SetDefault("fixture", "")
	v.SetDefault("poll_interval", defaultPollInterval)
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("notification_ttl", defaultNotificationTTL)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// loadConfig reads the config file (if any), TLPT_ env vars and the given
// flags, in increasing order of precedence.
func loadConfig(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setConfigDefaults(v)

	v.SetConfigType("yaml")
	if configFile == "" {
		configFile = os.Getenv("TLPT_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "tlpt"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TLPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			"proxy":         "proxy",
			"cluster":       "cluster",
			"token":         "token",
			"fixture":       "fixture",
			"poll_interval": "poll-interval",
			"log.file":      "log-file",
			"log.level":     "log-level",
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, trace.Wrap(err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, trace.Wrap(err, "reading config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, trace.Wrap(err, "unmarshal config")
	}
	if err := cfg.CheckAndSetDefaults(); err != nil {
		return Config{}, trace.Wrap(err)
	}
	return cfg, nil
}

// CheckAndSetDefaults validates the config.
func (c *Config) CheckAndSetDefaults() error {
	if c.Fixture == "" && c.Proxy == "" {
		return trace.BadParameter("either proxy or fixture must be set")
	}
	if c.PollInterval < 0 {
		return trace.BadParameter("poll interval must not be negative, got %v", c.PollInterval)
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if c.NotificationTTL <= 0 {
		c.NotificationTTL = defaultNotificationTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	return nil
}

// --- HELPER FUNCTIONS ---

// sshCommand is what a user runs to log into node.
func sshCommand(node Node) string {
	host := node.Hostname
	if host == "" {
		host = node.ID
	}
	return fmt.Sprintf("tsh ssh %s", host)
}

// joinCommand is what a user runs to join an active session.
func joinCommand(session Session) string {
	return fmt.Sprintf("tsh join %s", session.ID)
}
