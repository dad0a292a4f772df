package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Instagram InstagramConfig
	YouTube   YouTubeConfig
	Spotify   SpotifyConfig
	Extract   ExtractConfig
	Redis     RedisConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	Host string
}

// InstagramConfig holds Instagram web API configuration
type InstagramConfig struct {
	URL       string
	UserAgent string
	SessionID string
	MaxPosts  int
	MaxTagged int
}

// YouTubeConfig holds YouTube Data API configuration
type YouTubeConfig struct {
	URL       string
	APIKey    string
	MaxVideos int
}

// SpotifyConfig holds Spotify Web API configuration
type SpotifyConfig struct {
	URL          string
	AccountsURL  string
	ClientID     string
	ClientSecret string
	MaxEpisodes  int
}

// ExtractConfig holds aggregation pipeline configuration
type ExtractConfig struct {
	MaxWorkers      int
	CacheTTL        time.Duration
	ReachMultiplier float64
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL     string
	Enabled bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	JaegerURL         string
	PrometheusEnabled bool
	PrometheusPort    int
	ServiceName       string
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	// Load from environment
	viper.SetEnvPrefix("TIMA")
	viper.AutomaticEnv()

	// Load from config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.socialdata")
	viper.AddConfigPath("/etc/socialdata")

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; this is OK if we have env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getInt("http_server_port", 8080),
			Host: getString("http_server_host", "0.0.0.0"),
		},
		Instagram: InstagramConfig{
			URL:       getString("instagram_url", "https://i.instagram.com"),
			UserAgent: getString("instagram_user_agent", "Instagram 219.0.0.12.117 Android"),
			SessionID: getString("instagram_session_id", ""),
			MaxPosts:  getInt("instagram_max_posts", 1000),
			MaxTagged: getInt("instagram_max_tagged", 100),
		},
		YouTube: YouTubeConfig{
			URL:       getString("youtube_url", "https://www.googleapis.com"),
			APIKey:    getString("youtube_api_key", ""),
			MaxVideos: getInt("youtube_max_videos", 1000),
		},
		Spotify: SpotifyConfig{
			URL:          getString("spotify_url", "https://api.spotify.com"),
			AccountsURL:  getString("spotify_accounts_url", "https://accounts.spotify.com"),
			ClientID:     getString("spotify_client_id", ""),
			ClientSecret: getString("spotify_client_secret", ""),
			MaxEpisodes:  getInt("spotify_max_episodes", 100),
		},
		Extract: ExtractConfig{
			MaxWorkers:      getInt("max_workers", 4),
			CacheTTL:        getDuration("cache_ttl", 3*time.Hour),
			ReachMultiplier: getFloat("reach_multiplier", 1.5),
		},
		Redis: RedisConfig{
			URL:     getString("redis_url", ""),
			Enabled: getString("redis_url", "") != "",
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", true),
			JaegerURL:         getString("jaeger_url", "http://localhost:14268/api/traces"),
			PrometheusEnabled: getBool("prometheus_enabled", true),
			PrometheusPort:    getInt("prometheus_port", 9090),
			ServiceName:       getString("service_name", "socialdata"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("http_server_port", 8080)
	viper.SetDefault("http_server_host", "0.0.0.0")
	viper.SetDefault("instagram_url", "https://i.instagram.com")
	viper.SetDefault("youtube_url", "https://www.googleapis.com")
	viper.SetDefault("spotify_url", "https://api.spotify.com")
	viper.SetDefault("spotify_accounts_url", "https://accounts.spotify.com")
	viper.SetDefault("instagram_max_posts", 1000)
	viper.SetDefault("instagram_max_tagged", 100)
	viper.SetDefault("youtube_max_videos", 1000)
	viper.SetDefault("spotify_max_episodes", 100)
	viper.SetDefault("max_workers", 4)
	viper.SetDefault("cache_ttl", "3h")
	viper.SetDefault("reach_multiplier", 1.5)
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("telemetry_enabled", true)
	viper.SetDefault("prometheus_enabled", true)
	viper.SetDefault("prometheus_port", 9090)
	viper.SetDefault("service_name", "socialdata")
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	// Also check environment variable directly
	if val := os.Getenv("TIMA_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("TIMA_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("TIMA_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if viper.IsSet(key) {
		return viper.GetFloat64(key)
	}
	if val := os.Getenv("TIMA_" + toEnvKey(key)); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	if val := os.Getenv("TIMA_" + toEnvKey(key)); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	// Convert snake_case to UPPER_SNAKE_CASE
	result := ""
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result += "_"
		}
		if r == '-' || r == '_' {
			result += "_"
		} else {
			result += string(r)
		}
	}
	return result
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Extract.MaxWorkers <= 0 || c.Extract.MaxWorkers > 64 {
		return fmt.Errorf("max_workers must be between 1 and 64")
	}
	if c.Extract.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative")
	}
	if c.Extract.ReachMultiplier <= 0 {
		return fmt.Errorf("reach_multiplier must be positive")
	}
	if c.Instagram.MaxPosts <= 0 || c.Instagram.MaxPosts > 5000 {
		return fmt.Errorf("instagram_max_posts must be between 1 and 5000")
	}
	if c.YouTube.MaxVideos <= 0 || c.YouTube.MaxVideos > 5000 {
		return fmt.Errorf("youtube_max_videos must be between 1 and 5000")
	}
	if c.Spotify.MaxEpisodes <= 0 || c.Spotify.MaxEpisodes > 1000 {
		return fmt.Errorf("spotify_max_episodes must be between 1 and 1000")
	}
	return nil
}
