package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Club     ClubConfig
	Jobs     JobsConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// ClubConfig carries the green layout and the pool policy table.
// PoolStrategies maps an event type to the strategy name that decides which
// pool a booking of that type exposes.
type ClubConfig struct {
	TotalRinks     int
	Sessions       []int
	PoolStrategies map[string]string
}

type JobsConfig struct {
	PoolSweepEnabled  bool
	PoolSweepInterval time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CLUB_TOTAL_RINKS", 6)
	viper.SetDefault("CLUB_SESSIONS", "1,2,3")
	viper.SetDefault("POOL_STRATEGIES", "league:event,competition:event,friendly:booking,social:booking,gala:none")
	viper.SetDefault("POOL_SWEEP_ENABLED", true)
	viper.SetDefault("POOL_SWEEP_INTERVAL_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	sessions, err := parseSessions(viper.GetString("CLUB_SESSIONS"))
	if err != nil {
		return nil, fmt.Errorf("CLUB_SESSIONS: %w", err)
	}

	strategies, err := parsePoolStrategies(viper.GetString("POOL_STRATEGIES"))
	if err != nil {
		return nil, fmt.Errorf("POOL_STRATEGIES: %w", err)
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Club: ClubConfig{
			TotalRinks:     viper.GetInt("CLUB_TOTAL_RINKS"),
			Sessions:       sessions,
			PoolStrategies: strategies,
		},
		Jobs: JobsConfig{
			PoolSweepEnabled:  viper.GetBool("POOL_SWEEP_ENABLED"),
			PoolSweepInterval: time.Duration(viper.GetInt("POOL_SWEEP_INTERVAL_MINUTES")) * time.Minute,
		},
	}

	if config.Club.TotalRinks <= 0 {
		return nil, fmt.Errorf("CLUB_TOTAL_RINKS must be positive, got %d", config.Club.TotalRinks)
	}

	return config, nil
}

// HasSession reports whether a session number is part of the configured day.
func (c ClubConfig) HasSession(session int) bool {
	for _, s := range c.Sessions {
		if s == session {
			return true
		}
	}
	return false
}

func parseSessions(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	sessions := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid session %q", part)
		}
		sessions = append(sessions, n)
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no sessions configured")
	}
	return sessions, nil
}

func parsePoolStrategies(raw string) (map[string]string, error) {
	table := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		eventType, strategy, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid entry %q, want type:strategy", pair)
		}
		table[strings.TrimSpace(eventType)] = strings.TrimSpace(strategy)
	}
	return table, nil
}
