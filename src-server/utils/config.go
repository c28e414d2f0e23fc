package utils

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	port         string
	databasePath string

	location *time.Location

	maxEvents      int
	maxOccurrences int

	metricCollectionInterval time.Duration

	discordGuildID  string
	discordAppToken string
	discordClientID string
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		databasePath: func() string {
			databasePath := os.Getenv("DATABASE_PATH")
			if databasePath == "" {
				databasePath = "./dsc.db"
			}
			slog.Debug("env", "DATABASE_PATH", databasePath)
			return databasePath
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			if timezoneStr == "" {
				// "today" must resolve in one fixed civil timezone, never in
				// whatever zone the server happens to run in
				slog.Warn("TIMEZONE is not set, defaulting to America/Denver")
				timezoneStr = "America/Denver"
			}
			loc, err := time.LoadLocation(timezoneStr)
			if err != nil {
				slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		maxEvents: func() int {
			maxEventsStr := os.Getenv("MAX_EVENTS")
			if maxEventsStr == "" {
				return 200
			}
			maxEvents, err := strconv.Atoi(maxEventsStr)
			if err != nil || maxEvents <= 0 {
				slog.Error("invalid MAX_EVENTS", "value", maxEventsStr)
				os.Exit(1)
			}
			slog.Debug("env", "MAX_EVENTS", maxEvents)
			return maxEvents
		}(),
		maxOccurrences: func() int {
			maxOccurrencesStr := os.Getenv("MAX_OCCURRENCES")
			if maxOccurrencesStr == "" {
				return 52
			}
			maxOccurrences, err := strconv.Atoi(maxOccurrencesStr)
			if err != nil || maxOccurrences <= 0 {
				slog.Error("invalid MAX_OCCURRENCES", "value", maxOccurrencesStr)
				os.Exit(1)
			}
			slog.Debug("env", "MAX_OCCURRENCES", maxOccurrences)
			return maxOccurrences
		}(),

		metricCollectionInterval: func() time.Duration {
			intervalStr := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if intervalStr == "" {
				intervalStr = "15s"
			}
			interval, err := time.ParseDuration(intervalStr)
			if err != nil {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", interval)
			return interval
		}(),

		// the Discord surface is optional; without a token the bot is skipped
		discordGuildID: func() string {
			discordGuildID := os.Getenv("DISCORD_GUILD_ID")
			slog.Debug("env", "DISCORD_GUILD_ID", discordGuildID)
			return discordGuildID
		}(),
		discordAppToken: func() string {
			discordAppToken := os.Getenv("DISCORD_APP_TOKEN")
			if discordAppToken == "" {
				slog.Warn("DISCORD_APP_TOKEN is not set, Discord commands disabled")
				return ""
			}
			slog.Debug("env", "DISCORD_APP_TOKEN", discordAppToken[0:3]+"...")
			return discordAppToken
		}(),
		discordClientID: func() string {
			discordClientID := os.Getenv("DISCORD_CLIENT_ID")
			slog.Debug("env", "DISCORD_CLIENT_ID", discordClientID)
			return discordClientID
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DATABASE_PATH env, default to ./dsc.db
func (c *Config) GetDatabasePath() string {
	return c.databasePath
}

// Get TIMEZONE env, the fixed civil timezone, default America/Denver
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get MAX_EVENTS env, global expansion cap, default 200
func (c *Config) GetMaxEvents() int {
	return c.maxEvents
}

// Get MAX_OCCURRENCES env, per-event expansion cap, default 52
func (c *Config) GetMaxOccurrences() int {
	return c.maxOccurrences
}

// Get METRIC_COLLECTION_INTERVAL env, default 15s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get DISCORD_GUILD_ID env
func (c *Config) GetDiscordGuildID() string {
	return c.discordGuildID
}

// Get DISCORD_APP_TOKEN env; blank disables the Discord surface
func (c *Config) GetDiscordAppToken() string {
	return c.discordAppToken
}

// Get DISCORD_CLIENT_ID env
func (c *Config) GetDiscordClientID() string {
	return c.discordClientID
}
