package utils

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	port string

	discordGuildID  string
	discordAppToken string
	discordClientId string

	dataDir string
	icalUrl string

	location             *time.Location
	dailyDigestTime      string
	calendarSyncInterval time.Duration
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

		discordGuildID: func() string {
			discordGuildID := os.Getenv("DISCORD_GUILD_ID")
			if discordGuildID == "" {
				slog.Error("DISCORD_GUILD_ID is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_GUILD_ID", discordGuildID)
			return discordGuildID
		}(),
		discordAppToken: func() string {
			discordAppToken := os.Getenv("DISCORD_APP_TOKEN")
			if discordAppToken == "" {
				slog.Error("DISCORD_APP_TOKEN is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_APP_TOKEN", discordAppToken[0:3]+"...")
			return discordAppToken
		}(),
		discordClientId: func() string {
			discordClientId := os.Getenv("DISCORD_CLIENT_ID")
			if discordClientId == "" {
				slog.Error("DISCORD_CLIENT_ID is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_CLIENT_ID", discordClientId)
			return discordClientId
		}(),

		dataDir: func() string {
			dataDir := os.Getenv("DATA_DIR")
			if dataDir == "" {
				dataDir = "./data"
			}
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				slog.Error("can't create DATA_DIR", "dir", dataDir, "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "DATA_DIR", dataDir)
			return filepath.Clean(dataDir)
		}(),
		icalUrl: func() string {
			icalUrl := os.Getenv("ICAL_URL")
			if icalUrl == "" {
				slog.Warn("ICAL_URL is not set, expecting a calendar URL in settings")
			} else {
				slog.Debug("env", "ICAL_URL", icalUrl)
			}
			return icalUrl
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				slog.Warn("TIMEZONE is set to UTC, using UTC timezone", "timezone", time.UTC)
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),
		dailyDigestTime: func() string {
			dailyDigestTime := os.Getenv("DAILY_DIGEST_TIME")
			if dailyDigestTime == "" {
				dailyDigestTime = "17:00"
			}
			if _, err := time.Parse("15:04", dailyDigestTime); err != nil {
				slog.Error("invalid DAILY_DIGEST_TIME, expecting HH:MM", "value", dailyDigestTime, "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "DAILY_DIGEST_TIME", dailyDigestTime)
			return dailyDigestTime
		}(),
		calendarSyncInterval: func() time.Duration {
			calendarSyncInterval := os.Getenv("CALENDAR_SYNC_INTERVAL")
			if calendarSyncInterval == "" {
				calendarSyncInterval = "24h"
			}
			duration, err := time.ParseDuration(calendarSyncInterval)
			if err != nil {
				slog.Error("invalid CALENDAR_SYNC_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "CALENDAR_SYNC_INTERVAL", calendarSyncInterval, "duration", duration)
			return duration
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DISCORD_GUILD_ID env
func (c *Config) GetDiscordGuildID() string {
	return c.discordGuildID
}

// Get DISCORD_APP_TOKEN env
func (c *Config) GetDiscordAppToken() string {
	return c.discordAppToken
}

// Get DISCORD_CLIENT_ID env
func (c *Config) GetDiscordClientId() string {
	return c.discordClientId
}

// Get DATA_DIR env, default to ./data
func (c *Config) GetDataDir() string {
	return c.dataDir
}

// Get ICAL_URL env, the fallback calendar URL when none is stored in settings
func (c *Config) GetIcalUrl() string {
	return c.icalUrl
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get DAILY_DIGEST_TIME env as "HH:MM", default to 17:00
func (c *Config) GetDailyDigestTime() string {
	return c.dailyDigestTime
}

// Get CALENDAR_SYNC_INTERVAL env, default to 24h
func (c *Config) GetCalendarSyncInterval() time.Duration {
	return c.calendarSyncInterval
}
