package bridgecfg

import (
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defMaxSize  = 100
	defMaxFiles = 3
	defMaxAge   = 28
)

// SetupLogger configures the default logrus logger from the loaded
// configuration. With log_media "file" the output rotates under log_dir.
func (c *Config) SetupLogger() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	log.SetLevel(level)

	switch c.LogFormat {
	case "text", "":
		log.SetFormatter(&log.TextFormatter{TimestampFormat: time.RFC3339, FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339})
	default:
		return fmt.Errorf("unknown log_format '%s'", c.LogFormat)
	}

	if c.LogMedia == "file" {
		if c.LogDir == "" {
			return fmt.Errorf("log_media is 'file' but log_dir is not set")
		}

		log.SetOutput(&lumberjack.Logger{
			Filename:   filepath.Join(c.LogDir, "misp-mcp.log"),
			MaxSize:    defMaxSize,
			MaxBackups: defMaxFiles,
			MaxAge:     defMaxAge,
			Compress:   true,
		})
	}

	return nil
}
