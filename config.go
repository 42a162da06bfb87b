package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/saichandra-1/white-board/internal/board"
)

const configFileName = ".designboardrc"

type Config struct {
	SaveDirectory string
	Storage       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Theme         board.Theme
	LogLevel      log.Level
	LogFile       string
	Confirmations bool
	Samples       bool
}

func defaultConfig() *Config {
	return &Config{
		Storage:       "file",
		RedisAddr:     "localhost:6379",
		Theme:         board.ThemeLight,
		LogLevel:      log.InfoLevel,
		Confirmations: true,
		Samples:       true,
	}
}

// loadConfig reads path, or ~/.designboardrc when path is empty. A missing
// file yields the defaults.
func loadConfig(path string) *Config {
	config := defaultConfig()

	homeDir, _ := os.UserHomeDir()
	if path == "" {
		if homeDir == "" {
			return config
		}
		path = filepath.Join(homeDir, configFileName)
	}

	file, err := os.Open(path)
	if err != nil {
		return config
	}
	defer file.Close()

	parseConfig(file, homeDir, config)
	return config
}

func parseConfig(r io.Reader, homeDir string, config *Config) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "storage":
			switch v := strings.ToLower(value); v {
			case "file", "redis", "none":
				config.Storage = v
			}
		case "redisaddr", "redis_addr":
			config.RedisAddr = value
		case "redispassword", "redis_password":
			config.RedisPassword = value
		case "redisdb", "redis_db":
			if n, err := strconv.Atoi(value); err == nil && n >= 0 {
				config.RedisDB = n
			}
		case "theme":
			if t := board.Theme(strings.ToLower(value)); t.Valid() {
				config.Theme = t
			}
		case "loglevel", "log_level":
			if lvl, err := log.ParseLevel(value); err == nil {
				config.LogLevel = lvl
			}
		case "logfile", "log_file":
			config.LogFile = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "samples", "sample_notes":
			config.Samples = strings.ToLower(value) == "true"
		}
	}
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// StorageDir is where the working copy of the board is kept by the file
// store.
func (c *Config) StorageDir() string {
	if c.SaveDirectory != "" {
		return filepath.Join(c.SaveDirectory, ".designboard")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "designboard")
	}
	return ".designboard"
}

func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	if c.SaveDirectory != "" {
		return filepath.Join(c.SaveDirectory, "designboard.log")
	}
	return filepath.Join(c.StorageDir(), "designboard.log")
}
