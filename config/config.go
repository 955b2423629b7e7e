package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"road-graph-server/roadgraph"
)

const (
	DefaultListenAddr          = ":8080"
	DefaultMapFile             = "data/maps/ucsd.map"
	DefaultStrategy            = "astar"
	DefaultMessageSendQueueLen = 15
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Graph  GraphConfig  `yaml:"graph"`
	Stream StreamConfig `yaml:"stream"`
}

type ServerConfig struct {
	ListenAddr   string   `yaml:"listenAddr"`
	AllowOrigins []string `yaml:"allowOrigins"` // empty allows every origin
	GinMode      string   `yaml:"ginMode"`
}

type GraphConfig struct {
	MapFile         string `yaml:"mapFile"`
	DefaultStrategy string `yaml:"defaultStrategy"`
	LogSearches     bool   `yaml:"logSearches"`
}

type StreamConfig struct {
	MessageSendQueueLen int `yaml:"messageSendQueueLen"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{ListenAddr: DefaultListenAddr},
		Graph: GraphConfig{
			MapFile:         DefaultMapFile,
			DefaultStrategy: DefaultStrategy,
		},
		Stream: StreamConfig{MessageSendQueueLen: DefaultMessageSendQueueLen},
	}
}

func (c Config) SerializeToFile(filename string) error {
	fBytes, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("yaml.Marshal(): %s", err)
	}
	err = os.WriteFile(filename, fBytes, 0644)
	if err != nil {
		return fmt.Errorf("os.WriteFile(%q, ...): %s", filename, err)
	}
	return nil
}

// DeserializeFromFile overlays the settings in filename onto c. Keys that
// are absent from the file keep their current values.
func (c *Config) DeserializeFromFile(filename string) error {
	fBytes, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("os.ReadFile(%q): %w", filename, err)
	}
	err = yaml.Unmarshal(fBytes, c)
	if err != nil {
		return fmt.Errorf("yaml.Unmarshal(): %s", err)
	}
	return nil
}

// ApplyEnv overrides settings from ROADGRAPH_* variables and GIN_MODE.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("ROADGRAPH_LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := getenv("ROADGRAPH_ALLOW_ORIGINS"); v != "" {
		c.Server.AllowOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.Server.AllowOrigins = append(c.Server.AllowOrigins, origin)
			}
		}
	}
	if v := getenv("GIN_MODE"); v != "" {
		c.Server.GinMode = v
	}
	if v := getenv("ROADGRAPH_MAP_FILE"); v != "" {
		c.Graph.MapFile = v
	}
	if v := getenv("ROADGRAPH_STRATEGY"); v != "" {
		c.Graph.DefaultStrategy = v
	}
	if v := getenv("ROADGRAPH_LOG_SEARCHES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ROADGRAPH_LOG_SEARCHES: %w", err)
		}
		c.Graph.LogSearches = b
	}
	if v := getenv("ROADGRAPH_SEND_QUEUE_LEN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ROADGRAPH_SEND_QUEUE_LEN: %w", err)
		}
		c.Stream.MessageSendQueueLen = n
	}
	return nil
}

func (c Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return errors.New("server.listenAddr must not be empty")
	}
	if _, err := roadgraph.ParseStrategy(c.Graph.DefaultStrategy); err != nil {
		return fmt.Errorf("graph.defaultStrategy: %w", err)
	}
	if c.Stream.MessageSendQueueLen <= 0 {
		return fmt.Errorf("stream.messageSendQueueLen must be positive, got %d", c.Stream.MessageSendQueueLen)
	}
	return nil
}

// Strategy returns the parsed default strategy. Call Validate first.
func (c Config) Strategy() roadgraph.Strategy {
	s, err := roadgraph.ParseStrategy(c.Graph.DefaultStrategy)
	if err != nil {
		return roadgraph.StrategyAStar
	}
	return s
}

// Load builds the effective configuration: defaults, then the YAML file at
// path if it exists, then .env and the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		err := cfg.DeserializeFromFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("No config file at %s, using defaults", path)
		case err != nil:
			return cfg, err
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
