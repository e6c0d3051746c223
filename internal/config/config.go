package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPort is the well-known game port shared by the server and the client.
const DefaultPort = "8080"

type Config struct {
	LogLevel      string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Port          string `yaml:"port" env:"PORT" env-default:"8080"`
	WebSocketPort string `yaml:"websocket-port" env:"WEBSOCKET_PORT"`
	Game          Game   `yaml:"game"`
	Redis         Redis  `yaml:"redis"`
}

type Game struct {
	InactivityTimeout time.Duration `yaml:"inactivity-timeout" env:"GAME_INACTIVITY_TIMEOUT" env-default:"5m"`
	PollInterval      time.Duration `yaml:"poll-interval" env:"GAME_POLL_INTERVAL" env-default:"1s"`
	WriteTimeout      time.Duration `yaml:"write-timeout" env:"GAME_WRITE_TIMEOUT" env-default:"5s"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Channel string `yaml:"channel" env:"REDIS_CHANNEL" env-default:"tictactoe:events"`
}

// MustLoad - load configuration from the yml file at path, falling back to the environment when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
