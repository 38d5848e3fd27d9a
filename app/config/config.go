package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log        Log         `yaml:"log"`
	Server     Server      `yaml:"server"`
	OpenAI     ModelConfig `yaml:"openai" validate:"required"`
	MCP        MCP         `yaml:"mcp"`
	Transcript Transcript  `yaml:"transcript"`
}

type Server struct {
	// Address the HTTP API listens on
	Addr string `yaml:"addr" example:":8080" validate:"required"`
}

type ModelConfig struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://api.groq.com/openai/v1" validate:"required"`
	// API token
	Token string `yaml:"token" example:"gsk_abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// Model name
	Model string `yaml:"model" example:"llama-3.3-70b-versatile" validate:"required"`
}

type MCP struct {
	// Address of the optional MCP catalog server, empty disables it
	Addr string `yaml:"addr" example:":8081"`
}

type Transcript struct {
	// Directory conversation transcripts are written to
	Dir string `yaml:"dir" example:"data"`
}

type Log struct {
	// Minimal log level: debug, info, warn or error
	Level string `yaml:"level" example:"info"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	return LoadFile("config.yaml")
}

func LoadFile(path string) (*Config, error) {
	var result Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Addr == "" {
		result.Server.Addr = ":8080"
	}
	if result.Transcript.Dir == "" {
		result.Transcript.Dir = "data"
	}
	if result.Log.Level == "" {
		result.Log.Level = "info"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
