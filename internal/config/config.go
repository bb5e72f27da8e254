package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type EscrowConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	EscrowDB     `yaml:"escrow_db"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	Escrow       `yaml:"escrow"`
	Migrations   `yaml:"migrations"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type EscrowDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type Escrow struct {
	OwnerAddress      string        `yaml:"owner_address"`
	ArbitratorAddress string        `yaml:"arbitrator_address"`
	AutoReleaseWindow time.Duration `yaml:"auto_release_window" env-default:"168h"`
	MaxPageLimit      int           `yaml:"max_page_limit" env-default:"100"`
}

type Migrations struct {
	Path string `yaml:"path"`
}

func MustLoad() *EscrowConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ESCROW_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ESCROW_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg EscrowConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
