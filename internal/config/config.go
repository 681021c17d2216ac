package config

import (
	"encoding/json"
	"os"
	"strings"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Backend  BackendConfig  `json:"backend"`
	Register RegisterConfig `json:"register"`
	Scanner  ScannerConfig  `json:"scanner"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
	// MetricsAddr, when set, exposes /metrics on its own listener.
	MetricsAddr string `json:"metrics_addr"`
}

type BackendConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type RegisterConfig struct {
	EmployeeCode   string `json:"employee_code"`
	StoreCode      string `json:"store_code"`
	PosNumber      int    `json:"pos_number"`
	TaxRatePercent int64  `json:"tax_rate_percent"`
}

type ScannerConfig struct {
	DecoderAddr string `json:"decoder_addr"`
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	if config.Register.TaxRatePercent == 0 {
		config.Register.TaxRatePercent = 10
	}
	config.Backend.BaseURL = strings.TrimRight(config.Backend.BaseURL, "/")

	return &config, nil
}
