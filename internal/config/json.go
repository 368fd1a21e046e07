package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// fileConfig is the layout of the JSON configuration file. It is kept apart
// from [StructuredConfig] so that durations can be written as "30s".
type fileConfig struct {
	App     fileApp     `json:"app"`
	Storage fileStorage `json:"storage"`
	Server  fileServer  `json:"server"`
}

type fileApp struct {
	TokenSignKey     string   `json:"token_sign_key"`
	TokenIssuer      string   `json:"token_issuer"`
	TokenDuration    Duration `json:"token_duration"`
	PasswordHashCost int      `json:"password_hash_cost"`
	Version          string   `json:"version"`
	LogLevel         string   `json:"log_level"`
}

type fileStorage struct {
	DB struct {
		DSN string `json:"dsn"`
	} `json:"db"`
}

type fileServer struct {
	HTTPAddress    string   `json:"http_address"`
	GRPCAddress    string   `json:"grpc_address"`
	RequestTimeout Duration `json:"request_timeout"`
}

func parseJSON(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return fc.structured(), nil
}

func (fc fileConfig) structured() *StructuredConfig {
	cfg := &StructuredConfig{}

	cfg.App = App{
		TokenSignKey:     fc.App.TokenSignKey,
		TokenIssuer:      fc.App.TokenIssuer,
		TokenDuration:    time.Duration(fc.App.TokenDuration),
		PasswordHashCost: fc.App.PasswordHashCost,
		Version:          fc.App.Version,
		LogLevel:         fc.App.LogLevel,
	}
	cfg.Storage.DB.DSN = fc.Storage.DB.DSN
	cfg.Server = Server{
		HTTPAddress:    fc.Server.HTTPAddress,
		GRPCAddress:    fc.Server.GRPCAddress,
		RequestTimeout: time.Duration(fc.Server.RequestTimeout),
	}

	return cfg
}

// Duration reads either a Go duration string or a count of nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}

	ns, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid duration: %s", b)
	}
	*d = Duration(ns)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
