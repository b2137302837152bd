package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

type serverJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

type agentJSONConfig struct {
	Device struct {
		ID    string `json:"id"`
		Key   string `json:"key"`
		Label string `json:"label"`
	} `json:"device,omitempty"`

	Storage struct {
		DSN string `json:"dsn"`
	} `json:"storage,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Sync struct {
		StagingMaxDocs     int      `json:"staging_max_docs"`
		StagingMaxBytes    int64    `json:"staging_max_bytes"`
		RetryBaseDelay     Duration `json:"retry_base_delay"`
		RetryMaxDelay      Duration `json:"retry_max_delay"`
		RetryMaxAttempts   int      `json:"retry_max_attempts"`
		PushTimeout        Duration `json:"push_timeout"`
		SessionPushTimeout Duration `json:"session_push_timeout"`
		SessionConcurrency int      `json:"session_concurrency"`
		Interval           Duration `json:"interval"`
		ProbeInterval      Duration `json:"probe_interval"`
		TokenLeeway        Duration `json:"token_leeway"`
	} `json:"sync,omitempty"`
}

func parseServerJSON(jsonFilePath string) (*ServerConfig, error) {
	var jsonCfg serverJSONConfig
	if err := decodeJSONFile(jsonFilePath, &jsonCfg); err != nil {
		return nil, err
	}

	return &ServerConfig{
		App: ServerApp{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
		},
		Storage: ServerStorage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}, nil
}

func parseAgentJSON(jsonFilePath string) (*AgentConfig, error) {
	var jsonCfg agentJSONConfig
	if err := decodeJSONFile(jsonFilePath, &jsonCfg); err != nil {
		return nil, err
	}

	return &AgentConfig{
		Device: Device{
			ID:    jsonCfg.Device.ID,
			Key:   jsonCfg.Device.Key,
			Label: jsonCfg.Device.Label,
		},
		Storage: AgentStorage{
			DSN: jsonCfg.Storage.DSN,
		},
		Adapter: AgentAdapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Sync: Sync{
			StagingMaxDocs:     jsonCfg.Sync.StagingMaxDocs,
			StagingMaxBytes:    jsonCfg.Sync.StagingMaxBytes,
			RetryBaseDelay:     time.Duration(jsonCfg.Sync.RetryBaseDelay),
			RetryMaxDelay:      time.Duration(jsonCfg.Sync.RetryMaxDelay),
			RetryMaxAttempts:   jsonCfg.Sync.RetryMaxAttempts,
			PushTimeout:        time.Duration(jsonCfg.Sync.PushTimeout),
			SessionPushTimeout: time.Duration(jsonCfg.Sync.SessionPushTimeout),
			SessionConcurrency: jsonCfg.Sync.SessionConcurrency,
			Interval:           time.Duration(jsonCfg.Sync.Interval),
			ProbeInterval:      time.Duration(jsonCfg.Sync.ProbeInterval),
			TokenLeeway:        time.Duration(jsonCfg.Sync.TokenLeeway),
		},
	}, nil
}

func decodeJSONFile(path string, target any) error {
	jsonFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	if err := json.NewDecoder(jsonFile).Decode(target); err != nil {
		return fmt.Errorf("error decoding json configs: %w", err)
	}

	return nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as plain nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	default:
		return errors.New("invalid duration")
	}
}
