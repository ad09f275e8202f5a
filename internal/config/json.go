package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly duration parsing for file-based configuration.
type StructuredJSONConfig struct {
	Auth struct {
		AccessTokenSignKey   string   `json:"access_token_sign_key"`
		RefreshTokenSignKey  string   `json:"refresh_token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		PhotoDB struct {
			DSN string `json:"dsn"`
		} `json:"photo_db,omitempty"`

		Files struct {
			UploadDir         string   `json:"upload_dir"`
			MaxFileSize       int64    `json:"max_file_size"`
			AllowedImageTypes []string `json:"allowed_image_types"`
			AllowedVideoTypes []string `json:"allowed_video_types"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			AccessTokenSignKey:   jsonCfg.Auth.AccessTokenSignKey,
			RefreshTokenSignKey:  jsonCfg.Auth.RefreshTokenSignKey,
			TokenIssuer:          jsonCfg.Auth.TokenIssuer,
			AccessTokenDuration:  time.Duration(jsonCfg.Auth.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.Auth.RefreshTokenDuration),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			PhotoDB: PhotoDB{
				DSN: jsonCfg.Storage.PhotoDB.DSN,
			},
			Files: Files{
				UploadDir:         jsonCfg.Storage.Files.UploadDir,
				MaxFileSize:       jsonCfg.Storage.Files.MaxFileSize,
				AllowedImageTypes: jsonCfg.Storage.Files.AllowedImageTypes,
				AllowedVideoTypes: jsonCfg.Storage.Files.AllowedVideoTypes,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
