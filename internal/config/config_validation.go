// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Anton Yakimov

package config

import "time"

// Fallback values applied after merging when a setting was not supplied by
// any source. Upload limits follow the original deployment defaults.
const (
	defaultHTTPAddress          = "0.0.0.0:8080"
	defaultRequestTimeout       = 30 * time.Second
	defaultUploadDir            = "./uploads"
	defaultMaxFileSize          = 10 << 20 // 10 MiB
	defaultTokenIssuer          = "fielddoc"
	defaultAccessTokenDuration  = 15 * time.Minute
	defaultRefreshTokenDuration = 7 * 24 * time.Hour
)

var (
	defaultAllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}
	defaultAllowedVideoTypes = []string{"video/mp4", "video/webm"}
)

// applyDefaults fills zero-valued fields of the merged configuration with
// their documented defaults. Secrets have no default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Storage.Files.UploadDir == "" {
		cfg.Storage.Files.UploadDir = defaultUploadDir
	}
	if cfg.Storage.Files.MaxFileSize == 0 {
		cfg.Storage.Files.MaxFileSize = defaultMaxFileSize
	}
	if len(cfg.Storage.Files.AllowedImageTypes) == 0 {
		cfg.Storage.Files.AllowedImageTypes = defaultAllowedImageTypes
	}
	if len(cfg.Storage.Files.AllowedVideoTypes) == 0 {
		cfg.Storage.Files.AllowedVideoTypes = defaultAllowedVideoTypes
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = defaultTokenIssuer
	}
	if cfg.Auth.AccessTokenDuration == 0 {
		cfg.Auth.AccessTokenDuration = defaultAccessTokenDuration
	}
	if cfg.Auth.RefreshTokenDuration == 0 {
		cfg.Auth.RefreshTokenDuration = defaultRefreshTokenDuration
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.AccessTokenSignKey == "" || cfg.Auth.RefreshTokenSignKey == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.Storage.Files.MaxFileSize < 0 {
		return ErrInvalidFilesConfigs
	}

	return nil
}
