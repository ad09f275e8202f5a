package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-photo-db legacy photo subsystem SQLite path
//	-upload-dir upload root directory
//	-max-file-size maximum upload size in bytes
//	-c/-config json file path with configs
//	-access-token-sign-key access token signing key
//	-refresh-token-sign-key refresh token signing key
//	-token-issuer token issuer name
//	-access-token-duration access token duration (e.g., "15m")
//	-refresh-token-duration refresh token duration (e.g., "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var photoDatabaseDSN string
	var uploadDir string
	var maxFileSize int64
	var jsonConfigPath string
	var accessTokenSignKey string
	var refreshTokenSignKey string
	var tokenIssuer string
	var accessTokenDuration time.Duration
	var refreshTokenDuration time.Duration
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&photoDatabaseDSN, "photo-db", "", "Legacy photo SQLite database path")
	flag.StringVar(&uploadDir, "upload-dir", "", "Upload root directory")
	flag.Int64Var(&maxFileSize, "max-file-size", 0, "Maximum upload size in bytes")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&accessTokenSignKey, "access-token-sign-key", "", "Access token signing key")
	flag.StringVar(&refreshTokenSignKey, "refresh-token-sign-key", "", "Refresh token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&accessTokenDuration, "access-token-duration", 0, "Access token duration (e.g., 15m)")
	flag.DurationVar(&refreshTokenDuration, "refresh-token-duration", 0, "Refresh token duration (e.g., 168h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		Auth: Auth{
			AccessTokenSignKey:   accessTokenSignKey,
			RefreshTokenSignKey:  refreshTokenSignKey,
			TokenIssuer:          tokenIssuer,
			AccessTokenDuration:  accessTokenDuration,
			RefreshTokenDuration: refreshTokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			PhotoDB: PhotoDB{
				DSN: photoDatabaseDSN,
			},
			Files: Files{
				UploadDir:   uploadDir,
				MaxFileSize: maxFileSize,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
