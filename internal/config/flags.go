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
//	-c/-config json file path with configs
//	-session-ttl session token lifetime (e.g., "24h")
//	-reset-token-ttl password-reset token lifetime (e.g., "1h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-catalog-base-url catalog API root URL
//	-catalog-api-key catalog API key
//	-catalog-timeout catalog lookup timeout (e.g., "5s")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var sessionTTL time.Duration
	var resetTokenTTL time.Duration
	var requestTimeout time.Duration
	var catalogBaseURL string
	var catalogAPIKey string
	var catalogTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&sessionTTL, "session-ttl", 0, "Session token lifetime (e.g., 24h)")
	flag.DurationVar(&resetTokenTTL, "reset-token-ttl", 0, "Password-reset token lifetime (e.g., 1h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&catalogBaseURL, "catalog-base-url", "", "Catalog API root URL")
	flag.StringVar(&catalogAPIKey, "catalog-api-key", "", "Catalog API key")
	flag.DurationVar(&catalogTimeout, "catalog-timeout", 0, "Catalog lookup timeout (e.g., 5s)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			SessionTTL:    sessionTTL,
			ResetTokenTTL: resetTokenTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Catalog: Catalog{
			BaseURL: catalogBaseURL,
			APIKey:  catalogAPIKey,
			Timeout: catalogTimeout,
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

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
