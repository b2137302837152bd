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

// parseServerFlags parses the server's configuration flags.
//
// Flags:
//
//	-a listen address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "12h")
//	-request-timeout request timeout (e.g., "30s", "1m")
func parseServerFlags() (*ServerConfig, error) {
	var listenAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration

	flag.Var(&listenAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 12h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &ServerConfig{
		App: ServerApp{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: ServerStorage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    listenAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// parseAgentFlags parses the agent's configuration flags.
//
// Flags:
//
//	-remote remote document store address
//	-d local database file path
//	-device-id device identifier
//	-device-key device secret
//	-c/-config json file path with configs
//	-sync-interval background sync cadence (e.g., "5m")
func parseAgentFlags() (*AgentConfig, error) {
	var remoteAddress string
	var localDSN string
	var deviceID string
	var deviceKey string
	var deviceLabel string
	var jsonConfigPath string
	var syncInterval time.Duration

	flag.StringVar(&remoteAddress, "remote", "", "Remote document store address")
	flag.StringVar(&localDSN, "d", "", "Local database file path")
	flag.StringVar(&deviceID, "device-id", "", "Device identifier")
	flag.StringVar(&deviceKey, "device-key", "", "Device secret key")
	flag.StringVar(&deviceLabel, "device-label", "", "Device label")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")

	flag.Parse()

	return &AgentConfig{
		Device: Device{
			ID:    deviceID,
			Key:   deviceKey,
			Label: deviceLabel,
		},
		Storage: AgentStorage{
			DSN: localDSN,
		},
		Adapter: AgentAdapter{
			HTTPAddress: remoteAddress,
		},
		Sync: Sync{
			Interval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the
// NetAddress. It validates the port range, checks IP correctness unless host
// is "localhost", and returns an error if the format or values are invalid.
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
