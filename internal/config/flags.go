package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
)

var (
	errPortRange = errors.New("port must be within 1-65535")
	errBadHost   = errors.New("host must be localhost or an IP address")
)

// NetAddress is a host:port pair usable as a [flag.Value]. An empty host
// binds every interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags builds a partial configuration from command-line arguments,
// program name excluded. Unset flags stay zero so that later sources win.
//
//	-a                   HTTP listen address, host:port
//	-grpc-address        gRPC health listen address, host:port
//	-d                   database DSN
//	-c, -config          JSON config file
//	-token-sign-key      HMAC key for access tokens
//	-token-issuer        iss claim
//	-token-duration      token lifetime, e.g. 1h
//	-password-hash-cost  bcrypt cost
//	-request-timeout     per-request deadline, e.g. 30s
//	-log-level           zerolog level
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		cfg        StructuredConfig
		httpAddr   NetAddress
		grpcAddr   NetAddress
		fs         = flag.NewFlagSet("go-crud-keeper", flag.ContinueOnError)
		app        = &cfg.App
		serverOpts = &cfg.Server
	)
	fs.SetOutput(io.Discard)

	fs.Var(&httpAddr, "a", "HTTP listen address host:port")
	fs.Var(&grpcAddr, "grpc-address", "gRPC health listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "database DSN")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file")
	fs.StringVar(&app.TokenSignKey, "token-sign-key", "", "token signing key")
	fs.StringVar(&app.TokenIssuer, "token-issuer", "", "token issuer")
	fs.DurationVar(&app.TokenDuration, "token-duration", 0, "token lifetime")
	fs.IntVar(&app.PasswordHashCost, "password-hash-cost", 0, "bcrypt cost")
	fs.DurationVar(&serverOpts.RequestTimeout, "request-timeout", 0, "per-request deadline")
	fs.StringVar(&app.LogLevel, "log-level", "", "log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	serverOpts.HTTPAddress = httpAddr.String()
	serverOpts.GRPCAddress = grpcAddr.String()

	return &cfg, nil
}

// String returns host:port, or "" for the zero address.
func (a *NetAddress) String() string {
	if *a == (NetAddress{}) {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return err
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return fmt.Errorf("port %q: %w", rawPort, err)
	}
	if port < 1 || port > 65535 {
		return errPortRange
	}
	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errBadHost
	}

	a.Host, a.Port = host, port
	return nil
}
