// Command client is a small command-line client of the go-crud-keeper API.
//
// Usage:
//
//	client [-a address] [-token token] [-timeout 15s] <command> [args...]
//
// The token may also be given in the CRUD_KEEPER_TOKEN environment variable.
// Replies are printed as indented JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-crud-keeper/internal/adapter"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/models"
)

const tokenEnv = "CRUD_KEEPER_TOKEN"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

var errUsage = errors.New("usage")

const usage = `commands:
  version
  register <username> <email> <password> [role]
  login <username> <password>
  create-user <username> <email> <password>
  users | user <id>
  update-user <id> <field>=<value>...
  delete-user <id>
  create-item <name> <price> <user_id> [description]
  items | item <id>
  update-item <id> <field>=<value>...
  delete-item <id>`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("go-crud-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	address := fs.String("a", "localhost:8080", "server address")
	token := fs.String("token", os.Getenv(tokenEnv), "bearer token")
	timeout := fs.Duration("timeout", 15*time.Second, "request timeout")
	logLevel := fs.String("log-level", "error", "log level")
	showBuild := fs.Bool("build-info", false, "print build information and exit")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	if *showBuild {
		return printJSON(out, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	}

	log := logger.New(os.Stderr, "go-crud-client", *logLevel)
	client, err := adapter.NewHTTPServerAdapter(*address, *timeout, log)
	if err != nil {
		return err
	}
	client.SetToken(*token)

	return dispatch(ctx, client, fs.Args(), out)
}

func dispatch(ctx context.Context, client adapter.ServerAdapter, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command", errUsage)
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "version":
		v, err := client.Version(ctx)
		return reply(models.VersionResponse{Version: v}, err)(out)

	case "register":
		if len(rest) < 3 || len(rest) > 4 {
			return fmt.Errorf("%w: register <username> <email> <password> [role]", errUsage)
		}
		req := models.UserRegisterRequest{Username: &rest[0], Email: &rest[1], Password: &rest[2]}
		if len(rest) == 4 {
			req.Role = &rest[3]
		}
		return reply(client.Register(ctx, req))(out)

	case "login":
		if len(rest) != 2 {
			return fmt.Errorf("%w: login <username> <password>", errUsage)
		}
		token, err := client.Login(ctx, models.LoginRequest{Username: &rest[0], Password: &rest[1]})
		return reply(models.LoginResponse{AccessToken: token.SignedString}, err)(out)

	case "create-user":
		if len(rest) != 3 {
			return fmt.Errorf("%w: create-user <username> <email> <password>", errUsage)
		}
		return reply(client.CreateUser(ctx, models.UserCreateRequest{Username: &rest[0], Email: &rest[1], Password: &rest[2]}))(out)

	case "users":
		return reply(client.ListUsers(ctx))(out)

	case "user", "delete-user", "item", "delete-item":
		if len(rest) != 1 {
			return fmt.Errorf("%w: %s <id>", errUsage, cmd)
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		switch cmd {
		case "user":
			return reply(client.GetUser(ctx, id))(out)
		case "item":
			return reply(client.GetItem(ctx, id))(out)
		case "delete-user":
			return client.DeleteUser(ctx, id)
		default:
			return client.DeleteItem(ctx, id)
		}

	case "update-user":
		id, fields, err := parseUpdate(cmd, rest)
		if err != nil {
			return err
		}
		req, err := userUpdate(fields)
		if err != nil {
			return err
		}
		return reply(client.UpdateUser(ctx, id, req))(out)

	case "create-item":
		if len(rest) < 3 || len(rest) > 4 {
			return fmt.Errorf("%w: create-item <name> <price> <user_id> [description]", errUsage)
		}
		price, err := strconv.ParseInt(rest[1], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: price must be an integer", errUsage)
		}
		userID, err := parseID(rest[2])
		if err != nil {
			return err
		}
		req := models.ItemCreateRequest{Name: &rest[0], Price: &price, UserID: &userID}
		if len(rest) == 4 {
			req.Description = &rest[3]
		}
		return reply(client.CreateItem(ctx, req))(out)

	case "items":
		return reply(client.ListItems(ctx))(out)

	case "update-item":
		id, fields, err := parseUpdate(cmd, rest)
		if err != nil {
			return err
		}
		req, err := itemUpdate(fields)
		if err != nil {
			return err
		}
		return reply(client.UpdateItem(ctx, id, req))(out)

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// reply prints v, or returns err when the call failed. It is shaped so that
// reply(client.Call(ctx))(out) works for any (T, error) result.
func reply[T any](v T, err error) func(io.Writer) error {
	return func(out io.Writer) error {
		if err != nil {
			return describe(err)
		}
		return printJSON(out, v)
	}
}

// describe adds the server's field messages to err.
func describe(err error) error {
	var apiErr *adapter.APIError
	if errors.As(err, &apiErr) && len(apiErr.Details) > 0 && string(apiErr.Details) != "null" {
		return fmt.Errorf("%w %s", err, apiErr.Details)
	}
	return err
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", errUsage, raw)
	}
	return id, nil
}

// parseUpdate reads "<id> field=value..." arguments.
func parseUpdate(cmd string, args []string) (int64, map[string]string, error) {
	if len(args) < 1 {
		return 0, nil, fmt.Errorf("%w: %s <id> <field>=<value>...", errUsage, cmd)
	}
	id, err := parseID(args[0])
	if err != nil {
		return 0, nil, err
	}

	fields := make(map[string]string, len(args)-1)
	for _, kv := range args[1:] {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return 0, nil, fmt.Errorf("%w: %q is not field=value", errUsage, kv)
		}
		fields[key] = value
	}
	return id, fields, nil
}

func userUpdate(fields map[string]string) (models.UserUpdateRequest, error) {
	var req models.UserUpdateRequest
	for key, value := range fields {
		switch key {
		case "username":
			req.Username = &value
		case "email":
			req.Email = &value
		case "password":
			req.Password = &value
		default:
			return req, fmt.Errorf("%w: unknown user field %q", errUsage, key)
		}
	}
	return req, nil
}

func itemUpdate(fields map[string]string) (models.ItemUpdateRequest, error) {
	var req models.ItemUpdateRequest
	for key, value := range fields {
		switch key {
		case "name":
			req.Name = &value
		case "description":
			req.Description = &value
		case "price":
			price, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return req, fmt.Errorf("%w: price must be an integer", errUsage)
			}
			req.Price = &price
		default:
			return req, fmt.Errorf("%w: unknown item field %q", errUsage, key)
		}
	}
	return req, nil
}
