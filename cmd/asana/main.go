package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap/zapcore"

	"github.com/NirGallner/asana-go/internal/app"
	"github.com/NirGallner/asana-go/internal/config"
	"github.com/NirGallner/asana-go/internal/logger"
	"github.com/NirGallner/asana-go/pkg/asana"
)

const usage = `usage: asana [-fields a,b] [-pretty] <command>

commands:
  me
  workspaces
  tasks -project <gid>
  task get <gid>
  task create -workspace <gid> -name <name> [-notes <text>]
  task update <gid> -assignee <gid|me> [-name <name>]
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// stdout carries command output
	log := logger.NewZapLogger(logger.New(cfg.LogLevel, zapcore.Lock(os.Stderr)).Desugar())

	client, err := app.NewAsanaClient(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return execute(ctx, client, os.Args[1:], os.Stdout)
}

// common holds the flags every command shares.
type common struct {
	fields []string
	pretty bool
}

func execute(ctx context.Context, client *asana.Client, args []string, out io.Writer) error {
	global := flag.NewFlagSet("asana", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	fields := global.String("fields", "", "comma-separated opt_fields")
	pretty := global.Bool("pretty", false, "ask for and print indented JSON")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w\n%s", err, usage)
	}

	opts := common{fields: splitList(*fields), pretty: *pretty}
	rest := global.Args()
	if len(rest) == 0 {
		return errors.New(usage)
	}

	var (
		result any
		err    error
	)
	switch rest[0] {
	case "me":
		result, err = apply(client.Users.Me(), opts).Execute(ctx)
	case "workspaces":
		result, err = applyList(client.Workspaces.FindAll(), opts).All(ctx)
	case "tasks":
		result, err = listTasks(ctx, client, rest[1:], opts)
	case "task":
		result, err = taskCommand(ctx, client, rest[1:], opts)
	default:
		return fmt.Errorf("unknown command %q\n%s", rest[0], usage)
	}
	if err != nil {
		return err
	}
	return printJSON(out, result, opts.pretty)
}

func listTasks(ctx context.Context, client *asana.Client, args []string, opts common) ([]asana.Task, error) {
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	project := fs.String("project", "", "project gid")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *project == "" {
		return nil, errors.New("tasks: -project is required")
	}
	return applyList(client.Tasks.FindByProject(*project), opts).All(ctx)
}

func taskCommand(ctx context.Context, client *asana.Client, args []string, opts common) (*asana.Task, error) {
	if len(args) == 0 {
		return nil, errors.New("task: expected get, create or update")
	}

	switch args[0] {
	case "get":
		if len(args) < 2 {
			return nil, errors.New("task get: gid is required")
		}
		return apply(client.Tasks.FindByID(args[1]), opts).Execute(ctx)

	case "create":
		fs := flag.NewFlagSet("task create", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		workspace := fs.String("workspace", "", "workspace gid")
		name := fs.String("name", "", "task name")
		notes := fs.String("notes", "", "task notes")
		if err := fs.Parse(args[1:]); err != nil {
			return nil, err
		}
		if *workspace == "" || *name == "" {
			return nil, errors.New("task create: -workspace and -name are required")
		}
		req := client.Tasks.CreateInWorkspace(*workspace).Data("name", *name)
		if *notes != "" {
			req.Data("notes", *notes)
		}
		return apply(req, opts).Execute(ctx)

	case "update":
		if len(args) < 2 || strings.HasPrefix(args[1], "-") {
			return nil, errors.New("task update: gid is required")
		}
		fs := flag.NewFlagSet("task update", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		assignee := fs.String("assignee", "", "assignee gid or me")
		name := fs.String("name", "", "new task name")
		if err := fs.Parse(args[2:]); err != nil {
			return nil, err
		}
		if *assignee == "" {
			return nil, errors.New("task update: -assignee is required")
		}
		req := client.Tasks.Update(args[1]).Data("assignee", *assignee)
		if *name != "" {
			req.Data("name", *name)
		}
		return apply(req, opts).Execute(ctx)
	}
	return nil, fmt.Errorf("task: unknown subcommand %q", args[0])
}

func apply[T any](req *asana.Request[T], opts common) *asana.Request[T] {
	if len(opts.fields) > 0 {
		req.Option("fields", opts.fields)
	}
	if opts.pretty {
		req.Option("pretty", true)
	}
	return req
}

func applyList[T any](coll *asana.Collection[T], opts common) *asana.Collection[T] {
	if len(opts.fields) > 0 {
		coll.Option("fields", opts.fields)
	}
	if opts.pretty {
		coll.Option("pretty", true)
	}
	return coll
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
