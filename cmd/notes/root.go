package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gonotepad/internal/notes"
	"gonotepad/internal/notes/adapters/cli"
	"gonotepad/internal/notes/adapters/notify"
	"gonotepad/internal/notes/app"
	"gonotepad/internal/notes/config"
	"gonotepad/pkg/logger"
)

const (
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInvalidID            = "invalid note id"
	ErrCloseStorage         = "failed to close storage"
)

// runner общее состояние команд: потоки ввода-вывода и загруженная конфигурация.
type runner struct {
	in         io.Reader
	out        io.Writer
	errOut     io.Writer
	configPath string
	cfg        *config.Config
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	r := &runner{in: stdin, out: stdout, errOut: stderr}

	root := &cobra.Command{
		Use:   "notes",
		Short: "Keep short notes in a local or remote store",
		Long: `notes keeps a list of titled notes in sqlite, postgres or redis.
Every command reloads the list from storage first, so several processes
can share one store. "notes serve" exposes the same actions over HTTP.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: r.setup,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&r.configPath, "config", "c", "",
		"configuration file (defaults to $"+config.EnvConfigPath+", then environment only)")

	root.AddCommand(
		r.listCmd(),
		r.showCmd(),
		r.addCmd(),
		r.editCmd(),
		r.deleteCmd(),
		r.exportCmd(),
		r.importCmd(),
		r.serveCmd(),
		r.tokenCmd(),
	)

	return root
}

// setup загружает конфигурацию и заменяет стартовый логгер настроенным.
func (r *runner) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, r.configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrLoadConfig, err)
	}

	finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrInitLoggerWithConfig, err)
	}
	logger.SetGlobalLogger(finalLogger)

	r.cfg = cfg
	cmd.SetContext(logger.NewContext(ctx, finalLogger))
	return nil
}

// session открывает хранилище, загружает заметки и выполняет action.
// Итоговое представление выводится в stdout, если render установлен.
func (r *runner) session(ctx context.Context, render bool, action func(ctx context.Context, svc *notes.Service) error) (err error) {
	table := cli.NewTable(r.out)

	var opts []app.ControllerOption
	if render {
		opts = append(opts, app.WithRenderer(table))
	}

	svc, err := notes.NewService(ctx, r.cfg, notify.NewConsole(r.errOut), opts...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := svc.Close(ctx); closeErr != nil {
			logger.Log(ctx).Error(ctx, ErrCloseStorage, zap.Error(closeErr))
			if err == nil {
				err = fmt.Errorf("%s: %w", ErrCloseStorage, closeErr)
			}
		}
	}()

	if _, err := svc.Controller.Load(ctx); err != nil {
		return err
	}

	if action != nil {
		if err := action(ctx, svc); err != nil {
			return err
		}
	}

	return table.Flush(ctx)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s: %q", ErrInvalidID, raw)
	}
	return id, nil
}
