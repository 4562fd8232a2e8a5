package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"droneVideoOps/internal/auth"
	"droneVideoOps/internal/cache"
	"droneVideoOps/internal/config"
	"droneVideoOps/internal/db"
	grpcserver "droneVideoOps/internal/grpc"
	"droneVideoOps/internal/logger"
	"droneVideoOps/internal/telemetry"
	"droneVideoOps/internal/workflow"
	"droneVideoOps/models"
	"droneVideoOps/repository"
)

// Version is set at build time.
var Version = "dev"

const shutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var devDefaults bool
	root := &cobra.Command{
		Use:           "opsd",
		Short:         "Drone videography operations backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")
	root.PersistentFlags().BoolVar(&devDefaults, "dev", false, "use a development JWT secret when JWT_SECRET is unset")

	loadConfig := func() (*config.Config, error) {
		if devDefaults {
			return config.LoadWithDefaults()
		}
		return config.Load()
	}

	root.AddCommand(
		newServeCommand(loadConfig),
		newMigrateCommand(loadConfig),
		newSeedAdminCommand(loadConfig),
		newTokenCommand(loadConfig),
	)
	return root
}

func newServeCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log.Info("configuration loaded", zap.Stringer("config", cfg))

	telemetry.ServiceVersion = Version
	shutdownTracing, err := telemetry.Init(ctx, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	d, err := db.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			log.Warn("close db", zap.Error(err))
		}
	}()

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer func() { _ = rdb.Close() }()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, serving from sqlite only", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancel()
	}

	store := repository.NewStore(d)
	wf := workflow.New(store,
		workflow.WithCache(cache.New(rdb, cfg.Redis.TTL, log)),
		workflow.WithLogger(log),
	)

	shutdown, err := grpcserver.StartGRPC(cfg, grpcserver.Deps{Store: store, Workflow: wf, Log: log})
	if err != nil {
		return fmt.Errorf("start grpc: %w", err)
	}
	log.Info("gRPC server listening", zap.String("addr", cfg.GRPC.Address))

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	var errs []error
	if err := shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("grpc shutdown: %w", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
	}
	return errors.Join(errs...)
}

func newMigrateCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending migrations and print the schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			// Open applies pending migrations.
			d, err := db.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer d.Close()
			v, err := db.Version(d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version %04d\n", v)
			return nil
		},
	}
	migrate.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			d, err := db.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer d.Close()
			if err := db.RollbackLast(d); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}
			v, err := db.Version(d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back to schema version %04d\n", v)
			return nil
		},
	})
	return migrate
}

// newSeedAdminCommand creates an admin login, or promotes an existing user.
func newSeedAdminCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-admin <username>",
		Short: "Create or promote an admin user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			d, err := db.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer d.Close()

			ctx := cmd.Context()
			users := repository.NewStore(d).Users
			username := args[0]
			u, err := users.GetByUsername(ctx, username)
			if err != nil {
				return fmt.Errorf("get user: %w", err)
			}
			if u == nil {
				if _, err := users.Create(ctx, username, models.RoleAdmin); err != nil {
					return fmt.Errorf("create admin: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created admin %s\n", username)
				return nil
			}
			if err := users.UpdateRoleByUsername(ctx, username, models.RoleAdmin); err != nil {
				return fmt.Errorf("promote admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "promoted %s to admin\n", username)
			return nil
		},
	}
}

// newTokenCommand mints a bearer token for an existing login, for operators and scripts.
func newTokenCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		kind string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token <username>",
		Short: "Issue a signed bearer token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			tok, err := auth.Issue(cfg.Auth.JWTSecret, auth.Principal{Name: args[0], Kind: kind}, ttl, time.Now())
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", auth.KindAdmin, "principal kind: admin, client, pilot or editor")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime (0 for no expiry)")
	return cmd
}
