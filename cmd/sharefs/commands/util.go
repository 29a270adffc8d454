package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmos91/sharefs/internal/cli/output"
	"github.com/marmos91/sharefs/internal/cli/prompt"
	"github.com/marmos91/sharefs/internal/logger"
	"github.com/marmos91/sharefs/internal/telemetry"
	"github.com/marmos91/sharefs/pkg/api/handlers"
	"github.com/marmos91/sharefs/pkg/apiclient"
	"github.com/marmos91/sharefs/pkg/config"
	"github.com/marmos91/sharefs/pkg/sharefs"
)

// connectShare opens the configured share. Tests replace it to share one
// in-memory server across commands.
var connectShare = func(ctx context.Context, cfg *config.Config, m sharefs.Metrics) (*sharefs.Conn, error) {
	return cfg.Share.Connect(ctx, m)
}

// loadConfig loads the configuration, applies the connection flags and
// initializes the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if Flags.ConfigFile != "" {
		cfg, err = config.MustLoad(Flags.ConfigFile)
	} else {
		cfg, err = config.Load("")
	}
	if err != nil {
		return nil, err
	}

	applyShareFlags(cmd, &cfg.Share)
	if Flags.Verbose {
		cfg.Logging.Level = "DEBUG"
	}
	if err := InitLogger(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyShareFlags(cmd *cobra.Command, share *config.ShareConfig) {
	flags := cmd.Flags()
	if flags.Changed("share") {
		share.Address = Flags.Share
	}
	if flags.Changed("user") {
		share.Username = Flags.User
	}
	if flags.Changed("password") {
		share.Password = Flags.Password
	}
	if flags.Changed("domain") {
		share.Domain = Flags.Domain
	}
}

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	loggerCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if err := logger.Init(loggerCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// telemetryConfig maps the configuration onto the tracer and profiler.
func telemetryConfig(cfg *config.Config) telemetry.Config {
	return telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "sharefs",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
		Profiling: telemetry.ProfilingConfig{
			Enabled:      cfg.Telemetry.Profiling.Enabled,
			Endpoint:     cfg.Telemetry.Profiling.Endpoint,
			ProfileTypes: cfg.Telemetry.Profiling.ProfileTypes,
			Tags:         map[string]string{"share": cfg.Share.Address},
		},
	}
}

// promptPassword asks for the share password when a user is configured
// without one and stdin is a terminal. Guest logins keep the empty password.
func promptPassword(share *config.ShareConfig) error {
	if share.Username == "" || share.Password != "" || !prompt.IsTerminal(os.Stdin) {
		return nil
	}
	pw, err := prompt.Password(fmt.Sprintf("Password for %s", share.Principal()))
	if err != nil {
		return err
	}
	share.Password = pw
	return nil
}

// withConn runs fn against a freshly connected share and closes it after.
// With --gateway the share is reached through the HTTP gateway instead.
func withConn(cmd *cobra.Command, fn func(ctx context.Context, fs handlers.FS) error) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	shutdown, err := telemetry.Init(ctx, telemetryConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if serr := shutdown(context.Background()); serr != nil {
			logger.Warn("telemetry shutdown error", logger.Err(serr))
		}
	}()

	if Flags.Gateway != "" {
		lc := logger.NewLogContext("").WithOperation(cmd.Name()).WithShare(Flags.Gateway)
		ctx = logger.WithContext(ctx, lc)

		gw, err := dialGateway(ctx, Flags.Gateway, gatewayToken())
		if err != nil {
			return err
		}
		return fn(ctx, gw)
	}

	if err := promptPassword(&cfg.Share); err != nil {
		return err
	}

	lc := logger.NewLogContext("").WithOperation(cmd.Name()).WithShare(cfg.Share.Address)
	ctx = logger.WithContext(ctx, lc)

	conn, err := connectShare(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, conn)
}

// gatewayShare is a share reached through the HTTP gateway.
type gatewayShare struct {
	*apiclient.Client
	root string
}

func (g gatewayShare) Root() string { return g.root }

// dialGateway checks that the gateway is ready and learns its share root.
func dialGateway(ctx context.Context, baseURL, token string) (gatewayShare, error) {
	client := apiclient.New(baseURL).WithToken(token)
	health, err := client.Ready(ctx)
	if err != nil {
		return gatewayShare{}, fmt.Errorf("gateway %s not ready: %w", baseURL, err)
	}
	logger.DebugCtx(ctx, "using gateway", logger.Address(baseURL), logger.Share(health.Data["share"]))
	return gatewayShare{Client: client, root: health.Data["share"]}, nil
}

func gatewayToken() string {
	if Flags.Token != "" {
		return Flags.Token
	}
	return os.Getenv(config.EnvPrefix + "_GATEWAY_TOKEN")
}

// newPrinter returns a printer for the -o flag writing to the command's
// stdout.
func newPrinter(cmd *cobra.Command) (*output.Printer, error) {
	format, err := output.ParseFormat(Flags.Output)
	if err != nil {
		return nil, err
	}
	color := !Flags.NoColor && prompt.IsTerminal(os.Stdout) && cmd.OutOrStdout() == os.Stdout
	return output.NewPrinter(cmd.OutOrStdout(), format, color), nil
}
