package mcwirecmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"gfx.cafe/gfx/mcwire/lib/config"
	"gfx.cafe/gfx/mcwire/lib/conn"
	"gfx.cafe/gfx/mcwire/lib/proto"
)

var rootCmd = &cobra.Command{
	Use: "mcwire",
	Long: `
	mcwire speaks the Java edition protocol (762) as a client
`,
	Example: `  $ mcwire status play.example.com
  $ mcwire login --username Steve localhost:25565
  `,

	SilenceUsage: true,
}

type globalFlags struct {
	config      string
	logLevel    string
	metricsAddr string
}

var flags globalFlags

func (T *globalFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&T.config, "config", "c", "", "path to a TOML config file")
	fs.StringVar(&T.logLevel, "log-level", "", "log level, overrides the config")
	fs.StringVar(&T.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
}

func init() {
	flags.register(rootCmd.PersistentFlags())
	rootCmd.AddCommand(statusCommand(), loginCommand())
}

// setup loads the config and logger and starts the metrics listener.
func setup(cmd *cobra.Command, args []string) (config.Config, *zap.Logger, error) {
	c, err := config.Load(flags.config)
	if err != nil {
		return c, nil, err
	}
	if len(args) > 0 {
		c.Server.Address = args[0]
	}
	if c.Server.Address == "" {
		return c, nil, errors.New("no server address")
	}
	if _, _, err = net.SplitHostPort(c.Server.Address); err != nil {
		c.Server.Address = net.JoinHostPort(c.Server.Address, "25565")
	}
	if flags.logLevel != "" {
		c.Log.Level = flags.logLevel
	}
	logger, err := c.Log.Logger()
	if err != nil {
		return c, nil, err
	}

	if flags.metricsAddr != "" {
		server := &http.Server{Addr: flags.metricsAddr, Handler: promhttp.Handler()}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener", zap.Error(err))
			}
		}()
		context.AfterFunc(cmd.Context(), func() {
			_ = server.Close()
		})
	}
	return c, logger, nil
}

func statusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <address>",
		Short: "Query a server's status and latency",
		Args:  cobra.MaximumNArgs(1),
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, logger, err := setup(cmd, args)
		if err != nil {
			return err
		}
		defer logger.Sync()

		options, err := c.Options(logger)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), c.Connection.DialTimeout+c.Connection.ReactorTimeout)
		defer cancel()

		result, err := conn.Ping(ctx, c.Server.Address, options)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "version:  %s (%d)\n", result.Status.Version.Name, result.Status.Version.Protocol)
		fmt.Fprintf(out, "players:  %d/%d\n", result.Status.Players.Online, result.Status.Players.Max)
		fmt.Fprintf(out, "motd:     %s\n", result.Status.Description)
		fmt.Fprintf(out, "latency:  %s\n", result.Latency.Round(time.Millisecond))
		return nil
	}
	return cmd
}

func loginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <address>",
		Short: "Log in and stay connected, logging every delivered packet",
		Args:  cobra.MaximumNArgs(1),
	}
	var username string
	var online bool
	fs := cmd.Flags()
	fs.StringVarP(&username, "username", "u", "", "player name, overrides the config")
	fs.BoolVar(&online, "online", false, "join the session for an online mode server")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		c, logger, err := setup(cmd, args)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if username != "" {
			c.Login.Username = username
		}
		if cmd.Flags().Changed("online") {
			c.Login.Online = online
		}
		if c.Login.Username == "" {
			return config.ErrNoUsername
		}
		profile, err := c.Login.ProfileUUID()
		if err != nil {
			return err
		}

		options, err := c.Options(logger)
		if err != nil {
			return err
		}
		options.Handler = func(state proto.State, packet proto.Packet) {
			logger.Info("packet",
				zap.Stringer("state", state),
				zap.Stringer("key", packet.Key()),
				zap.String("type", fmt.Sprintf("%T", packet)),
			)
		}

		ctx := cmd.Context()
		dialCtx, cancel := context.WithTimeout(ctx, c.Connection.DialTimeout)
		client, err := conn.Dial(dialCtx, c.Server.Address, options)
		cancel()
		if err != nil {
			return err
		}

		done := make(chan error, 1)
		go func() {
			done <- client.Run(ctx)
		}()
		if err = conn.Login(ctx, client, c.Login.Username, profile); err != nil {
			_ = client.Close()
			<-done
			return err
		}

		err = <-done
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return cmd
}

// Main runs the root command until it returns or the process is interrupted.
func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
