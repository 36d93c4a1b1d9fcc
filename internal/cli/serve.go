package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/piwi3910/MachCost/internal/server"
)

type ServeOptions struct {
	GlobalOptions
	Address string
}

func NewCmdServe() *cobra.Command {
	o := &ServeOptions{GlobalOptions: DefaultGlobalOptions()}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the estimator HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			defer o.Close()
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ServeOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.Address, "address", "a", "", "Listen address (overrides http_server.address)")
}

func (o *ServeOptions) Run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	s, err := o.Store(ctx)
	if err != nil {
		return err
	}
	if c, ok := s.(interface{ Close() error }); ok {
		defer c.Close()
	}

	httpCfg := o.cfg.HTTPServer
	if o.Address != "" {
		httpCfg.Address = o.Address
	}
	o.logger.Info("starting api server",
		zap.String("env", o.cfg.Env),
		zap.String("store", o.cfg.Store.Backend))

	srv := server.New(server.Options{
		HTTP:       httpCfg,
		Branding:   o.cfg.Branding,
		Store:      s,
		Defaults:   o.AppConfig(),
		QuotesPath: o.cfg.QuotesPath(),
		Logger:     o.logger.Named("api_server"),
	})
	return srv.Run(ctx)
}
