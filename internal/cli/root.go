package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/kelseyhightower/envconfig"
	"github.com/koungkub/fcm-push-notification/internal/client"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	host     string
	protocol string
	port     int
	path     string
	policy   string
	variant  string
	verbose  bool
}

// NewRootCommand builds the pushctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "pushctl",
		Short:         "Send push notifications through a push backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.host, "host", "", "Push backend host name (env PUSH_API_HOST)")
	flags.StringVar(&opts.protocol, "protocol", client.DefaultProtocol, "URL scheme of the push backend")
	flags.IntVar(&opts.port, "port", client.DefaultPort, "Port of the push backend")
	flags.StringVar(&opts.path, "path", client.DefaultSendPath, "Path of the send endpoint")
	flags.StringVar(&opts.policy, "policy", client.DefaultSuccessPolicy.String(), "Success policy: status|success_count")
	flags.StringVar(&opts.variant, "variant", "", "Preset for protocol, port, path and policy: legacy|api")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log requests to stderr")

	root.AddCommand(
		newSendCommand(opts),
		newURLCommand(opts),
	)

	return root
}

// config resolves the client configuration. Explicit flags win over the
// variant preset, which wins over the environment and the named defaults.
func (o *options) config(cmd *cobra.Command) (client.Config, error) {
	cfg := client.DefaultConfig(o.host)
	if cfg.Host == "" {
		env, err := loadEnvironment()
		if err != nil {
			return client.Config{}, err
		}
		cfg.Host = env.Host
	}

	switch o.variant {
	case "":
	case "legacy":
		cfg = client.LegacyVariant.Config(cfg.Host)
	case "api":
		cfg = client.APIVariant.Config(cfg.Host)
	default:
		return client.Config{}, fmt.Errorf("unknown variant %q", o.variant)
	}

	flags := cmd.Flags()
	if o.variant == "" || flags.Changed("protocol") {
		cfg.Protocol = o.protocol
	}
	if o.variant == "" || flags.Changed("port") {
		cfg.Port = o.port
	}
	if o.variant == "" || flags.Changed("path") {
		cfg.SendPath = o.path
	}
	if o.variant == "" || flags.Changed("policy") {
		policy, err := client.ParseSuccessPolicy(o.policy)
		if err != nil {
			return client.Config{}, err
		}
		cfg.SuccessPolicy = policy
	}

	return cfg, nil
}

// environment holds the only variable pushctl reads; the rest of the
// endpoint comes from flags.
type environment struct {
	Host string `envconfig:"PUSH_API_HOST"`
}

func loadEnvironment() (environment, error) {
	var env environment
	if err := envconfig.Process("", &env); err != nil {
		return environment{}, &client.ConfigurationError{Field: "environment", Reason: "cannot be read", Cause: err}
	}
	return env, nil
}

func (o *options) logger(w io.Writer) *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	))
}

// Describe prefixes err with the kind of client failure it is.
func Describe(err error) string {
	var typed interface{ ErrorType() string }
	if errors.As(err, &typed) {
		return fmt.Sprintf("%s: %v", typed.ErrorType(), err)
	}
	return err.Error()
}
