package cli

import (
	"fmt"

	"github.com/koungkub/fcm-push-notification/internal/client"
	"github.com/spf13/cobra"
)

func newURLCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Validate the configuration and print the API and send URLs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}

			c, err := client.New(cfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), c.APIURL())
			fmt.Fprintln(cmd.OutOrStdout(), c.SendURL())
			return nil
		},
	}
}
