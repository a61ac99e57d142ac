package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/koungkub/fcm-push-notification/internal/client"
	"github.com/spf13/cobra"
)

func newSendCommand(opts *options) *cobra.Command {
	var (
		title   string
		body    string
		tokens  []string
		data    []string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one notification to a set of FCM tokens",
		Long: `Send one notification to a set of FCM tokens and print the delivery data,
or false when the backend reports no successful delivery.

Examples:
  pushctl send --host push.example.com --title "Hi" --body "There" --token abc --token def
  pushctl send --host localhost --variant api --title "Hi" --body "There" --token abc --data order_id=42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}

			payload, err := parseData(data)
			if err != nil {
				return err
			}

			c, err := client.NewNotificationClient(client.NotificationClientParams{
				Config: cfg,
				Logger: opts.logger(cmd.ErrOrStderr()),
			})
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			delivery, ok, err := c.SendNotification(ctx, title, body, tokens, payload)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "false")
				return nil
			}

			out, err := json.Marshal(delivery)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Notification title")
	cmd.Flags().StringVar(&body, "body", "", "Notification body")
	cmd.Flags().StringArrayVar(&tokens, "token", nil, "FCM registration token (repeatable)")
	cmd.Flags().StringArrayVar(&data, "data", nil, "Data key-value pair in format key=value (repeatable; numbers and booleans are typed)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up after this long (0 waits indefinitely)")

	return cmd
}

func parseData(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(pairs))
	for _, kv := range pairs {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid data format: %s (expected key=value)", kv)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			out[key] = floatVal
		} else if boolVal, err := strconv.ParseBool(value); err == nil {
			out[key] = boolVal
		} else {
			out[key] = value
		}
	}
	return out, nil
}
