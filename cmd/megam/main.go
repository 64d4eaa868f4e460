// Command megam issues signed calls against a Megam gateway.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rajesh-rajagopal/megam-api/api"
	"github.com/rajesh-rajagopal/megam-api/config"
	"github.com/rajesh-rajagopal/megam-api/jsoncompat"
	"github.com/rajesh-rajagopal/megam-api/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "megam",
		Short:         "Talk to a Megam gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "settings file (default: MEGAM_* environment)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "off", "log level (trace, debug, info, warn, error, off)")

	root.AddCommand(newVersionCmd(), newRequestCmd(&flags))

	return root
}

func newVersionCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			switch output {
			case "json":
				s, err := info.ToJSONIndent()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
			case "short":
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
			case "text", "":
				fmt.Fprintln(cmd.OutOrStdout(), info.Text())
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, short)")
	return cmd
}

func newRequestCmd(flags *rootFlags) *cobra.Command {
	var (
		data   string
		output string
		reset  bool
	)
	cmd := &cobra.Command{
		Use:   "request METHOD PATH",
		Short: "Send one signed request and print the decoded answer",
		Example: `  megam request GET /accounts/ops@example.com
  megam request POST /domains/content --data '{"name":"megam.io"}' -o yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(flags.configPath)
			if err != nil {
				return err
			}

			logger := hclog.New(&hclog.LoggerOptions{
				Name:   "megam",
				Level:  hclog.LevelFromString(flags.logLevel),
				Output: cmd.ErrOrStderr(),
			})

			opts := []api.Option{api.WithLogger(logger)}
			if reset {
				opts = append(opts, api.WithResetFlag())
			}
			client, err := api.NewFromSettings(settings, opts...)
			if err != nil {
				return err
			}

			p := api.Params{Method: strings.ToUpper(args[0]), Path: args[1]}
			if data != "" {
				p.Body = []byte(data)
				p.Header = http.Header{"Content-Type": []string{"application/json"}}
			}
			resp, err := client.Request(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printValue(cmd.OutOrStdout(), resp.Value, output)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, yaml)")
	cmd.Flags().BoolVar(&reset, "reset", false, "skip the credential check (account signup, password reset)")
	return cmd
}

func loadSettings(path string) (config.Settings, error) {
	if path == "" {
		return config.FromEnv()
	}
	c, err := config.LoadSettings(path, config.WithoutWatch[config.Settings]())
	if err != nil {
		return config.Settings{}, err
	}
	return c.Get(), nil
}

func printValue(w io.Writer, v any, output string) error {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}

	b, err := jsoncompat.EncodePretty(v, "  ")
	if err != nil {
		return err
	}
	switch output {
	case "json", "":
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		var doc any
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return err
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
