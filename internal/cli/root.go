// Package cli implementa o boardctl: listar, publicar e semear o 红黑榜 pelo terminal.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Werneck0live/lista-empresas/internal/apiclient"
	"github.com/Werneck0live/lista-empresas/internal/config"
	"github.com/Werneck0live/lista-empresas/internal/output"
)

// app guarda o que o PersistentPreRunE monta para os subcomandos.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	color   string

	log     *slog.Logger
	printer *output.Printer
	api     *apiclient.Client
}

// NewRootCmd monta a árvore de comandos; out/errOut permitem capturar a saída nos testes.
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "boardctl",
		Short: "红黑榜 command line client",
		Long: `boardctl talks to the same companies API the web board uses.

Example usage:
  boardctl list                      # 红榜 and 黑榜 for every industry
  boardctl list --industry 金融      # only one industry
  boardctl add --name X --comment Y  # post a new record
  boardctl seed                      # post the bundled sample records`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(out, errOut)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is .boardctl.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&a.color, "color", "auto", "color mode: auto, always, never")
	pf.String("api-url", config.DefaultAPIURL, "companies API base URL")
	pf.Duration("timeout", 10*time.Second, "API request timeout")

	_ = a.v.BindPFlag("api_url", pf.Lookup("api-url"))
	_ = a.v.BindPFlag("timeout", pf.Lookup("timeout"))

	root.AddCommand(newListCmd(a), newAddCmd(a), newSeedCmd(a))
	return root
}

func (a *app) setup(out, errOut io.Writer) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	if err := loadConfig(a.v, a.cfgFile); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	mode, err := output.ParseColorMode(a.color)
	if err != nil {
		return err
	}
	a.printer = output.NewPrinter(out, errOut, output.ResolveColors(mode, a.v.GetBool("colors")))

	apiURL := a.v.GetString("api_url")
	if err := validateURL(apiURL); err != nil {
		return err
	}
	a.api = apiclient.New(apiURL, a.v.GetDuration("timeout"), apiclient.WithLogger(a.log))

	a.log.Debug("configuration loaded", "api_url", apiURL, "config_file", a.v.ConfigFileUsed())
	return nil
}
