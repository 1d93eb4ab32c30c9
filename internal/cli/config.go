package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/viper"
)

// loadConfig lê .boardctl.yaml (diretório atual ou ~/.config/boardctl) e BOARDCTL_*.
// Arquivo ausente não é erro; flags explícitas vencem tudo.
func loadConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".boardctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/boardctl")
	}

	v.SetDefault("colors", true)

	v.SetEnvPrefix("BOARDCTL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return err
		}
	}
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute URL, got %q", raw)
	}
	return nil
}
