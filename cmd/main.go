package main

import (
	"fmt"
	"os"

	"github.com/Abraxas-365/relaymatch/pkg/config"
	"github.com/Abraxas-365/relaymatch/pkg/logx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "relay"

var (
	// Used for flags.
	cfgFile string
	v       = config.New()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "relay matches candidates and jobs by embedding similarity, skill overlap and ikigai mission",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig()
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is environment variables only)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	v.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(workerCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	}

	level := logx.ParseLevel(v.GetString("log.level"))
	if v.GetBool("debug") {
		level = logx.LevelDebug
	}
	jsonLogs := v.GetBool("json") || v.GetString("log.format") == "json"

	return logx.Configure(jsonLogs, level)
}

// loadConfig unmarshals the populated viper instance and logs warnings
func loadConfig(vp *viper.Viper) (*config.Config, error) {
	cfg, err := config.FromViper(vp)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Validate() {
		logx.Warn(w)
	}
	return cfg, nil
}
