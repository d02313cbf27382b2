package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rash-sh/relprep/internal/config"
	"github.com/rash-sh/relprep/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "relprep",
	Short: "Prepare a release commit",
	Long: `Relprep runs the release-preparation pipeline: bump the manifest
version, propagate it across the project, refresh the dependency lock,
regenerate the changelog, and capture everything in a single commit.

Tagging and publishing are not part of the pipeline; they happen
automatically once the release commit is merged.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRelease,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is "+config.ConfigFile()+")")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.Flags().StringVar(&releaseVersion, "release-version", "",
		"set the manifest version directly instead of opening an editor")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"log the commands each step would run without executing them")
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/relprep")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("RELPREP")
	// Replace dots with underscores for nested keys in env vars
	// e.g., RELPREP_STEPS_LOCK_COMMAND for steps.lock.command
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
