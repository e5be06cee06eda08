package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/ui/form"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version     = "dev"
	cfgFile     string
	debugFlag   bool
	prefillFile string
	cfg         config.Config
)

var rootCmd = &cobra.Command{
	Use:   "signup",
	Short: "A terminal registration form",
	Long: `A terminal registration form with name, email, password and a list of
technologies. Saving validates the whole form and shows the normalized
record as JSON or YAML; invalid fields show their message inline.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .signup/config.yaml, then ~/.config/signup/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also enabled by SIGNUP_DEBUG)")
	rootCmd.PersistentFlags().StringP("format", "f", "",
		"output format for the saved record: json or yaml")
	rootCmd.Flags().StringVarP(&prefillFile, "prefill", "p", "",
		"YAML or JSON file used to fill in the form")

	bindFlags()
}

// bindFlags binds flags to viper keys.
func bindFlags() {
	_ = viper.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("format"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .signup/config.yaml (current directory)
		// 2. ~/.config/signup/config.yaml (user config)
		if _, err := os.Stat(config.DefaultConfigPath); err == nil {
			viper.SetConfigFile(config.DefaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "signup"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .signup/config.yaml
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if writeErr := config.WriteDefaultConfig(config.DefaultConfigPath); writeErr == nil {
				viper.SetConfigFile(config.DefaultConfigPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging enables file logging when --debug or SIGNUP_DEBUG is set.
// The returned cleanup func is always safe to call.
func initLogging(prefix string) (func(), error) {
	if !debugFlag && os.Getenv("SIGNUP_DEBUG") == "" {
		return func() {}, nil
	}

	logPath := os.Getenv("SIGNUP_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return func() {}, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatCLI, "Logging enabled", "path", logPath, "version", version)
	return cleanup, nil
}

// configFilePath returns where format changes are saved.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return config.DefaultConfigPath
}

func runApp(cmd *cobra.Command, _ []string) error {
	cleanup, err := initLogging("signup")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	opts, err := form.OptionsFromConfig(cfg, configFilePath())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if prefillFile != "" {
		in, err := readInputFile(cmd, prefillFile)
		if err != nil {
			return err
		}
		opts.Prefill = in
		log.Info(log.CatCLI, "Form prefilled", "path", prefillFile, "techs", len(in.Techs))
	}

	zone.NewGlobal()
	model := form.New(opts)

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, programOpts...)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	// The alt screen is gone once the program exits; echo the last saved
	// record so it stays in the terminal.
	if fm, ok := final.(form.Model); ok {
		if out := fm.Output(); out != "" {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
		}
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
