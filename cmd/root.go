package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/placement-desk/internal/filtering"
	"github.com/spigell/placement-desk/internal/interview"
	"github.com/spigell/placement-desk/internal/logger"
	"github.com/spigell/placement-desk/internal/secrets"
	"github.com/spigell/placement-desk/internal/sheet"
)

const (
	app       = "placement-desk"
	envPrefix = "PLACEMENT_DESK"
	dsnEnv    = "DATABASE_URL"
)

type Config struct {
	Store    *StoreConfig    `mapstructure:"store"`
	Sheets   *SheetsConfig   `mapstructure:"sheets"`
	Matching *MatchingConfig `mapstructure:"matching"`
	Filters  *FiltersConfig  `mapstructure:"filters"`
	Export   *ExportConfig   `mapstructure:"export"`
}

type StoreConfig struct {
	Driver  string `mapstructure:"driver"`
	Path    string `mapstructure:"path"`
	DSN     string `mapstructure:"dsn"`
	DSNFile string `mapstructure:"dsn-file"`
}

type SheetsConfig struct {
	Candidates string `mapstructure:"candidates"`
	Vacancies  string `mapstructure:"vacancies"`
	Interviews string `mapstructure:"interviews"`
}

type MatchingConfig struct {
	Workers int `mapstructure:"workers"`
}

type FiltersConfig struct {
	ExcludeSelected bool           `mapstructure:"exclude-selected"`
	ExcludeClosed   bool           `mapstructure:"exclude-closed"`
	Candidates      []ColumnFilter `mapstructure:"candidates"`
	Vacancies       []ColumnFilter `mapstructure:"vacancies"`
}

type ColumnFilter struct {
	Column string `mapstructure:"column"`
	Value  string `mapstructure:"value"`
}

type ExportConfig struct {
	UpdatedBy string `mapstructure:"updated-by"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "placement-desk matches candidates with open vacancies and moves the picks into the interview pipeline",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is placement-desk.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-output", "", "where logs are written (default is stderr)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("log-output"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("store.driver", sheet.DriverCSV)
	viper.SetDefault("store.path", "data")
	viper.SetDefault("store.dsn", "")
	viper.SetDefault("store.dsn-file", "")

	viper.SetDefault("sheets.candidates", "Candidates")
	viper.SetDefault("sheets.vacancies", "Sheet4")
	viper.SetDefault("sheets.interviews", "Interview_Records")

	viper.SetDefault("matching.workers", 0)

	viper.SetDefault("filters.exclude-selected", true)
	viper.SetDefault("filters.exclude-closed", true)

	viper.SetDefault("export.updated-by", interview.DefaultUpdatedBy)
}

func initConfig() {
	// A missing .env is fine, the variables may come from the environment itself.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if versionCmd.CalledAs() != "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// Defaults are enough to work with a local csv workbook.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if config == nil || config.Store == nil || config.Sheets == nil {
		return nil, errors.New("store and sheets sections are required")
	}
	if config.Matching == nil {
		config.Matching = &MatchingConfig{}
	}
	if config.Filters == nil {
		config.Filters = &FiltersConfig{}
	}
	if config.Export == nil {
		config.Export = &ExportConfig{}
	}

	return config, nil
}

// setup builds the logger and reads the config. Failures are fatal.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(logger.Config{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: viper.GetString("output"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	return l, config
}

// workbookConfig resolves the store section into a workbook configuration.
func workbookConfig(store *StoreConfig) (*sheet.Config, error) {
	cfg := &sheet.Config{Driver: store.Driver, Path: store.Path}

	if strings.EqualFold(strings.TrimSpace(store.Driver), sheet.DriverPostgres) {
		dsn, err := secrets.Load(secrets.Source{
			Name:  "postgres dsn",
			Value: store.DSN,
			Env:   dsnEnv,
			File:  store.DSNFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set store.dsn, store.dsn-file or %s)", err, dsnEnv)
		}
		cfg.DSN = dsn
	}

	return cfg, nil
}

func openWorkbook(ctx context.Context, config *Config, l *zap.Logger) sheet.Workbook {
	cfg, err := workbookConfig(config.Store)
	if err != nil {
		l.Fatal("resolving workbook configuration", zap.Error(err))
	}

	book, err := sheet.Open(ctx, cfg)
	if err != nil {
		l.Fatal("opening workbook", zap.String("driver", cfg.Driver), zap.Error(err))
	}

	l.Debug("workbook opened", zap.String("driver", cfg.Driver), zap.String("path", cfg.Path))
	return book
}

// readSheet reads a sheet and logs its size.
func readSheet(ctx context.Context, book sheet.Workbook, name string, l *zap.Logger) (*sheet.Table, error) {
	table, err := sheet.ReadTable(ctx, book, name)
	if err != nil {
		return nil, err
	}
	logger.WithSheet(l, name).Info("sheet loaded", zap.Int("rows", table.Len()))
	return table, nil
}

func candidateFilters(cfg *FiltersConfig, l *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{filtering.NewExcludeSelected()}
	for _, c := range cfg.Candidates {
		steps = append(steps, filtering.NewColumn(c.Column, c.Value))
	}

	fl := l.With(zap.String("table", "candidates"))
	filters := filtering.New(steps, fl)
	if !cfg.ExcludeSelected {
		filters.DisableByName("exclude_selected", "disabled in config")
	}
	logFilters(fl, filters)
	return filters
}

func vacancyFilters(cfg *FiltersConfig, l *zap.Logger) *filtering.Filtering {
	steps := []filtering.Filter{filtering.NewClosedVacancies()}
	for _, c := range cfg.Vacancies {
		steps = append(steps, filtering.NewColumn(c.Column, c.Value))
	}

	fl := l.With(zap.String("table", "vacancies"))
	filters := filtering.New(steps, fl)
	if !cfg.ExcludeClosed {
		filters.DisableByName("closed_vacancies", "disabled in config")
	}
	logFilters(fl, filters)
	return filters
}

func logFilters(l *zap.Logger, filters *filtering.Filtering) {
	for _, s := range filters.Describe() {
		l.Debug("filter configured",
			zap.String("name", s.Name),
			zap.Bool("enabled", s.Enabled),
			zap.String("reason", s.Reason),
			zap.Any("details", s.Details),
		)
	}
}
