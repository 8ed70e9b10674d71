package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Yogendra14/chatbot-ner/city"
	"github.com/Yogendra14/chatbot-ner/gazetteer"
	"github.com/Yogendra14/chatbot-ner/internal/config"
	"github.com/Yogendra14/chatbot-ner/internal/logging"
)

// app is the state shared by all subcommands, set up in PersistentPreRunE.
type app struct {
	configPath string
	verbose    bool

	cfg      *config.Config
	log      *zap.Logger
	closeLog func() error
	gaz      *gazetteer.Gazetteer
	detector *city.Detector
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "cityner",
		Short:        "Detect departure and arrival cities in travel messages",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closeLog != nil {
				_ = a.closeLog() // Sync fails on terminals
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML or TOML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log each detection pass")

	root.AddCommand(newDetectCmd(a), newBatchCmd(a), newCitiesCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	a.log, a.closeLog, err = logging.New(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	a.gaz, err = loadGazetteer(cfg.Gazetteer)
	if err != nil {
		return err
	}
	a.log.Debug("gazetteer loaded",
		zap.String("path", cfg.Gazetteer.Path),
		zap.Int("cities", a.gaz.Len()))

	a.detector = city.New(a.gaz,
		city.WithEntityName(cfg.Detector.EntityName),
		city.WithCues(cfg.Detector.Cues),
		city.WithLogger(a.log.Named("city")),
	)
	return nil
}

func loadGazetteer(cfg config.Gazetteer) (*gazetteer.Gazetteer, error) {
	opts := []gazetteer.Option{
		gazetteer.WithMaxEditDistance(cfg.MaxEditDistance),
		gazetteer.WithMinFuzzyRunes(cfg.MinFuzzyRunes),
	}
	if cfg.Path != "" {
		g, err := gazetteer.LoadFile(cfg.Path, opts...)
		if err != nil {
			return nil, fmt.Errorf("loading gazetteer: %w", err)
		}
		return g, nil
	}

	def, err := gazetteer.Default()
	if err != nil {
		return nil, fmt.Errorf("loading built-in gazetteer: %w", err)
	}
	// Rebuild only when the tuning differs from the shared default.
	if std := config.Default().Gazetteer; cfg.MaxEditDistance == std.MaxEditDistance && cfg.MinFuzzyRunes == std.MinFuzzyRunes {
		return def, nil
	}
	return gazetteer.New(def.Cities(), opts...)
}
