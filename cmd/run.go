package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/ai/gemini"
	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/questions"
	"github.com/talentscout/screener/internal/secrets"
	"github.com/talentscout/screener/internal/store"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultStorePath = "data/candidates.json"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one interactive screening session in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("storage", "s", "", "path of the candidate record file. Default is data/candidates.json.")

	viper.BindPFlag("storage.path", runCmd.Flags().Lookup("storage"))
}

// run drives a single conversation over the terminal until it ends, then
// persists the snapshot once.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screener", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	engine, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the dialogue engine", zap.Error(err))
	}

	records, err := store.New(storePath(config))
	if err != nil {
		logger.Fatal("opening the candidate store", zap.Error(err))
	}

	state := interview.NewState(uuid.NewString())
	logger.Info("session started", zap.String("session_id", state.ID))

	fmt.Println(engine.Greeting())

	prompt := promptui.Prompt{Label: "you"}

	for {
		input, err := prompt.Run()
		if err != nil {
			// Ctrl-C or closed stdin ends the session without a snapshot.
			logger.Info("input closed, leaving session", zap.Error(err))
			return
		}

		message, err := engine.Advance(ctx, state, input)
		if errors.Is(err, interview.ErrSessionClosed) {
			return
		}
		if err != nil {
			logger.Fatal("advancing conversation", zap.Error(err))
		}

		fmt.Println(message)

		if state.Stage.Terminal() {
			break
		}
	}

	if !state.MarkPersisted() {
		return
	}

	record, err := records.Append(state)
	if err != nil {
		logger.Error("persisting candidate snapshot", zap.Error(err))
		return
	}

	logger.Info("candidate snapshot persisted",
		zap.String("record_id", record.ID),
		zap.String("stage", string(state.Stage)),
	)
}

func storePath(config *Config) string {
	if config != nil && config.Storage != nil && strings.TrimSpace(config.Storage.Path) != "" {
		return config.Storage.Path
	}
	return defaultStorePath
}

// buildEngine wires the catalog, the question generator and the dialogue
// engine from the configuration.
func buildEngine(ctx context.Context, config *Config, logger *zap.Logger) (*interview.Engine, error) {
	catalog, err := questions.NewCatalog()
	if err != nil {
		return nil, err
	}

	if config.Catalog != nil {
		if err := catalog.MergeConfig(config.Catalog.Extra); err != nil {
			return nil, fmt.Errorf("merging extra catalog pools: %w", err)
		}
	}

	completer, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("question synthesis disabled", zap.Error(err))
	}

	maxTokens := 0
	if config.AI != nil && config.AI.Gemini != nil {
		maxTokens = config.AI.Gemini.MaxTokens
	}

	generator := questions.NewGenerator(catalog, completer, maxTokens, logger)

	interviewCfg := interview.Config{}
	if config.Interview != nil {
		interviewCfg = *config.Interview
	}

	return interview.NewEngine(generator, interviewCfg, logger), nil
}

// newCompleter returns nil without error when the AI section is absent or
// disabled; unrecognized technologies are then simply skipped.
func newCompleter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Completer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.LoadAPIKey("gemini api key", cfg.Gemini.APIKey, cfg.Gemini.APIKeyFile)
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	timeout := time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second

	clientLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", cfg.Gemini.Model),
	)

	client, err := gemini.NewClient(ctx, apiKey, cfg.Gemini.Model, timeout, cfg.Gemini.MaxLogLength, clientLogger)
	if err != nil {
		return nil, err
	}

	return client, nil
}
