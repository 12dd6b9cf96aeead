package cmd

import (
	"context"
	"log"
	"time"

	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/server"
	"github.com/talentscout/screener/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultListen = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the screening conversation over HTTP for many concurrent sessions",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address. Default is :8080.")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screener http server", zap.String("version", version))

	engine, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the dialogue engine", zap.Error(err))
	}

	records, err := store.New(storePath(config))
	if err != nil {
		logger.Fatal("opening the candidate store", zap.Error(err))
	}

	listen := defaultListen
	ttl := time.Hour
	if config.Server != nil {
		if config.Server.Listen != "" {
			listen = config.Server.Listen
		}
		if config.Server.SessionTTLMinutes > 0 {
			ttl = time.Duration(config.Server.SessionTTLMinutes) * time.Minute
		}
	}
	if flagListen := viper.GetString("server.listen"); flagListen != "" {
		listen = flagListen
	}

	sessions := server.NewSessionRepository(ttl)

	srv := server.New(engine, sessions, records, logger)
	if err := srv.Listen(listen); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
