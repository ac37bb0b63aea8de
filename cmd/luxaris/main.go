package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luxaris/luxaris/internal/core"
	debuglog "github.com/luxaris/luxaris/internal/log"
	"github.com/luxaris/luxaris/internal/plugins/ai"
	aimock "github.com/luxaris/luxaris/internal/plugins/ai/mock"
	aiopenai "github.com/luxaris/luxaris/internal/plugins/ai/openai"
	"github.com/luxaris/luxaris/internal/plugins/db/pgdb"
	restapi "github.com/luxaris/luxaris/internal/server"
)

func main() {
	root := &cobra.Command{
		Use:   "luxaris",
		Short: "Content generation orchestration service",
	}
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	return cmd
}

func loadConfig() *viper.Viper {
	// A local .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LUXARIS")
	v.AutomaticEnv()
	v.SetDefault("listen", ":8080")
	v.SetDefault("generator", "mock")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("debug", 0)
	return v
}

func serve() error {
	cfg := loadConfig()
	debuglog.SetLevel(debuglog.LevelFromInt(cfg.GetInt("debug")))

	dsn := cfg.GetString("database_dsn")
	if dsn == "" {
		return errors.New("LUXARIS_DATABASE_DSN is required")
	}
	db, err := pgdb.NewClient(dsn)
	if err != nil {
		return err
	}
	if err := db.Migrate(); err != nil {
		return errors.Wrap(err, "migrate")
	}

	generator, err := buildGenerator(cfg)
	if err != nil {
		return err
	}

	sessions := db.Sessions()
	suggestions := db.Suggestions()
	templates := db.Templates()
	posts := db.Posts()
	channels := db.Channels()
	events := db.Events()

	deps := restapi.Deps{
		Orchestrator: core.NewOrchestrator(sessions, suggestions, templates, posts, channels, events, generator),
		Acceptor:     core.NewAcceptor(sessions, suggestions, posts, db.Variants(), events),
		Sessions:     core.NewSessionService(sessions, suggestions),
		Templates:    core.NewTemplateService(templates),
		DB:           db,
	}

	router := restapi.New(deps)
	listen := cfg.GetString("listen")
	debuglog.Basicf("listening on %s", listen)
	return router.Run(listen)
}

func buildGenerator(cfg *viper.Viper) (ai.Generator, error) {
	switch kind := cfg.GetString("generator"); kind {
	case "mock":
		return aimock.NewClient(), nil
	case "openai":
		return aiopenai.NewClient(
			cfg.GetString("openai_api_key"),
			cfg.GetString("openai_base_url"),
			cfg.GetString("openai_model"),
		)
	default:
		return nil, errors.Errorf("unknown generator %q (want mock or openai)", kind)
	}
}
