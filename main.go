package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/kanchang12/wastekingjennifer-sub000/agent/agents"
	"github.com/kanchang12/wastekingjennifer-sub000/agent/dashboard"
	"github.com/kanchang12/wastekingjennifer-sub000/agent/question"
	statex "github.com/kanchang12/wastekingjennifer-sub000/agent/state"
	configx "github.com/kanchang12/wastekingjennifer-sub000/pkg/config"
	_ "github.com/kanchang12/wastekingjennifer-sub000/pkg/logger/autoload"
	smsx "github.com/kanchang12/wastekingjennifer-sub000/pkg/sms"
	wastekingx "github.com/kanchang12/wastekingjennifer-sub000/pkg/wasteking"
	webhookx "github.com/kanchang12/wastekingjennifer-sub000/pkg/webhook"
	"github.com/kanchang12/wastekingjennifer-sub000/server"
)

type AppConfig struct {
	OpenAIEnabled bool `envconfig:"OPENAI_ENABLED" default:"false"`
	SMSEnabled    bool `envconfig:"SMS_ENABLED" default:"true"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("")

	wkCfg := configx.MustNew[wastekingx.Config]("WASTEKING")
	wkClient := wastekingx.MustNew(*wkCfg)

	whCfg := configx.MustNew[webhookx.Config]("WEBHOOK")
	whClient := webhookx.MustNew(*whCfg)

	deps := agents.Deps{
		Store:    statex.NewMemoryStore(),
		Pricing:  wkClient,
		Booking:  wkClient,
		Transfer: whClient,
		Board:    dashboard.NewBoard(),
	}

	if appCfg.SMSEnabled {
		smsCfg := configx.MustNew[smsx.Config]("TWILIO")
		deps.Notifier = smsx.MustNew(*smsCfg)
	}

	if appCfg.OpenAIEnabled {
		qCfg := configx.MustNew[question.Config]("OPENAI")
		deps.Questions = question.MustNewOpenAIWriter(*qCfg)
	} else {
		deps.Questions = question.Scripted{}
	}

	router := agents.NewRouter(
		agents.New(agents.SkipProfile(), deps),
		agents.New(agents.ManAndVanProfile(), deps),
		agents.New(agents.GrabProfile(), deps),
		agents.NewQualifier(deps),
		deps.Store,
	)

	srvCfg := configx.MustNew[server.Config]("SERVER")
	srv := server.New(*srvCfg, router, deps.Board)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("shutdown complete")
}
