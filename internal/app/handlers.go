package app

import (
	"github.com/planweave/planweave-backend/internal/handlers"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

type Handlers struct {
	Member *handlers.MemberHandler
	Plan   *handlers.PlanHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("wiring handlers")
	return Handlers{
		Member: handlers.NewMemberHandler(log, serviceset.Member),
		Plan:   handlers.NewPlanHandler(log, serviceset.PlanGeneration),
	}
}
