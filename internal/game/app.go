package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/fogcubes/internal/config"
	"github.com/Faultbox/fogcubes/internal/logger"
)

// RunApplication builds the scene, runs it until the user quits and
// returns the process exit code.
func RunApplication(cfg *config.Config) int {
	g, err := New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		return 1
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("frame loop error", zap.Error(err))
		return 1
	}
	return 0
}
