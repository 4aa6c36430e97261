package server

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"github.com/codewit-us/codeval/config"
	"github.com/codewit-us/codeval/controllers"
	"github.com/codewit-us/codeval/executor"
	"github.com/codewit-us/codeval/session"
)

// NewRouter wires the gin engine: request logging, panic recovery, per-route
// metrics, the session gate, and the execute endpoint.
func NewRouter(cfg *config.Config, logger *zap.Logger, exec *executor.Executor) (r *gin.Engine) {
	if cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	r = gin.New()
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	p := ginprometheus.NewPrometheus("gin")
	p.Use(r)

	execute := new(controllers.ExecuteController)
	execute.Exec = exec

	r.GET("/healthz", controllers.Health)

	gated := r.Group("/")
	if !cfg.SessionDisabled {
		gate := session.New(cfg.RedisHost, cfg.RedisPort, cfg.RedisPrefix, logger)
		gated.Use(gate.Middleware())
	}
	gated.POST("/execute", execute.Execute)

	return
}
