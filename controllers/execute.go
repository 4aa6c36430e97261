package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/codewit-us/codeval/executor"
)

var (
	executionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codeval_executions_total",
		Help: "Executions by language and result state.",
	}, []string{"language", "state"})

	executionSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codeval_execution_seconds",
		Help:    "Wall-clock duration of the execution pipeline.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})
)

// ExecuteController serves POST /execute.
type ExecuteController struct {
	Exec *executor.Executor
}

// Execute binds the request, validates the required fields, and runs the
// pipeline. Every orderly outcome (including compile_error and failed) is a
// 200 carrying the canonical result.
func (ec ExecuteController) Execute(c *gin.Context) {
	var req executor.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Language == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language is required"})
		return
	}
	if req.Code == "" && req.RepoURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code or repoUrl is required"})
		return
	}

	start := time.Now()
	res := ec.Exec.Execute(c.Request.Context(), req)

	executionsTotal.WithLabelValues(req.Language, string(res.State)).Inc()
	executionSeconds.WithLabelValues(req.Language).Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, res)
}

// Health serves GET /healthz, outside the session gate.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
