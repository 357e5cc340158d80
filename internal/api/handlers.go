package api

import (
	"os"

	"github.com/sirupsen/logrus"

	"homestead/server/internal/auth"
	"homestead/server/internal/store"
	"homestead/server/internal/workflow"
)

// Handler carries the shared dependencies of every endpoint.
type Handler struct {
	store    *store.Store
	workflow *workflow.Service
	tokens   *auth.Manager
	logger   *logrus.Logger
}

func NewHandler(st *store.Store, wf *workflow.Service, tokens *auth.Manager, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Handler{
		store:    st,
		workflow: wf,
		tokens:   tokens,
		logger:   logger,
	}
}
