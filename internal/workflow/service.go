package workflow

import (
	"os"

	"github.com/sirupsen/logrus"

	"homestead/server/internal/notify"
	"homestead/server/internal/store"
)

// Service implements the marketplace workflows: application review,
// price negotiation and the contract signing state machine.
type Service struct {
	store    *store.Store
	logger   *logrus.Logger
	notifier notify.Notifier
}

func NewService(st *store.Store, logger *logrus.Logger, notifier notify.Notifier) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	return &Service{
		store:    st,
		logger:   logger,
		notifier: notifier,
	}
}
