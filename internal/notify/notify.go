package notify

import "github.com/sirupsen/logrus"

// EventType names the workflow moments other parties care about.
type EventType string

const (
	// A realtor proposed a below-listing price; the owner must decide.
	EventPriceApprovalRequested EventType = "price_approval_requested"
	// The owner accepted or rejected a proposed price.
	EventPriceDecided EventType = "price_decided"
	// A contract moved into a pending-signature state.
	EventContractAwaitingSignature EventType = "contract_awaiting_signature"
	// A party signed a contract.
	EventContractSigned EventType = "contract_signed"
	// A party rejected a contract.
	EventContractRejected EventType = "contract_rejected"
)

// Event is the payload handed to notifiers. Delivery is best-effort;
// workflows never fail because a notification could not be sent.
type Event struct {
	Type          EventType
	ApplicationID string
	ContractID    string
	PropertyName  string
	ListedPrice   float64
	FinalPrice    float64
	Approved      bool
	Reason        string
	Role          string
}

// Notifier is the event hook the workflows publish through.
type Notifier interface {
	Notify(ev Event)
}

// LogNotifier writes events to the structured log. It is the default
// sink when no external channel is configured.
type LogNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ev Event) {
	n.logger.WithFields(logrus.Fields{
		"event":       ev.Type,
		"application": ev.ApplicationID,
		"contract":    ev.ContractID,
		"property":    ev.PropertyName,
	}).Info("Notification event")
}
