package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// TelegramNotifier forwards workflow events to a Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *logrus.Logger
}

func NewTelegramNotifier(botToken string, chatID int64, logger *logrus.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) Notify(ev Event) {
	msg := tgbotapi.NewMessage(n.chatID, formatEvent(ev))
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.WithError(err).WithField("event", ev.Type).Error("Failed to send Telegram notification")
	}
}

func formatEvent(ev Event) string {
	switch ev.Type {
	case EventPriceApprovalRequested:
		return fmt.Sprintf("💰 Price approval needed for %s: proposed $%.0f against listed $%.0f",
			ev.PropertyName, ev.FinalPrice, ev.ListedPrice)
	case EventPriceDecided:
		verdict := "rejected"
		if ev.Approved {
			verdict = "approved"
		}
		text := fmt.Sprintf("💬 Owner %s the proposed price of $%.0f for %s", verdict, ev.FinalPrice, ev.PropertyName)
		if ev.Reason != "" {
			text += fmt.Sprintf(" (reason: %s)", ev.Reason)
		}
		return text
	case EventContractAwaitingSignature:
		return fmt.Sprintf("📝 Contract %s is awaiting the %s's signature", ev.ContractID, ev.Role)
	case EventContractSigned:
		return fmt.Sprintf("✅ Contract %s signed by the %s", ev.ContractID, ev.Role)
	case EventContractRejected:
		return fmt.Sprintf("❌ Contract %s rejected by the %s", ev.ContractID, ev.Role)
	default:
		return fmt.Sprintf("Event %s", ev.Type)
	}
}
