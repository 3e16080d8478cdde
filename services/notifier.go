// services/notifier.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"aisolutions-backend/models"

	"github.com/shopspring/decimal"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Notifier is told about every batch that contains failed sales.
type Notifier interface {
	NotifyFailures(ctx context.Context, failed []models.Record) error
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) NotifyFailures(context.Context, []models.Record) error { return nil }

// MessageSender is the part of the Twilio API the notifier uses.
type MessageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type SMSNotifier struct {
	sender  MessageSender
	from    string
	to      string
	channel string
	log     *slog.Logger

	// Logs, when set, receives an AlertLog row per alert attempt.
	Logs *gorm.DB
}

func NewSMSNotifier(accountSid, authToken, from, to string, log *slog.Logger) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})
	return NewSMSNotifierWithSender(client.Api, from, to, log)
}

func NewSMSNotifierWithSender(sender MessageSender, from, to string, log *slog.Logger) *SMSNotifier {
	return &SMSNotifier{sender: sender, from: from, to: to, channel: "sms", log: log}
}

// UseWhatsApp sends alerts from a WhatsApp-enabled Twilio number instead of SMS.
func (n *SMSNotifier) UseWhatsApp(from string) {
	n.from = "whatsapp:" + from
	n.to = "whatsapp:" + n.to
	n.channel = "whatsapp"
}

func (n *SMSNotifier) NotifyFailures(ctx context.Context, failed []models.Record) error {
	if len(failed) == 0 {
		return nil
	}

	message := FailureSummary(failed)
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(message)

	entry := models.AlertLog{
		Recipient:   n.to,
		Channel:     n.channel,
		Message:     message,
		FailedSales: len(failed),
		Status:      models.AlertSent,
		SentAt:      time.Now(),
	}

	resp, err := n.sender.CreateMessage(params)
	if err != nil {
		entry.Status = models.AlertFailed
		entry.ErrorMessage = err.Error()
		err = fmt.Errorf("send failure alert to %s: %w", n.to, err)
	} else if resp != nil && resp.Sid != nil {
		entry.MessageSID = *resp.Sid
		n.log.Info("failure alert sent", "to", n.to, "sid", *resp.Sid)
	} else {
		n.log.Info("failure alert sent, but no SID returned", "to", n.to)
	}

	if n.Logs != nil {
		if logErr := n.Logs.WithContext(ctx).Create(&entry).Error; logErr != nil {
			n.log.Error("failed to log alert", "to", n.to, "err", logErr)
		}
	}
	return err
}

// FailureSummary is the alert text for a set of failed sales.
func FailureSummary(failed []models.Record) string {
	refunded := decimal.Zero
	for _, r := range failed {
		refunded = refunded.Add(r.RefundAmount)
	}
	noun := "sales"
	if len(failed) == 1 {
		noun = "sale"
	}
	return fmt.Sprintf("AI Solutions: %d failed %s, $%s refunded.", len(failed), noun, refunded.StringFixed(2))
}
