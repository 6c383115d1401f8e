package services

import (
	"fmt"
	"log"
	"net/smtp"

	"careops-backend/config"
	"careops-backend/models"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Notifier delivers outbound email/SMS on a best-effort basis. Callers
// enqueue and move on; delivery failures are recorded as failed automation
// log entries and never propagated.
type Notifier struct {
	db     *gorm.DB
	client *twilio.RestClient

	sendEmail func(to, subject, body string) error
	sendSMS   func(to, body string) error
}

func NewNotifier(db *gorm.DB) *Notifier {
	n := &Notifier{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: config.C.TwilioAccountSID,
			Password: config.C.TwilioAuthToken,
		}),
	}
	n.sendEmail = n.smtpSend
	n.sendSMS = n.twilioSend
	return n
}

// EnqueueEmail fires off the delivery in the background and returns
// immediately. Never call it inside a transaction you expect it to observe.
func (n *Notifier) EnqueueEmail(workspaceID uuid.UUID, to, subject, body string) {
	go func() {
		if err := n.sendEmail(to, subject, body); err != nil {
			log.Printf("Failed to send email to %s: %v", to, err)
			n.logOutcome(workspaceID, "email_send", models.AutomationFailed,
				map[string]interface{}{"to": to, "subject": subject, "error": err.Error()})
			return
		}
		n.logOutcome(workspaceID, "email_send", models.AutomationSuccess,
			map[string]interface{}{"to": to, "subject": subject})
	}()
}

func (n *Notifier) EnqueueSMS(workspaceID uuid.UUID, to, body string) {
	go func() {
		if err := n.sendSMS(to, body); err != nil {
			log.Printf("Failed to send SMS to %s: %v", to, err)
			n.logOutcome(workspaceID, "sms_send", models.AutomationFailed,
				map[string]interface{}{"to": to, "error": err.Error()})
			return
		}
		n.logOutcome(workspaceID, "sms_send", models.AutomationSuccess,
			map[string]interface{}{"to": to})
	}()
}

func (n *Notifier) logOutcome(workspaceID uuid.UUID, eventType string, status models.AutomationStatus, details map[string]interface{}) {
	if err := LogAutomation(n.db, workspaceID, eventType, "send_notification", status, details, nil, nil); err != nil {
		log.Printf("Failed to log notification outcome: %v", err)
	}
}

func (n *Notifier) smtpSend(to, subject, body string) error {
	if config.C.SMTPHost == "" {
		// No SMTP configured: mock delivery, as in development setups.
		log.Printf("[MOCK EMAIL] To: %s, Subject: %s", to, subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		config.C.EmailFrom, to, subject, body)
	addr := config.C.SMTPHost + ":" + config.C.SMTPPort
	auth := smtp.PlainAuth("", config.C.SMTPUser, config.C.SMTPPass, config.C.SMTPHost)
	return smtp.SendMail(addr, auth, config.C.EmailFrom, []string{to}, []byte(msg))
}

func (n *Notifier) twilioSend(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(config.C.TwilioFromNumber)
	params.SetBody(body)

	_, err := n.client.Api.CreateMessage(params)
	return err
}
