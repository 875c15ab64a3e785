package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/yadhurtech/leadquote/internal/entity"
)

//go:embed templates/lead_notice.html
var templateFS embed.FS

var noticeTemplate = template.Must(template.ParseFS(templateFS, "templates/lead_notice.html"))

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

// Notify mails the operator about a new lead or a finished import. Other
// event types are ignored.
func (s *EmailSender) Notify(_ context.Context, ev entity.LeadEvent) error {
	m, err := s.buildNotice(ev)
	if err != nil || m == nil {
		return err
	}

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}
	return nil
}

func (s *EmailSender) buildNotice(ev entity.LeadEvent) (*gomail.Message, error) {
	data := LeadNoticeData{Name: ev.Name, Email: ev.Email, LeadID: ev.LeadID, Count: ev.Count, At: ev.At}

	var subject string
	switch ev.Type {
	case entity.EventLeadCreated:
		subject = fmt.Sprintf("New lead: %s", ev.Name)
		data.Heading = "A new lead was added"
	case entity.EventLeadsImported:
		subject = fmt.Sprintf("Lead import finished (%d)", ev.Count)
		data.Heading = "Lead import finished"
	default:
		return nil, nil
	}

	var body bytes.Buffer
	if err := noticeTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())
	return m, nil
}
