package mail

import "time"

// LeadNoticeData feeds templates/lead_notice.html.
type LeadNoticeData struct {
	Heading string
	Name    string
	Email   string
	LeadID  string
	Count   int
	At      time.Time
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}
