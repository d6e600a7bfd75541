package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template names a registered template in pkg/mailer/templates; Data holds
// its fields. Subject/Text/HTML may be set directly for pre-rendered mail.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "verify_email" or "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
