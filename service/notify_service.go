package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	model "github.com/Itish41/ActionNotes/models"
)

// Notifier tells people about action items assigned to them.
type Notifier interface {
	NotifyAssignment(ctx context.Context, email string, item *model.ActionItem) error
}

// sendMail is swapped out in tests.
var sendMail = smtp.SendMail

// SMTPConfig holds mail server settings.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

// SMTPNotifier sends HTML assignment emails over SMTP with PLAIN auth.
type SMTPNotifier struct {
	cfg SMTPConfig
}

// NewSMTPNotifier returns a notifier for cfg. Port defaults to 587 and From to User.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &SMTPNotifier{cfg: cfg}
}

var assignmentTemplate = template.Must(template.New("assignment").Parse(`<html>
<body>
	<h2>Action Item Assigned</h2>
	<p>Hi {{.Assignee}},</p>
	<p>You have been assigned a new action item:</p>
	<ul>
		<li><strong>Description:</strong> {{.Description}}</li>
		{{if .DueDate}}<li><strong>Due:</strong> {{.DueDate}}</li>{{end}}
		{{if .Priority}}<li><strong>Priority:</strong> {{.Priority}}</li>{{end}}
	</ul>
</body>
</html>
`))

var headerSafe = strings.NewReplacer("\r", " ", "\n", " ")

// NotifyAssignment implements Notifier.
func (n *SMTPNotifier) NotifyAssignment(ctx context.Context, email string, item *model.ActionItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var body bytes.Buffer
	if err := assignmentTemplate.Execute(&body, item); err != nil {
		return fmt.Errorf("failed to render notification: %w", err)
	}

	subject := "Action Item Assigned"
	if len(item.Description) <= 80 {
		subject += ": " + headerSafe.Replace(item.Description)
	}
	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + n.cfg.From + "\r\n" +
		"To: " + email + "\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
		body.String())

	var auth smtp.Auth
	if n.cfg.User != "" {
		auth = smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)
	}
	if err := sendMail(n.cfg.Host+":"+n.cfg.Port, auth, n.cfg.From, []string{email}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
