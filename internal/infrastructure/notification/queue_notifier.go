package notification

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/smarthotel/user-service/internal/application"
	"github.com/smarthotel/user-service/pkg/helpers"
	"github.com/smarthotel/user-service/pkg/mailer"
)

// QueueNotifier publishes email jobs to the RabbitMQ queue consumed by
// cmd/email_worker. With no publisher configured it degrades to dev mode and
// only logs the verification link.
type QueueNotifier struct {
	Pub            *helpers.RabbitPublisher
	Logger         *logrus.Logger
	VerifyEmailURL string
}

func NewQueueNotifier(pub *helpers.RabbitPublisher, logger *logrus.Logger, verifyEmailURL string) *QueueNotifier {
	return &QueueNotifier{Pub: pub, Logger: logger, VerifyEmailURL: verifyEmailURL}
}

func (n *QueueNotifier) verifyLink(token string) string {
	return n.VerifyEmailURL + "?token=" + token
}

func (n *QueueNotifier) SendVerification(ctx context.Context, email, username, token string) error {
	link := n.verifyLink(token)
	if n.Pub == nil {
		if n.Logger != nil {
			n.Logger.WithFields(logrus.Fields{"email": email, "link": link}).Info("dev mode: verification link")
		}
		return nil
	}
	job := mailer.EmailJob{
		To:       email,
		Template: "verify_email",
		Data: map[string]any{
			"Username":   username,
			"VerifyLink": link,
		},
	}
	return n.Pub.PublishJSON(ctx, job)
}

func (n *QueueNotifier) SendWelcome(ctx context.Context, email, username string) error {
	if n.Pub == nil {
		if n.Logger != nil {
			n.Logger.WithField("email", email).Info("dev mode: welcome email skipped")
		}
		return nil
	}
	job := mailer.EmailJob{
		To:       email,
		Template: "welcome",
		Data: map[string]any{
			"Username": username,
		},
	}
	return n.Pub.PublishJSON(ctx, job)
}

var _ application.Notifier = (*QueueNotifier)(nil)
