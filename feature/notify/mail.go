package notify

import (
	"fmt"
	"os"

	"jobwatch/core/report"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// sender abstracts gomail's dialer so delivery can be tested without an
// SMTP server.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends run digests over SMTP.
type Mailer struct {
	cfg    MailConfig
	send   sender
	logger *zap.Logger
}

// NewMailer creates a mailer from the configured SMTP account.
func NewMailer(cfg MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		send:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// SendDigest mails the run digest, attaching each existing file in
// attachments. A run without changes is skipped unless SendEmpty is set.
func (m *Mailer) SendDigest(rep report.Report, attachments ...string) error {
	if !m.cfg.Enabled() {
		m.logger.Debug("Mail delivery not configured, skipping digest")
		return nil
	}
	if rep.NoUpdates && !m.cfg.SendEmpty {
		m.logger.Info("No updates this run, suppressing digest email")
		return nil
	}

	body, err := RenderDigest(rep)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from())
	msg.SetHeader("To", m.cfg.Recipients()...)
	msg.SetHeader("Subject", rep.Subject())
	msg.SetBody("text/html", body)

	for _, path := range attachments {
		if _, err := os.Stat(path); err != nil {
			m.logger.Warn("Skipping missing attachment", zap.String("path", path))
			continue
		}
		msg.Attach(path)
	}

	if err := m.send.DialAndSend(msg); err != nil {
		return fmt.Errorf("send digest email: %w", err)
	}
	m.logger.Info("Sent digest email",
		zap.Strings("to", m.cfg.Recipients()),
		zap.String("subject", rep.Subject()),
	)
	return nil
}

// SendFailure mails a short notice that a run aborted.
func (m *Mailer) SendFailure(refDate string, runErr error) error {
	if !m.cfg.Enabled() {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from())
	msg.SetHeader("To", m.cfg.Recipients()...)
	msg.SetHeader("Subject", fmt.Sprintf("招聘信息 %s：抓取失败", refDate))
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>本次抓取失败，数据集未改动。</p><pre>%s</pre>", runErr))

	if err := m.send.DialAndSend(msg); err != nil {
		return fmt.Errorf("send failure email: %w", err)
	}
	return nil
}

func (m *Mailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.Username
}
