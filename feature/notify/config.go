package notify

import "strings"

// MailConfig holds SMTP delivery settings. Delivery is disabled until a
// host and at least one recipient are configured.
type MailConfig struct {
	Host     string `mapstructure:"host" default:"smtp.qq.com"`
	Port     int    `mapstructure:"port" default:"465"`
	Username string `mapstructure:"username" default:""`
	Password string `mapstructure:"password" default:""`
	From     string `mapstructure:"from" default:""`
	// To is a comma-separated recipient list.
	To string `mapstructure:"to" default:""`
	// SendEmpty controls whether a digest goes out when a run found
	// nothing new.
	SendEmpty bool `mapstructure:"send_empty" default:"false"`
}

// Enabled reports whether mail delivery is configured.
func (c MailConfig) Enabled() bool {
	return c.Host != "" && len(c.Recipients()) > 0
}

// Recipients returns the parsed recipient list.
func (c MailConfig) Recipients() []string {
	if strings.TrimSpace(c.To) == "" {
		return nil
	}
	parts := strings.Split(c.To, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TelegramConfig holds the optional telegram channel settings.
type TelegramConfig struct {
	Token  string `mapstructure:"token" default:""`
	ChatID int64  `mapstructure:"chat_id" default:"0"`
}

// Enabled reports whether the telegram channel is configured.
func (c TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}
