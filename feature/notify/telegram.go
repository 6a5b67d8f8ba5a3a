package notify

import (
	"fmt"

	"jobwatch/core/report"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Telegram pushes a short run summary to a chat. It is best effort:
// every method logs failures instead of returning them, so a flaky bot
// API never fails a run.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegram connects the bot. Returns (nil, nil) when the channel is
// not configured.
func NewTelegram(cfg TelegramConfig, logger *zap.Logger) (*Telegram, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &Telegram{bot: bot, chatID: cfg.ChatID, logger: logger}, nil
}

// NotifyDigest sends the run summary line.
func (t *Telegram) NotifyDigest(rep report.Report) {
	if t == nil {
		return
	}
	text := fmt.Sprintf(
		"📋 <b>%s</b>\n有效岗位 %d 个，新增 %d，更新 %d，过期 %d",
		rep.Subject(),
		rep.TotalActive,
		rep.Summary.New,
		rep.Summary.Updated,
		rep.Summary.Expired,
	)
	t.sendHTML(text)
}

// NotifyFailure sends a short abort notice.
func (t *Telegram) NotifyFailure(refDate string, runErr error) {
	if t == nil {
		return
	}
	t.sendHTML(fmt.Sprintf("⚠️ <b>招聘信息 %s 抓取失败</b>\n%v", refDate, runErr))
}

func (t *Telegram) sendHTML(text string) {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Warn("Telegram delivery failed", zap.Error(err))
	}
}
