package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frencoae/upwork-responder/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// TelegramNotifier sends feed digests to a fixed chat. Single-user
// application, so one chat id from config is enough.
type TelegramNotifier struct {
	bot    *tele.Bot
	chatID tele.ChatID
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("telegram notifier initialized", zap.Int64("chat_id", chatID))

	return &TelegramNotifier{
		bot:    bot,
		chatID: tele.ChatID(chatID),
		logger: logger,
	}, nil
}

func (n *TelegramNotifier) NotifyNewJobs(_ context.Context, user *models.User, jobs []models.JobPosting) error {
	if len(jobs) == 0 {
		return nil
	}

	summary := fmt.Sprintf("New jobs matching your feed: %d\n", len(jobs))
	if _, err := n.bot.Send(n.chatID, summary); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}

	for i, job := range jobs {
		if _, err := n.bot.Send(n.chatID, formatJob(&job)); err != nil {
			n.logger.Error("failed to send job notification",
				zap.Int64("user_id", user.ID),
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
			continue
		}

		if i < len(jobs)-1 {
			time.Sleep(500 * time.Millisecond)
		}
	}

	n.logger.Info("job digest sent",
		zap.Int64("user_id", user.ID),
		zap.Int("count", len(jobs)),
	)

	return nil
}

func formatJob(job *models.JobPosting) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", job.Title)
	fmt.Fprintf(&b, "Budget: %s\n", job.Budget)
	fmt.Fprintf(&b, "Category: %s\n", job.Category)
	if len(job.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(job.Skills, ", "))
	}
	if job.Client.Name != "" {
		fmt.Fprintf(&b, "Client: %s (%.1f)\n", job.Client.Name, job.Client.Rating)
	}

	return b.String()
}
