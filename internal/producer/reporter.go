package producer

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/uangjajan/internal/model"
)

const reportPeriod = 24 * time.Hour

type Summarizer interface {
	Summary(ctx context.Context) (*model.Summary, error)
}

type Subscribers interface {
	List(ctx context.Context) (map[int64]string, error)
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Reporter sends the ledger balance to subscribed telegram chats once a day at 00:00 UTC
type Reporter struct {
	bot         sender
	ledger      Summarizer
	subscribers Subscribers
}

func NewReporter(bot *tgbotapi.BotAPI, ledger Summarizer, subscribers Subscribers) *Reporter {
	return &Reporter{
		bot:         bot,
		ledger:      ledger,
		subscribers: subscribers,
	}
}

func (r *Reporter) Produce(ctx context.Context) {
	logrus.Info("reporter producer started produce")
	go r.waitTimeToSendReports(ctx)
}

func (r *Reporter) waitTimeToSendReports(ctx context.Context) {
	timer := time.NewTimer(durationBeforeNextReport(time.Now().UTC()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("reporter producer stopped wait time to send reports: %v", ctx.Err())
			return
		case <-timer.C:
			timeUTC := time.Now().UTC()
			logrus.Infof("reporter producer: timer triggered in: %v", timeUTC)
			newCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := r.sendReports(newCtx, timeUTC); err != nil {
				logrus.Error(err)
			}
			cancel()
			timer.Reset(durationBeforeNextReport(time.Now().UTC()))
		}
	}
}

func (r *Reporter) sendReports(ctx context.Context, timeUTC time.Time) error {
	chats, err := r.subscribers.List(ctx)
	if err != nil {
		return fmt.Errorf("reporter producer couldn't list subscribers: %v", err)
	}
	if len(chats) == 0 {
		return nil
	}
	summary, err := r.ledger.Summary(ctx)
	if err != nil {
		return fmt.Errorf("reporter producer couldn't get summary: %v", err)
	}
	report := convertToTGReport(summary, timeUTC)
	for chatID, username := range chats {
		if _, err = r.bot.Send(tgbotapi.NewMessage(chatID, report)); err != nil {
			logrus.Errorf("reporter producer couldn't send report to %s: %v", username, err)
		}
	}
	return nil
}

// durationBeforeNextReport returns the time left until the next midnight UTC
func durationBeforeNextReport(timeUTC time.Time) time.Duration {
	return timeUTC.Truncate(reportPeriod).Add(reportPeriod).Sub(timeUTC)
}

// convertToTGReport titles the report with the day that just ended
func convertToTGReport(summary *model.Summary, timeUTC time.Time) string {
	title := timeUTC.Add(-time.Hour).Format("2 January 2006")
	return fmt.Sprintf("%s\n\nIncome - %d\nExpense - %d\n\nBalance - %d", title, summary.Income, summary.Expense, summary.Balance)
}
