// Package consumer
package consumer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/uangjajan/internal/model"
	"github.com/chucky-1/uangjajan/internal/repository"
	"github.com/chucky-1/uangjajan/internal/service"
)

const (
	start       = "start"
	help        = "help"
	list        = "list"
	add         = "add"
	remove      = "delete"
	balance     = "balance"
	subscribe   = "subscribe"
	unsubscribe = "unsubscribe"
)

const (
	dateLayout     = "2006-01-02"
	listLimit      = 20
	requestTimeout = 10 * time.Second
)

var helpMessage = "Record your pocket money here.\n\n" +
	"/add <name> <amount> <income|expense> [date] - add an entry\n" +
	"<name> <amount> - shortcut for an expense today, e.g. \"Snacks 10000\"\n" +
	"/list - latest entries\n" +
	"/delete <id> - delete an entry\n" +
	"/balance - income, expense and balance\n" +
	"/subscribe, /unsubscribe - daily balance report"

type Ledger interface {
	List(ctx context.Context) ([]model.Entry, error)
	Create(ctx context.Context, input *model.EntryInput) (*model.Entry, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*model.Summary, error)
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot receives updates from the telegram server and turns commands into ledger operations
type Bot struct {
	bot         sender
	botName     string
	updatesChan tgbotapi.UpdatesChannel
	ledger      Ledger
	chats       repository.Chats
	now         func() time.Time
}

func NewBot(bot *tgbotapi.BotAPI, updatesChan tgbotapi.UpdatesChannel, ledger Ledger, chats repository.Chats) *Bot {
	return &Bot{
		bot:         bot,
		botName:     bot.Self.UserName,
		updatesChan: updatesChan,
		ledger:      ledger,
		chats:       chats,
		now:         time.Now,
	}
}

func (b *Bot) Consume(ctx context.Context) {
	logrus.Infof("telegram bot %s started consuming", b.botName)

	for {
		select {
		case <-ctx.Done():
			logrus.Infof("bot consumer stopped: %v", ctx.Err())
			return

		case update, ok := <-b.updatesChan:
			if !ok {
				logrus.Info("bot consumer stopped: updates channel closed")
				return
			}
			if update.Message == nil {
				continue
			}
			logrus.Debugf("received message from chat %d: %s", update.Message.Chat.ID, update.Message.Text)

			newCtx, cancel := context.WithTimeout(ctx, requestTimeout)
			reply := b.handle(newCtx, update.Message)
			cancel()

			if err := b.sendMessage(update.Message, reply); err != nil {
				logrus.Errorf("bot consumer send message error: %v", err)
			}
		}
	}
}

func (b *Bot) handle(ctx context.Context, message *tgbotapi.Message) string {
	if !message.IsCommand() {
		return b.handleShortcut(ctx, message.Text)
	}

	args := message.CommandArguments()
	switch message.Command() {
	case start, help:
		return helpMessage
	case list:
		return b.handleList(ctx)
	case add:
		input, err := parseAdd(args, b.now())
		if err != nil {
			return err.Error()
		}
		return b.create(ctx, input)
	case remove:
		id := strings.TrimSpace(args)
		if id == "" {
			return "Usage: /delete <id>"
		}
		if err := b.ledger.Delete(ctx, id); err != nil {
			logrus.Errorf("bot consumer couldn't delete entry %s: %v", id, err)
			return "Couldn't delete the entry, try again later"
		}
		return fmt.Sprintf("Entry %s deleted", id)
	case balance:
		summary, err := b.ledger.Summary(ctx)
		if err != nil {
			logrus.Errorf("bot consumer couldn't get summary: %v", err)
			return "Couldn't get the balance, try again later"
		}
		return formatSummary(summary)
	case subscribe:
		var username string
		if message.From != nil {
			username = message.From.UserName
		}
		if err := b.chats.Add(ctx, message.Chat.ID, username); err != nil {
			logrus.Errorf("bot consumer couldn't subscribe chat %d: %v", message.Chat.ID, err)
			return "Couldn't subscribe, try again later"
		}
		logrus.Infof("chat %d subscribed to daily reports", message.Chat.ID)
		return "You will receive the balance every day at 00:00 UTC"
	case unsubscribe:
		if err := b.chats.Remove(ctx, message.Chat.ID); err != nil {
			logrus.Errorf("bot consumer couldn't unsubscribe chat %d: %v", message.Chat.ID, err)
			return "Couldn't unsubscribe, try again later"
		}
		return "Daily reports are off"
	default:
		logrus.Infof("unknown command: %s", message.Text)
		return helpMessage
	}
}

// handleShortcut records "<name> <amount>" as today's expense
func (b *Bot) handleShortcut(ctx context.Context, text string) string {
	args := strings.Fields(text)
	if len(args) != 2 {
		return helpMessage
	}
	amount, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "The second word must be a whole number"
	}
	return b.create(ctx, &model.EntryInput{
		Name:   args[0],
		Date:   b.now().UTC().Format(dateLayout),
		Amount: amount,
		Kind:   model.Expense,
	})
}

func (b *Bot) handleList(ctx context.Context) string {
	entries, err := b.ledger.List(ctx)
	if err != nil {
		logrus.Errorf("bot consumer couldn't list entries: %v", err)
		return "Couldn't get entries, try again later"
	}
	if len(entries) == 0 {
		return "No entries yet"
	}
	if len(entries) > listLimit {
		entries = entries[:listLimit]
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, formatEntry(&entry))
	}
	return strings.Join(lines, "\n")
}

func (b *Bot) create(ctx context.Context, input *model.EntryInput) string {
	entry, err := b.ledger.Create(ctx, input)
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case err != nil:
		logrus.Errorf("bot consumer couldn't add entry: %v", err)
		return "Couldn't add the entry, try again later"
	}
	return "Added " + formatEntry(entry)
}

func (b *Bot) sendMessage(message *tgbotapi.Message, text string) error {
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyToMessageID = message.MessageID

	_, err := b.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("sendMessage, telegram bot couldn't send message: %v", err)
	}
	return nil
}

// parseAdd reads "<name> <amount> <income|expense> [date]"
func parseAdd(args string, now time.Time) (*model.EntryInput, error) {
	fields := strings.Fields(args)
	if len(fields) != 3 && len(fields) != 4 {
		return nil, errors.New("Usage: /add <name> <amount> <income|expense> [date]")
	}
	amount, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("amount must be a whole number, got %q", fields[1])
	}
	input := &model.EntryInput{
		Name:   fields[0],
		Date:   now.UTC().Format(dateLayout),
		Amount: amount,
		Kind:   model.Kind(strings.ToLower(fields[2])),
	}
	if len(fields) == 4 {
		input.Date = fields[3]
	}
	return input, nil
}

func formatEntry(entry *model.Entry) string {
	sign := "+"
	if entry.Kind == model.Expense {
		sign = "-"
	}
	return fmt.Sprintf("#%d %s %s %s%d", entry.ID, entry.Date, entry.Name, sign, entry.Amount)
}

func formatSummary(summary *model.Summary) string {
	return fmt.Sprintf("Income - %d\nExpense - %d\n\nBalance - %d", summary.Income, summary.Expense, summary.Balance)
}
