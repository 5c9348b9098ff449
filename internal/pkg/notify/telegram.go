// Package notify delivers out-of-band failure alerts to a Telegram chat.
// Sends are queued and paced so a burst of failures cannot trip the bot API
// rate limit.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/tonglam/letletme-data-sub006/internal/pkg/config"
)

// Min interval between two messages to the same chat (~30/min bot limit).
const sendInterval = 2 * time.Second

const queueSize = 100

// TelegramNotifier queues alert messages and sends them from one background
// worker. A nil *TelegramNotifier is safe to call; every method no-ops.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time

	queue  chan string
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewTelegramNotifier builds the notifier and verifies the bot token. A
// disabled config returns nil, which callers may use directly.
func NewTelegramNotifier(cfg *config.TelegramConfig) (*TelegramNotifier, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		return nil, fmt.Errorf("failed to verify telegram bot: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	n := &TelegramNotifier{
		bot:    bot,
		chatID: cfg.ChatID,
		queue:  make(chan string, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	n.wg.Add(1)
	go n.sender()

	slog.Info("Telegram notifier initialized", "chat_id", cfg.ChatID)
	return n, nil
}

// Notify queues one alert. A full queue drops the message rather than block
// the caller.
func (n *TelegramNotifier) Notify(ctx context.Context, message string) {
	if n == nil {
		return
	}
	select {
	case n.queue <- message:
	default:
		slog.Warn("Telegram notifier: queue full, alert dropped")
	}
}

// Close stops the worker after draining whatever is queued.
func (n *TelegramNotifier) Close() {
	if n == nil {
		return
	}
	n.cancel()
	n.wg.Wait()
}

func (n *TelegramNotifier) sender() {
	defer n.wg.Done()

	for {
		select {
		case <-n.ctx.Done():
			for {
				select {
				case message := <-n.queue:
					n.send(message)
				default:
					return
				}
			}
		case message := <-n.queue:
			n.send(message)
		}
	}
}

func (n *TelegramNotifier) send(message string) {
	n.mu.Lock()
	elapsed := time.Since(n.lastSend)
	if elapsed < sendInterval {
		n.mu.Unlock()
		select {
		case <-n.ctx.Done():
		case <-time.After(sendInterval - elapsed):
		}
		n.mu.Lock()
	}
	n.lastSend = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, message)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("Telegram send failed", "error", err)
		return
	}
	slog.Info("Telegram alert sent", "queue_length", len(n.queue))
}
