package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "road-inspector/internal/application"
	"road-inspector/internal/domain/entity"
	"road-inspector/internal/domain/port"
	"road-inspector/internal/monitoring"
)

const (
	msgStart = `👋 Привет! Я сообщаю о дефектах дорожного покрытия, найденных на видео.

🔔 Вы подписаны на уведомления о подтверждённых дефектах.

📋 Команды:
/status — статистика текущего прогона
/stop — отписаться от уведомлений
/help — справка`

	msgHelp = `ℹ️ Как работает бот:

1️⃣ Конвейер обрабатывает видеопоток с камеры
2️⃣ Тёмные пятна на дороге отслеживаются между кадрами
3️⃣ Пятно, найденное на нескольких кадрах подряд, считается дефектом
4️⃣ О каждом новом дефекте приходит сообщение

📋 Команды:
/start — подписаться на уведомления
/status — статистика текущего прогона
/stop — отписаться от уведомлений`

	msgStopped        = "🔕 Уведомления отключены. Отправьте /start, чтобы подписаться снова."
	msgUnknownCommand = "❓ Неизвестная команда. Используйте /help для справки."
	msgUseCommands    = "📋 Я понимаю только команды. Используйте /help для справки."
	msgStatusNA       = "⚠️ Статистика пока недоступна."
	msgError          = "⚠️ Не удалось выполнить команду. Попробуйте позже."
)

// StatusProvider отдаёт статистику текущего прогона
type StatusProvider interface {
	Summary() entity.RunSummary
}

// botAPI часть tgbotapi.BotAPI, которой пользуется бот
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot представляет Telegram-бота: рассылает подтверждённые дефекты
// и отвечает на команды подписчиков.
type Bot struct {
	api    botAPI
	chatID int64
	subs   *app.SubscriptionService
	status StatusProvider
}

// NewBot создаёт нового бота. chatID — чат, получающий уведомления
// независимо от подписок (0 — нет такого чата).
func NewBot(token string, chatID int64, subs *app.SubscriptionService, status StatusProvider) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	monitoring.Logf("Authorized on account %s", api.Self.UserName)

	return newBot(api, chatID, subs, status), nil
}

func newBot(api botAPI, chatID int64, subs *app.SubscriptionService, status StatusProvider) *Bot {
	return &Bot{
		api:    api,
		chatID: chatID,
		subs:   subs,
		status: status,
	}
}

// Publish отправляет сообщение о каждом подтверждённом на кадре дефекте.
func (b *Bot) Publish(ctx context.Context, r *entity.FrameReport) error {
	if !r.HasConfirmations() {
		return nil
	}

	recipients, err := b.recipients(ctx)
	if err != nil {
		return fmt.Errorf("list recipients: %w", err)
	}

	var errs []error
	for _, c := range r.Confirmations {
		text := formatConfirmation(c, r.UniqueDefects)
		for _, chatID := range recipients {
			if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
				errs = append(errs, fmt.Errorf("send to chat %d: %w", chatID, err))
			}
		}
	}
	return errors.Join(errs...)
}

// recipients собирает чаты для рассылки без повторов.
func (b *Bot) recipients(ctx context.Context) ([]int64, error) {
	var ids []int64
	seen := make(map[int64]bool)
	if b.chatID != 0 {
		ids = append(ids, b.chatID)
		seen[b.chatID] = true
	}
	if b.subs == nil {
		return ids, nil
	}

	active, err := b.subs.ActiveChats(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range active {
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	return ids, nil
}

// Run обрабатывает команды до отмены контекста.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, msgUseCommands)
		return
	}
	b.handleCommand(ctx, msg)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		if _, err := b.subs.Subscribe(ctx, chatID, userID); err != nil {
			monitoring.Logf("Error subscribing chat %d: %v", chatID, err)
			b.sendMessage(chatID, msgError)
			return
		}
		b.sendMessage(chatID, msgStart)

	case "stop":
		if err := b.subs.Unsubscribe(ctx, chatID); err != nil {
			monitoring.Logf("Error unsubscribing chat %d: %v", chatID, err)
			b.sendMessage(chatID, msgError)
			return
		}
		b.sendMessage(chatID, msgStopped)

	case "status":
		if b.status == nil {
			b.sendMessage(chatID, msgStatusNA)
			return
		}
		b.sendMessage(chatID, formatSummary(b.status.Summary()))

	case "help":
		b.sendMessage(chatID, msgHelp)

	default:
		b.sendMessage(chatID, msgUnknownCommand)
	}
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		monitoring.Logf("Error sending message: %v", err)
	}
}

func formatConfirmation(c entity.Confirmation, total int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚧 Дефект #%d подтверждён на кадре %d\n", c.TrackID, c.FrameIndex)
	fmt.Fprintf(&sb, "📍 Рамка: x=%d y=%d %d×%d\n", c.Box.X, c.Box.Y, c.Box.Width, c.Box.Height)
	fmt.Fprintf(&sb, "🎞 Кадров подряд: %d\n", c.Consecutive)
	fmt.Fprintf(&sb, "📊 Всего дефектов: %d", total)
	return sb.String()
}

func formatSummary(s entity.RunSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Прогон %s\n", s.SessionID)
	fmt.Fprintf(&sb, "🎞 Обработано кадров: %d\n", s.FramesProcessed)
	fmt.Fprintf(&sb, "⏭ Пропущено: %d, отброшено очередью: %d\n", s.FramesSkipped, s.FramesDropped)
	fmt.Fprintf(&sb, "🚧 Подтверждённых дефектов: %d", s.UniqueDefects)
	if s.UniqueDefects > 0 {
		fmt.Fprintf(&sb, "\n⏱ Кадров до подтверждения: %.1f ± %.1f", s.MeanFramesToConfirm, s.StdDevFramesToConfirm)
	}
	return sb.String()
}

var _ port.ReportSink = (*Bot)(nil)
