package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crystal-petrol-bot/internal/config"
	"crystal-petrol-bot/internal/conversation"
	"crystal-petrol-bot/internal/domain/ports/adapter"
	"crystal-petrol-bot/internal/infra/logging"
	"crystal-petrol-bot/internal/infra/metrics"
	red "crystal-petrol-bot/internal/infra/redis"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

const msgGenericError = "⚠️ Xatolik yuz berdi. Keyinroq urinib ko‘ring."

// RealTelegramBotAdapter polls updates with tgbotapi, classifies them into
// inbound events and hands them to the conversation engine. It also
// implements the outbound port the engine sends through.
type RealTelegramBotAdapter struct {
	bot         *tgbotapi.BotAPI
	cfg         *config.BotConfig
	engine      *conversation.Engine
	rateLimiter *red.RateLimiter
	log         *zerolog.Logger

	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewRealTelegramBotAdapter(cfg *config.BotConfig, rateLimiter *red.RateLimiter, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		rateLimiter:   rateLimiter,
		log:           logger,
		updateWorkers: workers,
	}, nil
}

// SetEngine binds the conversation engine. The engine is constructed after
// the adapter because it sends replies through it.
func (r *RealTelegramBotAdapter) SetEngine(engine *conversation.Engine) {
	r.engine = engine
}

func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	if r.engine == nil {
		return errors.New("conversation engine not bound")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	// Updates are sharded by sender: one user's messages always land on the
	// same worker and are handled in order, concurrency exists only across
	// users.
	var wg sync.WaitGroup
	shards := make([]chan tgbotapi.Update, r.updateWorkers)
	for i := range shards {
		shards[i] = make(chan tgbotapi.Update, 100)
	}

	for i, ch := range shards {
		wg.Add(1)
		go func(id int, ch <-chan tgbotapi.Update) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-ch:
					if err := r.handleUpdate(ctx, up); err != nil {
						r.log.Error().Err(err).Int("worker", id).Msg("update handling failed")
					}
				}
			}
		}(i, ch)
	}

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			msg := up.Message
			if msg == nil || msg.From == nil {
				continue
			}
			shards[shardIndex(msg.From.ID, len(shards))] <- up
		}
	}
}

// shardIndex maps a Telegram ID onto a worker shard.
func shardIndex(tgID int64, shards int) int {
	i := int(tgID % int64(shards))
	if i < 0 {
		i += shards
	}
	return i
}

func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return nil
	}
	tgID := msg.From.ID

	in := conversation.Inbound{
		TelegramID: tgID,
		FullName:   fullName(msg.From),
		Username:   msg.From.UserName,
		Text:       msg.Text,
		Command:    msg.Command(),
	}
	if msg.Contact != nil {
		in.ContactPhone = msg.Contact.PhoneNumber
	}

	kind := "message"
	switch {
	case in.Command != "":
		kind = "command"
	case in.ContactPhone != "":
		kind = "contact"
	}
	metrics.IncUpdate(kind)

	if r.rateLimiter != nil {
		key := red.UserCommandKey(tgID, "/"+in.Command)
		if in.Command == "" {
			key = red.UserCommandKey(tgID, "message")
		}
		allowed, err := r.rateLimiter.Allow(ctx, key, 20, time.Minute)
		if err != nil {
			r.log.Warn().Err(err).Msg("rate limiter unavailable")
		} else if !allowed {
			return r.SendMessage(ctx, tgID, "So‘rovlar juda ko‘p. Birozdan so‘ng urinib ko‘ring.")
		}
	}

	ctx = logging.WithTraceID(logging.WithTgID(ctx, tgID), uuid.NewString())
	if err := r.engine.HandleMessage(ctx, in); err != nil {
		logging.With(ctx, r.log).Error().Err(err).Msg("conversation step failed")
		return r.SendMessage(ctx, tgID, msgGenericError)
	}
	return nil
}

func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(tgID, text)
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) SendKeyboard(ctx context.Context, tgID int64, text string, rows [][]adapter.KeyboardButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	kbRows := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kbRow := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, b := range row {
			if b.RequestContact {
				kbRow = append(kbRow, tgbotapi.NewKeyboardButtonContact(b.Text))
			} else {
				kbRow = append(kbRow, tgbotapi.NewKeyboardButton(b.Text))
			}
		}
		kbRows = append(kbRows, kbRow)
	}

	msg := tgbotapi.NewMessage(tgID, text)
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(kbRows...)
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) SendDocument(ctx context.Context, tgID int64, path, caption string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	doc := tgbotapi.NewDocument(tgID, tgbotapi.FilePath(path))
	doc.Caption = caption
	_, err := r.bot.Send(doc)
	return err
}

func fullName(u *tgbotapi.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
