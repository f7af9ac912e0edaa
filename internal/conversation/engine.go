package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"crystal-petrol-bot/internal/domain"
	"crystal-petrol-bot/internal/domain/model"
	"crystal-petrol-bot/internal/domain/ports/adapter"
	"crystal-petrol-bot/internal/domain/ports/repository"
	"crystal-petrol-bot/internal/infra/logging"
	"crystal-petrol-bot/internal/infra/metrics"
)

type handlerFunc func(ctx context.Context, in Inbound, sess *model.Session) error

// Engine drives the per-user form wizard: registration, rating, support and
// the admin listing. All transitions live in one (step, token) table; each
// handler validates input, moves the session forward or back, and finally
// persists through the injected repositories.
type Engine struct {
	sessions repository.SessionStore
	users    repository.UserRepository
	ratings  repository.RatingRepository
	exporter adapter.Exporter
	bot      adapter.TelegramBotAdapter
	adminID  int64
	log      *zerolog.Logger

	routes   map[model.Step]map[token]handlerFunc
	fallback map[model.Step]handlerFunc
}

func NewEngine(
	sessions repository.SessionStore,
	users repository.UserRepository,
	ratings repository.RatingRepository,
	exporter adapter.Exporter,
	bot adapter.TelegramBotAdapter,
	adminID int64,
	logger *zerolog.Logger,
) *Engine {
	e := &Engine{
		sessions: sessions,
		users:    users,
		ratings:  ratings,
		exporter: exporter,
		bot:      bot,
		adminID:  adminID,
		log:      logger,
	}
	e.buildRoutes()
	return e
}

func (e *Engine) buildRoutes() {
	e.routes = map[model.Step]map[token]handlerFunc{
		model.StepIdle: {
			tokenRegister:  e.handleRegister,
			tokenRate:      e.handleRateEntry,
			tokenContactUs: e.handleContactUs,
			tokenOrderFuel: e.handleOrderFuel,
			tokenSupport:   e.handleSupportEntry,
			tokenUsers:     e.handleUsersCommand,
			tokenRatings:   e.handleRatingsCommand,
			tokenExport:    e.handleExportCommand,
			tokenBack:      e.handleStart,
		},
		model.StepAwaitLanguage: {
			tokenBack: e.handleStart,
		},
		model.StepAwaitName: {
			tokenBack: e.backToLanguage,
		},
		model.StepAwaitPhone: {
			tokenBack: e.backToName,
		},
		model.StepAwaitRegion: {
			tokenBack: e.backToPhone,
		},
		model.StepAwaitRating: {
			tokenStars: e.handleRatingSubmit,
		},
		model.StepAwaitSupport: {},
		model.StepAwaitListPage: {
			tokenMainMenu: e.handleStart,
			tokenPrevPage: e.handleListPrev,
			tokenNextPage: e.handleListNext,
		},
	}
	e.fallback = map[model.Step]handlerFunc{
		model.StepIdle:          e.handleStart,
		model.StepAwaitLanguage: e.handleLanguageChoice,
		model.StepAwaitName:     e.handleNameInput,
		model.StepAwaitPhone:    e.handlePhoneInput,
		model.StepAwaitRegion:   e.finalizeRegistration,
		model.StepAwaitRating:   e.handleRatingInvalid,
		model.StepAwaitSupport:  e.handleSupportMessage,
		model.StepAwaitListPage: e.handleListIgnore,
	}

	// /start resets any flow from any step; /support may interrupt one.
	for _, m := range e.routes {
		m[tokenStart] = e.handleStart
		m[tokenSupport] = e.handleSupportEntry
	}
}

// HandleMessage routes one inbound event through the transition table.
func (e *Engine) HandleMessage(ctx context.Context, in Inbound) error {
	log := logging.With(ctx, e.log)
	defer logging.TraceDuration(log, "Engine.HandleMessage")()

	sess, err := e.sessions.Get(ctx, in.TelegramID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		sess = model.NewSession()
	}

	tok := classify(in)
	if h, ok := e.routes[sess.Step][tok]; ok {
		return h(ctx, in, sess)
	}
	if h, ok := e.fallback[sess.Step]; ok {
		return h(ctx, in, sess)
	}
	// Unknown step, e.g. a stale session written by a different build.
	log.Warn().Str("step", string(sess.Step)).Msg("unknown session step, resetting")
	return e.handleStart(ctx, in, sess)
}

// ---- main menu / static entries ----

func (e *Engine) handleStart(ctx context.Context, in Inbound, _ *model.Session) error {
	if err := e.sessions.Clear(ctx, in.TelegramID); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgMainMenu, mainMenuKeyboard())
}

func (e *Engine) handleContactUs(ctx context.Context, in Inbound, _ *model.Session) error {
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgContactInfo, backKeyboard())
}

func (e *Engine) handleOrderFuel(ctx context.Context, in Inbound, _ *model.Session) error {
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgOrderSoon, backKeyboard())
}

// ---- registration flow ----

func (e *Engine) handleRegister(ctx context.Context, in Inbound, sess *model.Session) error {
	_, err := e.users.FindByTelegramID(ctx, in.TelegramID)
	switch {
	case err == nil:
		return e.bot.SendMessage(ctx, in.TelegramID, msgAlreadyRegistered)
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	sess.Step = model.StepAwaitLanguage
	if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgChooseLanguage, languageKeyboard())
}

func (e *Engine) handleLanguageChoice(ctx context.Context, in Inbound, sess *model.Session) error {
	code, ok := languageCodes[in.Text]
	if !ok {
		return e.bot.SendMessage(ctx, in.TelegramID, msgBadLanguage)
	}

	sess.Language = code
	sess.Step = model.StepAwaitName
	if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, namePrompts[code], backKeyboard())
}

func (e *Engine) handleNameInput(ctx context.Context, in Inbound, sess *model.Session) error {
	name := strings.TrimSpace(in.Text)
	if name == "" {
		return e.bot.SendKeyboard(ctx, in.TelegramID, namePrompts[sess.Language], backKeyboard())
	}

	sess.Name = name
	sess.Step = model.StepAwaitPhone
	if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgAskPhone, phoneKeyboard())
}

func (e *Engine) handlePhoneInput(ctx context.Context, in Inbound, sess *model.Session) error {
	raw := in.Text
	if in.ContactPhone != "" {
		raw = in.ContactPhone
	}
	phone, err := NormalizePhone(raw)
	if err != nil {
		// Validation failure: reprompt, step unchanged.
		return e.bot.SendMessage(ctx, in.TelegramID, msgBadPhone)
	}

	sess.Phone = phone
	sess.Step = model.StepAwaitRegion
	if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgAskRegion, regionKeyboard())
}

func (e *Engine) finalizeRegistration(ctx context.Context, in Inbound, sess *model.Session) error {
	sess.Region = strings.TrimSpace(in.Text)
	rec, err := model.NewUserRecord(in.TelegramID, in.FullName, sess.Name, sess.Phone, sess.Region, sess.Language)
	if err != nil {
		return err
	}

	// Persist first: the record is the source of truth. The admin ping
	// afterwards is best-effort and never fails the flow.
	if err := e.users.Save(ctx, rec); err != nil {
		return err
	}
	metrics.IncRegistration()

	notice := fmt.Sprintf(
		"📥 Yangi foydalanuvchi ro‘yxatdan o‘tdi:\n\n👤 Ism: %s\n📞 Telefon: %s\n📍 Hudud: %s\n🌐 Til: %s",
		sess.Name, sess.Phone, sess.Region, sess.Language,
	)
	e.notifyAdmin(ctx, notice)

	if err := e.sessions.Clear(ctx, in.TelegramID); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgRegistered, backKeyboard())
}

func (e *Engine) backToLanguage(ctx context.Context, in Inbound, sess *model.Session) error {
	sess.Step = model.StepAwaitLanguage
	if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgChooseLanguage, languageKeyboard())
}

func (e *Engine) backToName(ctx context.Context, in Inbound, sess *model.Session) error {
	sess.Step = model.StepAwaitName
	if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, namePrompts[sess.Language], backKeyboard())
}

func (e *Engine) backToPhone(ctx context.Context, in Inbound, sess *model.Session) error {
	sess.Step = model.StepAwaitPhone
	if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgAskPhone, phoneKeyboard())
}

// ---- rating flow ----

// handleRateEntry guards the rating flow: the caller must hold a complete
// registration and must not have rated before. The already-rated check is a
// pre-query, so a concurrent duplicate submission can slip through; that
// matches the accepted behavior of this system.
func (e *Engine) handleRateEntry(ctx context.Context, in Inbound, sess *model.Session) error {
	user, err := e.users.FindByTelegramID(ctx, in.TelegramID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if !user.Registered() {
		return e.bot.SendMessage(ctx, in.TelegramID, msgRegisterFirst)
	}

	rated, err := e.ratings.Exists(ctx, in.TelegramID)
	if err != nil {
		return err
	}
	if rated {
		return e.bot.SendMessage(ctx, in.TelegramID, msgAlreadyRated)
	}

	sess.Step = model.StepAwaitRating
	if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgAskRating, ratingKeyboard())
}

func (e *Engine) handleRatingSubmit(ctx context.Context, in Inbound, _ *model.Session) error {
	stars := starCount(in.Text)
	rec, err := model.NewRatingRecord(in.TelegramID, in.FullName, stars)
	if err != nil {
		return e.bot.SendMessage(ctx, in.TelegramID, msgBadRating)
	}

	if err := e.ratings.Save(ctx, rec); err != nil {
		return err
	}
	metrics.IncRating(stars)

	e.notifyAdmin(ctx, fmt.Sprintf("⭐️ Crystal Petrol servisiga baho: %d / 5\n👤 %s", stars, in.FullName))

	if err := e.sessions.Clear(ctx, in.TelegramID); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgRatingThanks, backKeyboard())
}

func (e *Engine) handleRatingInvalid(ctx context.Context, in Inbound, _ *model.Session) error {
	return e.bot.SendMessage(ctx, in.TelegramID, msgBadRating)
}

// ---- support flow ----

func (e *Engine) handleSupportEntry(ctx context.Context, in Inbound, sess *model.Session) error {
	sess.Step = model.StepAwaitSupport
	if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
		return err
	}
	return e.bot.SendMessage(ctx, in.TelegramID, msgAskSupport)
}

func (e *Engine) handleSupportMessage(ctx context.Context, in Inbound, _ *model.Session) error {
	username := in.Username
	if username == "" {
		username = "N/A"
	}
	e.notifyAdmin(ctx, fmt.Sprintf("📨 Texnik murojaat:\n\n👤 %s\n🆔 @%s\n\n💬 %s", in.FullName, username, in.Text))
	metrics.IncSupportRequest()

	if err := e.sessions.Clear(ctx, in.TelegramID); err != nil {
		return err
	}
	if err := e.bot.SendMessage(ctx, in.TelegramID, msgSupportSent); err != nil {
		return err
	}
	return e.bot.SendKeyboard(ctx, in.TelegramID, msgMainMenu, mainMenuKeyboard())
}

// ---- privileged commands ----

func (e *Engine) requireAdmin(ctx context.Context, in Inbound) bool {
	if in.TelegramID != e.adminID {
		metrics.IncAdminDenied()
		_ = e.bot.SendMessage(ctx, in.TelegramID, msgNoPermission)
		return false
	}
	return true
}

func (e *Engine) handleRatingsCommand(ctx context.Context, in Inbound, _ *model.Session) error {
	if !e.requireAdmin(ctx, in) {
		return nil
	}
	avg, err := e.ratings.AverageStars(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoRatings) {
			return e.bot.SendMessage(ctx, in.TelegramID, msgNoRatings)
		}
		return err
	}
	return e.bot.SendMessage(ctx, in.TelegramID, fmt.Sprintf("⭐️ O'rtacha baho: %.2f / 5", avg))
}

func (e *Engine) handleExportCommand(ctx context.Context, in Inbound, _ *model.Session) error {
	if !e.requireAdmin(ctx, in) {
		return nil
	}
	path, err := e.exporter.Export(ctx)
	if err != nil {
		metrics.IncExportRun(false)
		logging.With(ctx, e.log).Error().Err(err).Msg("export failed")
		return e.bot.SendMessage(ctx, in.TelegramID, msgExportFailed)
	}
	metrics.IncExportRun(true)
	return e.bot.SendDocument(ctx, in.TelegramID, path, msgExportCaption)
}

// notifyAdmin pings the configured admin chat. Failures are logged and
// counted but never surfaced to the originating flow.
func (e *Engine) notifyAdmin(ctx context.Context, text string) {
	if err := e.bot.SendMessage(ctx, e.adminID, text); err != nil {
		metrics.IncNotifyFailure()
		logging.With(ctx, e.log).Warn().Err(err).Msg("admin notification failed")
	}
}
