package conversation_test

import (
	"context"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"crystal-petrol-bot/internal/domain"
	"crystal-petrol-bot/internal/domain/model"
	"crystal-petrol-bot/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// ---- bot ----

type sentMessage struct {
	To   int64
	Text string
}

type sentKeyboard struct {
	To   int64
	Text string
	Rows [][]adapter.KeyboardButton
}

type sentDocument struct {
	To      int64
	Path    string
	Caption string
}

type MockBot struct {
	mu        sync.Mutex
	Messages  []sentMessage
	Keyboards []sentKeyboard
	Documents []sentDocument

	SendMessageFunc func(ctx context.Context, tgID int64, text string) error
}

func NewMockBot() *MockBot { return &MockBot{} }

func (b *MockBot) SendMessage(ctx context.Context, tgID int64, text string) error {
	if b.SendMessageFunc != nil {
		if err := b.SendMessageFunc(ctx, tgID, text); err != nil {
			return err
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Messages = append(b.Messages, sentMessage{To: tgID, Text: text})
	return nil
}

func (b *MockBot) SendKeyboard(ctx context.Context, tgID int64, text string, rows [][]adapter.KeyboardButton) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Keyboards = append(b.Keyboards, sentKeyboard{To: tgID, Text: text, Rows: rows})
	return nil
}

func (b *MockBot) SendDocument(ctx context.Context, tgID int64, path, caption string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Documents = append(b.Documents, sentDocument{To: tgID, Path: path, Caption: caption})
	return nil
}

func (b *MockBot) lastKeyboard() *sentKeyboard {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.Keyboards) == 0 {
		return nil
	}
	return &b.Keyboards[len(b.Keyboards)-1]
}

func (b *MockBot) lastMessage() *sentMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.Messages) == 0 {
		return nil
	}
	return &b.Messages[len(b.Messages)-1]
}

func (b *MockBot) messagesTo(tgID int64) []sentMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []sentMessage
	for _, m := range b.Messages {
		if m.To == tgID {
			out = append(out, m)
		}
	}
	return out
}

// ---- user repository ----

type MockUserRepo struct {
	mu      sync.Mutex
	records []model.UserRecord
	nextID  int64

	SaveFunc  func(ctx context.Context, u *model.UserRecord) error
	CountFunc func(ctx context.Context) (int, error)
}

func NewMockUserRepo() *MockUserRepo { return &MockUserRepo{} }

// Save mirrors the store's upsert-ignore: a duplicate telegram_id is a no-op.
func (r *MockUserRepo) Save(ctx context.Context, u *model.UserRecord) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, u)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.TelegramID == u.TelegramID {
			return nil
		}
	}
	r.nextID++
	cp := *u
	cp.ID = r.nextID
	r.records = append(r.records, cp)
	return nil
}

func (r *MockUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.TelegramID == tgID {
			cp := rec
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns newest-first, matching ORDER BY id DESC.
func (r *MockUserRepo) List(ctx context.Context, offset, limit int) ([]model.UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.UserRecord
	for i := len(r.records) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

// truncate drops all but the first n records, simulating external deletion.
func (r *MockUserRepo) truncate(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) > n {
		r.records = r.records[:n]
	}
}

func (r *MockUserRepo) Count(ctx context.Context) (int, error) {
	if r.CountFunc != nil {
		return r.CountFunc(ctx)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}

// ---- rating repository ----

type MockRatingRepo struct {
	mu      sync.Mutex
	records []model.RatingRecord

	SaveFunc func(ctx context.Context, rec *model.RatingRecord) error
}

func NewMockRatingRepo() *MockRatingRepo { return &MockRatingRepo{} }

func (r *MockRatingRepo) Save(ctx context.Context, rec *model.RatingRecord) error {
	if r.SaveFunc != nil {
		return r.SaveFunc(ctx, rec)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *rec)
	return nil
}

func (r *MockRatingRepo) Exists(ctx context.Context, tgID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.TelegramID == tgID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MockRatingRepo) AverageStars(ctx context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return 0, domain.ErrNoRatings
	}
	sum := 0
	for _, rec := range r.records {
		sum += rec.Stars
	}
	avg := float64(sum) / float64(len(r.records))
	return math.Round(avg*100) / 100, nil
}

// ---- session store ----

type MockSessionStore struct {
	mu       sync.Mutex
	sessions map[int64]model.Session
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{sessions: make(map[int64]model.Session)}
}

func (s *MockSessionStore) Get(ctx context.Context, tgID int64) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tgID]
	if !ok {
		return nil, nil
	}
	cp := sess
	return &cp, nil
}

func (s *MockSessionStore) Set(ctx context.Context, tgID int64, sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[tgID] = *sess
	return nil
}

func (s *MockSessionStore) Clear(ctx context.Context, tgID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tgID)
	return nil
}

// ---- exporter ----

type MockExporter struct {
	mu    sync.Mutex
	Calls int
	Path  string
	Err   error
}

func NewMockExporter() *MockExporter {
	return &MockExporter{Path: "exported_data.xlsx"}
}

func (e *MockExporter) Export(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Calls++
	if e.Err != nil {
		return "", e.Err
	}
	return e.Path, nil
}
