package conversation

import (
	"context"
	"fmt"
	"strings"

	"crystal-petrol-bot/internal/domain/model"
)

// listPageSize is the fixed number of users shown per admin listing page.
const listPageSize = 5

func (e *Engine) handleUsersCommand(ctx context.Context, in Inbound, sess *model.Session) error {
	if !e.requireAdmin(ctx, in) {
		return nil
	}
	sess.Step = model.StepAwaitListPage
	sess.ListPage = 0
	if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
		return err
	}
	return e.sendUsersPage(ctx, in.TelegramID, 0)
}

func (e *Engine) handleListPrev(ctx context.Context, in Inbound, sess *model.Session) error {
	if sess.ListPage > 0 {
		sess.ListPage--
		if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
			return err
		}
	}
	return e.sendUsersPage(ctx, in.TelegramID, sess.ListPage)
}

func (e *Engine) handleListNext(ctx context.Context, in Inbound, sess *model.Session) error {
	total, err := e.users.Count(ctx)
	if err != nil {
		return err
	}
	if (sess.ListPage+1)*listPageSize < total {
		sess.ListPage++
		if err := e.sessions.Set(ctx, in.TelegramID, sess); err != nil {
			return err
		}
	}
	return e.sendUsersPage(ctx, in.TelegramID, sess.ListPage)
}

// Inputs other than the navigation buttons are ignored while listing.
func (e *Engine) handleListIgnore(ctx context.Context, in Inbound, sess *model.Session) error {
	return nil
}

// sendUsersPage renders one page, newest registrations first. Navigation
// affordances are derived: "previous" from the page index, "next" from the
// total count.
func (e *Engine) sendUsersPage(ctx context.Context, tgID int64, page int) error {
	total, err := e.users.Count(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		return e.bot.SendKeyboard(ctx, tgID, msgNoUsers, listNavKeyboard(false, false))
	}

	offset := page * listPageSize
	records, err := e.users.List(ctx, offset, listPageSize)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		// Page ran past the end, rows were deleted underneath us.
		return e.bot.SendMessage(ctx, tgID, msgNoUsers)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Foydalanuvchilar (%d–%d):\n\n", offset+1, offset+len(records))
	for i, u := range records {
		fmt.Fprintf(&b, "%d. 👤 %s\n📞 %s\n📍 %s | 🌐 %s\n\n", offset+i+1, u.Name, u.Phone, u.Region, u.Language)
	}

	hasPrev := page > 0
	hasNext := offset+len(records) < total
	return e.bot.SendKeyboard(ctx, tgID, strings.TrimSpace(b.String()), listNavKeyboard(hasPrev, hasNext))
}
