package conversation

import "strings"

// Inbound is one classified chat event handed over by the dispatch shell.
type Inbound struct {
	TelegramID   int64
	FullName     string
	Username     string
	Text         string
	Command      string // "start", "support", "users", ... without the slash
	ContactPhone string // set when the user shared a contact payload
}

// token is the classified form of an inbound message. The engine routes on
// (current step, token) pairs instead of matching display strings inline.
type token int

const (
	tokenText token = iota // free text, contact payloads included
	tokenStart
	tokenRegister
	tokenRate
	tokenContactUs
	tokenOrderFuel
	tokenBack
	tokenMainMenu
	tokenPrevPage
	tokenNextPage
	tokenSupport
	tokenUsers
	tokenRatings
	tokenExport
	tokenStars
)

func classify(in Inbound) token {
	switch in.Command {
	case "start":
		return tokenStart
	case "support":
		return tokenSupport
	case "users":
		return tokenUsers
	case "ratings":
		return tokenRatings
	case "download_excel":
		return tokenExport
	}

	switch in.Text {
	case btnRegister:
		return tokenRegister
	case btnRate:
		return tokenRate
	case btnContactUs:
		return tokenContactUs
	case btnOrderFuel:
		return tokenOrderFuel
	case btnBack:
		return tokenBack
	case btnMainMenu:
		return tokenMainMenu
	case btnPrevPage:
		return tokenPrevPage
	case btnNextPage:
		return tokenNextPage
	}

	if starCount(in.Text) > 0 {
		return tokenStars
	}
	return tokenText
}

// starCount returns how many stars a rating button press carries, or 0 when
// the text is not made of stars.
func starCount(text string) int {
	if text == "" || strings.Trim(text, "⭐️") != "" {
		return 0
	}
	return strings.Count(text, "⭐")
}
