package conversation

import "crystal-petrol-bot/internal/domain/ports/adapter"

// Menu and navigation button labels. These are wire-level values: the
// classifier matches inbound text against them.
const (
	btnRegister   = "📝 Ro'yxatdan o'tish"
	btnRate       = "⭐️ Crystal Petrol servisini baholash"
	btnContactUs  = "📞 Crystal Petrol bilan aloqa"
	btnOrderFuel  = "⛽ Benzin buyurtma qilish"
	btnBack       = "🔙 Orqaga"
	btnMainMenu   = "🏠 Bosh menyu"
	btnPrevPage   = "⬅️ Orqaga"
	btnNextPage   = "➡️ Keyingi"
	btnSharePhone = "📱 Kontaktni yuborish"
)

const (
	msgMainMenu          = "🔙 Bosh menyuga qaytdingiz. Quyidagi menyudan tanlang:"
	msgChooseLanguage    = "Tilni tanlang / Choose language / Выберите язык"
	msgBadLanguage       = "❌ Noto‘g‘ri tanlov. Iltimos, tilni tanlang."
	msgAskPhone          = "Telefon raqamingizni yuboring yoki yozing:"
	msgBadPhone          = "❌ Telefon raqam noto‘g‘ri formatda. Masalan: +998901234567"
	msgAskRegion         = "Qayerdansiz (viloyat/shahar):"
	msgRegistered        = "✅ Ro‘yxatdan o‘tganingiz uchun rahmat!\n\n⬅️ Bosh menyuga qaytish uchun 'Orqaga' tugmasini bosing."
	msgAlreadyRegistered = "✅ Siz allaqachon ro'yxatdan o'tgansiz."
	msgAskRating         = "Iltimos, servisimizni qanday baholaysiz? (1–5 yulduz)"
	msgBadRating         = "❌ Baho noto‘g‘ri. Iltimos, 1 dan 5 gacha yulduz tanlang."
	msgRatingThanks      = "✅ Bahoyingiz uchun rahmat!"
	msgRegisterFirst     = "❗️ Baholashdan oldin ro‘yxatdan o‘ting."
	msgAlreadyRated      = "✅ Siz allaqachon baholagansiz. Rahmat!"
	msgAskSupport        = "Muammo yoki savolingizni yozing. Tez orada javob beramiz."
	msgSupportSent       = "Xabaringiz yuborildi. Rahmat!"
	msgContactInfo       = "Biz bilan bog'lanish:\n📞 +998 97 555 25 00"
	msgOrderSoon         = "Benzin buyurtma qilish xizmati tez orada ishga tushadi. Kuzatib boring!"
	msgNoPermission      = "❌ Sizda ruxsat yo'q."
	msgNoUsers           = "🛑 Foydalanuvchilar yo‘q."
	msgNoRatings         = "🚫 Hozircha baholar mavjud emas."
	msgExportFailed      = "⚠️ Excel faylini tayyorlashda xatolik yuz berdi."
	msgExportCaption     = "📊 Yangilangan Excel fayli!"
)

// languageCodes maps the picker labels to stored language codes.
var languageCodes = map[string]string{
	"🇺🇿 O‘zbekcha": "uz",
	"🇷🇺 Русский":   "ru",
	"🇬🇧 English":   "en",
}

// namePrompts is the one prompt rendered in the chosen language.
var namePrompts = map[string]string{
	"uz": "Ismingizni kiriting:",
	"ru": "Введите ваше имя:",
	"en": "Please enter your name:",
}

var regions = []string{
	"Toshkent", "Toshkent viloyati", "Andijon", "Fargʻona",
	"Namangan", "Samarqand", "Buxoro", "Xorazm",
	"Qashqadaryo", "Surxondaryo", "Jizzax", "Navoiy",
}

func btn(text string) adapter.KeyboardButton { return adapter.KeyboardButton{Text: text} }

func mainMenuKeyboard() [][]adapter.KeyboardButton {
	return [][]adapter.KeyboardButton{
		{btn(btnRegister), btn(btnRate)},
		{btn(btnContactUs), btn(btnOrderFuel)},
	}
}

func backKeyboard() [][]adapter.KeyboardButton {
	return [][]adapter.KeyboardButton{{btn(btnBack)}}
}

func languageKeyboard() [][]adapter.KeyboardButton {
	rows := [][]adapter.KeyboardButton{
		{btn("🇺🇿 O‘zbekcha")},
		{btn("🇷🇺 Русский")},
		{btn("🇬🇧 English")},
	}
	return append(rows, []adapter.KeyboardButton{btn(btnBack)})
}

func phoneKeyboard() [][]adapter.KeyboardButton {
	return [][]adapter.KeyboardButton{
		{{Text: btnSharePhone, RequestContact: true}},
		{btn(btnBack)},
	}
}

func regionKeyboard() [][]adapter.KeyboardButton {
	rows := make([][]adapter.KeyboardButton, 0, len(regions)+1)
	for _, region := range regions {
		rows = append(rows, []adapter.KeyboardButton{btn(region)})
	}
	return append(rows, []adapter.KeyboardButton{btn(btnBack)})
}

func ratingKeyboard() [][]adapter.KeyboardButton {
	rows := make([][]adapter.KeyboardButton, 0, 5)
	stars := ""
	for i := 0; i < 5; i++ {
		stars += "⭐️"
		rows = append(rows, []adapter.KeyboardButton{btn(stars)})
	}
	return rows
}

func listNavKeyboard(hasPrev, hasNext bool) [][]adapter.KeyboardButton {
	var nav []adapter.KeyboardButton
	if hasPrev {
		nav = append(nav, btn(btnPrevPage))
	}
	if hasNext {
		nav = append(nav, btn(btnNextPage))
	}
	var rows [][]adapter.KeyboardButton
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	return append(rows, []adapter.KeyboardButton{btn(btnMainMenu)})
}
