package telegram

import (
	"github.com/moviemate/moviemate-bot/internal/dialog"
	"github.com/moviemate/moviemate-bot/internal/domain"
)

// Menu labels. The dialog controller never sees these; it names a menu
// and free text matching a label is decoded back into a command here.
const (
	labelAddMovie      = "➕ Add Movie"
	labelListMovies    = "📋 List Movies"
	labelRandomMovie   = "🎲 Random Movie"
	labelPartnerStatus = "🤝 Partner Status"
	labelInvite        = "🔗 Invite"
	labelUnlink        = "🔓 Unlink"
	labelTMDBMenu      = "🌐 TMDB Menu"

	labelListPlanned = "Planned"
	labelListLoved   = "Loved"
	labelEditMovies  = "✏️ Edit Movies"
	labelBackToMenu  = "⬅️ Back to Menu"

	labelRandomPlanned = "Random from Planned"
	labelRandomLoved   = "Random from Loved"
	labelRandomAll     = "Random from All"

	labelTMDBSearch   = "🔍 Search Movie (TMDB)"
	labelTMDBPopular  = "🎬 Popular Movies (TMDB)"
	labelTMDBTopRated = "⭐ Top Rated (TMDB)"
)

func menuMarkup(menu domain.Menu) *ReplyKeyboardMarkup {
	var rows [][]KeyboardButton
	switch menu {
	case domain.MenuMain:
		rows = [][]KeyboardButton{
			{{Text: labelAddMovie}, {Text: labelListMovies}},
			{{Text: labelRandomMovie}, {Text: labelPartnerStatus}},
			{{Text: labelInvite}, {Text: labelUnlink}},
			{{Text: labelTMDBMenu}},
		}
	case domain.MenuList:
		rows = [][]KeyboardButton{
			{{Text: labelListPlanned}, {Text: labelListLoved}},
			{{Text: labelEditMovies}},
			{{Text: labelBackToMenu}},
		}
	case domain.MenuRandom:
		rows = [][]KeyboardButton{
			{{Text: labelRandomPlanned}, {Text: labelRandomLoved}},
			{{Text: labelRandomAll}},
			{{Text: labelBackToMenu}},
		}
	case domain.MenuTMDB:
		rows = [][]KeyboardButton{
			{{Text: labelTMDBSearch}},
			{{Text: labelTMDBPopular}},
			{{Text: labelTMDBTopRated}},
			{{Text: labelBackToMenu}},
		}
	default:
		return nil
	}
	return &ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}

// decodeMenuLabel maps a menu button press (which arrives as plain
// message text) to the command it stands for.
func decodeMenuLabel(text string) (dialog.Command, bool) {
	switch text {
	case labelAddMovie:
		return dialog.Command{Name: "add"}, true
	case labelListMovies:
		return dialog.Command{Name: "listmenu"}, true
	case labelRandomMovie:
		return dialog.Command{Name: "randommenu"}, true
	case labelPartnerStatus:
		return dialog.Command{Name: "partner_status"}, true
	case labelInvite:
		return dialog.Command{Name: "invite"}, true
	case labelUnlink:
		return dialog.Command{Name: "unlink"}, true
	case labelTMDBMenu:
		return dialog.Command{Name: "tmdbmenu"}, true
	case labelListPlanned:
		return dialog.Command{Name: "list", Args: []string{"planned"}}, true
	case labelListLoved:
		return dialog.Command{Name: "list", Args: []string{"loved"}}, true
	case labelEditMovies:
		return dialog.Command{Name: "editmenu"}, true
	case labelBackToMenu:
		return dialog.Command{Name: "menu"}, true
	case labelRandomPlanned:
		return dialog.Command{Name: "random", Args: []string{"planned"}}, true
	case labelRandomLoved:
		return dialog.Command{Name: "random", Args: []string{"loved"}}, true
	case labelRandomAll:
		return dialog.Command{Name: "random", Args: []string{"all"}}, true
	case labelTMDBSearch:
		return dialog.Command{Name: "search"}, true
	case labelTMDBPopular:
		return dialog.Command{Name: "popular"}, true
	case labelTMDBTopRated:
		return dialog.Command{Name: "toprated"}, true
	default:
		return dialog.Command{}, false
	}
}

func inlineMarkup(kb *domain.Keyboard) *InlineKeyboardMarkup {
	if kb == nil || len(kb.Rows) == 0 {
		return nil
	}
	markup := &InlineKeyboardMarkup{}
	for _, row := range kb.Rows {
		buttons := make([]InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, InlineKeyboardButton{Text: b.Label, CallbackData: b.Token})
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}
	return markup
}
