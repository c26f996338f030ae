package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moviemate/moviemate-bot/internal/dialog"
	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/moviemate/moviemate-bot/internal/repository/memory"
	"github.com/stretchr/testify/assert"
)

// stubUserRepo stands in for the user store where the mock machinery of
// the dialog package is out of reach; every chat is unknown.
type stubUserRepo struct{}

func (stubUserRepo) FindByChatID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (stubUserRepo) Create(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (stubUserRepo) SetInviteCode(context.Context, uuid.UUID, *string) error  { return nil }
func (stubUserRepo) FindByInviteCode(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}
func (stubUserRepo) LinkPartners(context.Context, uuid.UUID, uuid.UUID) error  { return nil }
func (stubUserRepo) UnlinkPartner(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func TestBot_FlowInputBeatsMenuLabels(t *testing.T) {
	var sent []string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			var req sendMessageRequest
			json.NewDecoder(r.Body).Decode(&req)
			sent = append(sent, req.Text)
		}
		w.Write([]byte(`{"ok":true,"result":{"message_id":1,"chat":{"id":42}}}`))
	}))
	defer api.Close()

	ctx := context.Background()
	store := memory.NewSessionStore(time.Hour)
	controller := dialog.NewController(stubUserRepo{}, nil, nil, store)
	bot := NewBot(NewClientWithBase("tok", api.URL), controller, nil)

	// Enter the add flow, then send a message that doubles as a menu
	// label. Mid-flow it must be consumed as the title.
	bot.handleMessage(ctx, &Message{Chat: Chat{ID: 42}, Text: "/add"})
	bot.handleMessage(ctx, &Message{Chat: Chat{ID: 42}, Text: "Planned"})

	session, err := store.Get(ctx, "42")
	assert.NoError(t, err)
	assert.Equal(t, domain.FlowAwaitingCategory, session.Flow.Kind)
	assert.Equal(t, "Planned", session.Flow.Draft.Title)

	// Once idle, the same text is a menu press again: it routes to the
	// list command, which hits the user store.
	session.Reset()
	assert.NoError(t, store.Put(ctx, session))
	bot.handleMessage(ctx, &Message{Chat: Chat{ID: 42}, Text: "Planned"})

	assert.NotEmpty(t, sent)
	assert.Contains(t, sent[len(sent)-1], "/start")
}

func TestParseCommand(t *testing.T) {
	cases := []struct {
		text string
		want dialog.Command
	}{
		{"/start", dialog.Command{Name: "start", Args: []string{}}},
		{"/add planned Dune", dialog.Command{Name: "add", Args: []string{"planned", "Dune"}}},
		{"/LIST planned", dialog.Command{Name: "list", Args: []string{"planned"}}},
		{"/random@MovieMateBot all", dialog.Command{Name: "random", Args: []string{"all"}}},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got := parseCommand(tc.text)
			assert.Equal(t, tc.want.Name, got.Name)
			assert.Equal(t, tc.want.Args, got.Args)
		})
	}
}

func TestDecodeMenuLabel(t *testing.T) {
	cases := []struct {
		label string
		want  dialog.Command
	}{
		{labelAddMovie, dialog.Command{Name: "add"}},
		{labelListMovies, dialog.Command{Name: "listmenu"}},
		{labelListPlanned, dialog.Command{Name: "list", Args: []string{"planned"}}},
		{labelListLoved, dialog.Command{Name: "list", Args: []string{"loved"}}},
		{labelRandomAll, dialog.Command{Name: "random", Args: []string{"all"}}},
		{labelEditMovies, dialog.Command{Name: "editmenu"}},
		{labelBackToMenu, dialog.Command{Name: "menu"}},
		{labelTMDBSearch, dialog.Command{Name: "search"}},
		{labelTMDBPopular, dialog.Command{Name: "popular"}},
		{labelTMDBTopRated, dialog.Command{Name: "toprated"}},
	}

	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			got, ok := decodeMenuLabel(tc.label)
			assert.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	_, ok := decodeMenuLabel("just some message")
	assert.False(t, ok)
}

func TestMenuMarkup(t *testing.T) {
	main := menuMarkup(domain.MenuMain)
	assert.NotNil(t, main)
	assert.True(t, main.ResizeKeyboard)

	// Every label on every menu must decode back to a command, otherwise
	// pressing it would fall through to free text.
	for _, menu := range []domain.Menu{domain.MenuMain, domain.MenuList, domain.MenuRandom, domain.MenuTMDB} {
		markup := menuMarkup(menu)
		assert.NotNil(t, markup, "menu %q", menu)
		for _, row := range markup.Keyboard {
			for _, button := range row {
				_, ok := decodeMenuLabel(button.Text)
				assert.True(t, ok, "label %q on menu %q does not decode", button.Text, menu)
			}
		}
	}

	assert.Nil(t, menuMarkup(domain.MenuNone))
}

func TestInlineMarkup(t *testing.T) {
	kb := domain.NewKeyboard(
		[]domain.Button{{Label: "Next", Token: "next"}, {Label: "Prev", Token: "prev"}},
		[]domain.Button{{Label: "Back", Token: "list"}},
	)

	markup := inlineMarkup(kb)
	assert.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "Next", markup.InlineKeyboard[0][0].Text)
	assert.Equal(t, "next", markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "list", markup.InlineKeyboard[1][0].CallbackData)

	assert.Nil(t, inlineMarkup(nil))
}
