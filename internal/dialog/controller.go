package dialog

import (
	"context"
	"errors"

	"github.com/moviemate/moviemate-bot/internal/catalog"
	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	msgUseMenu     = "Please use the menu buttons below."
	msgNotFound    = "❌ Not found — it may have been removed, or it doesn't belong to you."
	msgRemoteError = "😔 Something went wrong on our side. Please try again later."
	msgStaleButton = "This button has expired. Please use the menu."
	msgNeedStart   = "Please send /start first so I can set you up."
)

// Controller is the dialog flow controller. All collaborators are
// injected so tests can substitute fakes.
type Controller struct {
	users    domain.UserRepository
	movies   domain.MovieRepository
	catalog  catalog.Client
	sessions domain.SessionStore
}

// NewController creates a new dialog controller
func NewController(
	users domain.UserRepository,
	movies domain.MovieRepository,
	catalogClient catalog.Client,
	sessions domain.SessionStore,
) *Controller {
	return &Controller{
		users:    users,
		movies:   movies,
		catalog:  catalogClient,
		sessions: sessions,
	}
}

// HandleEvent processes one chat event to completion and returns the
// reply to render. Every failure becomes a user-visible message; nothing
// escapes to the transport as an error.
func (c *Controller) HandleEvent(ctx context.Context, chatID string, event Event) *domain.Reply {
	session, err := c.sessions.Get(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("failed to load session")
		session = domain.NewSession(chatID)
	}

	reply, err := c.dispatch(ctx, session, event)
	if err != nil {
		reply = c.describeError(session, err)
	}

	if err := c.sessions.Put(ctx, session); err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("failed to store session")
	}
	return reply
}

// dispatch routes the event. Free text is claimed by the active flow
// before anything else; commands and buttons carry their own routing.
func (c *Controller) dispatch(ctx context.Context, session *domain.Session, event Event) (*domain.Reply, error) {
	switch e := event.(type) {
	case FreeText:
		return c.freeText(ctx, session, e.Text)
	case Command:
		return c.command(ctx, session, e)
	case ButtonPress:
		return c.button(ctx, session, e.Token)
	default:
		return &domain.Reply{Text: msgUseMenu, Menu: domain.MenuMain}, nil
	}
}

func (c *Controller) freeText(ctx context.Context, session *domain.Session, text string) (*domain.Reply, error) {
	switch session.Flow.Kind {
	case domain.FlowAwaitingEditTitle:
		return c.commitEditTitle(ctx, session, text)
	case domain.FlowAwaitingTitle:
		return c.stageTitle(session, text)
	case domain.FlowAwaitingSearch:
		return c.search(ctx, session, text)
	case domain.FlowAwaitingCategory:
		// The draft stays pending; only the buttons can resolve it.
		return &domain.Reply{
			Text:     "Pick a category for '<b>" + session.Flow.Draft.Title + "</b>' using the buttons above.",
			Keyboard: categoryKeyboard(),
		}, nil
	case domain.FlowIdle, domain.FlowBrowsing, "":
		return &domain.Reply{Text: msgUseMenu, Menu: domain.MenuMain}, nil
	default:
		// Unknown stored state, possibly from an older build. Reject
		// rather than guess which flow it belonged to.
		session.Reset()
		return &domain.Reply{Text: msgUseMenu, Menu: domain.MenuMain}, nil
	}
}

func (c *Controller) command(ctx context.Context, session *domain.Session, cmd Command) (*domain.Reply, error) {
	// Any command abandons the flow in progress, pending draft included.
	session.Reset()

	switch cmd.Name {
	case "start":
		return c.start(ctx, session)
	case "help":
		return c.help(), nil
	case "menu":
		return &domain.Reply{Text: "Back to main menu.", Menu: domain.MenuMain}, nil
	case "listmenu":
		return &domain.Reply{Text: "Which list do you want to see?", Menu: domain.MenuList}, nil
	case "randommenu":
		return &domain.Reply{Text: "Choose a list for a random movie:", Menu: domain.MenuRandom}, nil
	case "tmdbmenu":
		return &domain.Reply{Text: "TMDB menu: pick an action.", Menu: domain.MenuTMDB}, nil
	case "add":
		return c.addMovie(ctx, session, cmd.Args)
	case "list":
		return c.listMovies(ctx, session, cmd.Args)
	case "random":
		return c.randomMovie(ctx, session, cmd.Args)
	case "invite":
		return c.invite(ctx, session)
	case "join":
		return c.join(ctx, session, cmd.Args)
	case "partner_status":
		return c.partnerStatus(ctx, session)
	case "unlink":
		return c.unlink(ctx, session)
	case "edit":
		return c.editCommand(ctx, session, cmd.Args)
	case "delete":
		return c.deleteCommand(ctx, session, cmd.Args)
	case "editmenu":
		return c.editListMenu(ctx, session, false)
	case "search":
		return c.searchCommand(ctx, session, cmd.Args)
	case "popular":
		return c.browseFeed(ctx, session, feedPopular)
	case "toprated":
		return c.browseFeed(ctx, session, feedTopRated)
	default:
		return &domain.Reply{Text: msgUseMenu, Menu: domain.MenuMain}, nil
	}
}

func (c *Controller) button(ctx context.Context, session *domain.Session, token string) (*domain.Reply, error) {
	action, err := DecodeToken(token)
	if err != nil {
		log.Warn().Err(err).Str("chat_id", session.ChatID).Msg("malformed button token")
		return &domain.Reply{Text: msgStaleButton, Ack: msgStaleButton}, nil
	}

	switch action.Kind {
	case ActionNext:
		return c.moveCursor(session, 1)
	case ActionPrev:
		return c.moveCursor(session, -1)
	case ActionView:
		return c.viewResult(session, action.Index)
	case ActionFull:
		return c.fullOverview(session, action.Index)
	case ActionBackMovie:
		return c.backToMovie(session)
	case ActionBackToList:
		return c.backToList(session)
	case ActionPick:
		return c.pickResult(session, action.Index)
	case ActionCategory:
		return c.commitDraft(ctx, session, action.Arg)
	case ActionEditMenu:
		return c.editListMenu(ctx, session, true)
	case ActionChoose:
		return c.chooseMovie(ctx, session, action.Arg)
	case ActionEditTitle:
		return c.requestNewTitle(ctx, session, action.MovieID)
	case ActionEditCat:
		return c.requestNewCategory(ctx, session, action.MovieID)
	case ActionSetCat:
		return c.commitCategoryChange(ctx, session, action.MovieID, action.Arg)
	case ActionDelete:
		return c.requestDelete(ctx, session, action.MovieID)
	case ActionConfirmDel:
		return c.confirmDelete(ctx, session, action.MovieID)
	case ActionCancelDel:
		session.Reset()
		return &domain.Reply{Text: "Deletion cancelled.", Edit: true, Ack: "Cancelled"}, nil
	default:
		return &domain.Reply{Text: msgStaleButton, Ack: msgStaleButton}, nil
	}
}

// InFlow reports whether the chat's active flow claims the next plain
// text message. The transport consults it before menu-label matching,
// so a title that happens to read "Planned" is staged, not misread as
// a menu press.
func (c *Controller) InFlow(ctx context.Context, chatID string) bool {
	session, err := c.sessions.Get(ctx, chatID)
	if err != nil {
		return false
	}
	return session.AwaitingInput()
}

// userFor resolves the chat to its user record.
func (c *Controller) userFor(ctx context.Context, session *domain.Session) (*domain.User, error) {
	user, err := c.users.FindByChatID(ctx, session.ChatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validationf(msgNeedStart)
		}
		return nil, err
	}
	return user, nil
}

// describeError maps the error taxonomy onto user-visible replies.
// Validation and not-found errors leave flow state as the handler set
// it; remote failures never touched it, so the same input can be
// retried.
func (c *Controller) describeError(session *domain.Session, err error) *domain.Reply {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return &domain.Reply{Text: ve.Message, Ack: ve.Message}
	case errors.Is(err, domain.ErrNotFound):
		return &domain.Reply{Text: msgNotFound, Ack: "Not found"}
	default:
		log.Error().Err(err).Str("chat_id", session.ChatID).Str("flow", string(session.Flow.Kind)).Msg("event handling failed")
		return &domain.Reply{Text: msgRemoteError, Ack: "Error"}
	}
}
