package dialog

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"strings"

	"github.com/moviemate/moviemate-bot/internal/domain"
)

// listMovies renders one category of the shared list.
func (c *Controller) listMovies(ctx context.Context, session *domain.Session, args []string) (*domain.Reply, error) {
	if len(args) == 0 {
		return nil, domain.Validationf("Usage: <code>/list planned</code> or <code>/list loved</code>")
	}

	category, err := domain.ParseCategoryLabel(args[0])
	if err != nil {
		return nil, err
	}

	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	movies, err := c.movies.ListByUsers(ctx, user.ScopeIDs(), []domain.Category{category})
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return &domain.Reply{
			Text: "No movies in <b>" + category.Label() + "</b> list yet. Use /add to add some!",
		}, nil
	}

	var b strings.Builder
	b.WriteString("<b>Movies in " + category.Label() + ":</b>\n")
	for _, m := range movies {
		b.WriteString("• " + m.Title)
		if m.ReleaseYear != nil {
			b.WriteString(" (" + strconv.Itoa(*m.ReleaseYear) + ")")
		}
		b.WriteString("\n")
	}
	return &domain.Reply{Text: b.String()}, nil
}

// randomMovie suggests one movie from planned (default), loved or all.
func (c *Controller) randomMovie(ctx context.Context, session *domain.Session, args []string) (*domain.Reply, error) {
	categories := []domain.Category{domain.CategoryPlanned}
	shown := "planned"
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "planned":
		case "loved":
			categories = []domain.Category{domain.CategoryWatched}
			shown = "loved"
		case "all":
			categories = []domain.Category{domain.CategoryPlanned, domain.CategoryWatched}
			shown = "planned and loved"
		default:
			return nil, domain.Validationf("Usage: /random [planned|loved|all]")
		}
	}

	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	movies, err := c.movies.ListByUsers(ctx, user.ScopeIDs(), categories)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return &domain.Reply{Text: "No movies in <b>" + shown + "</b> list."}, nil
	}

	movie := movies[rand.Intn(len(movies))]
	return &domain.Reply{
		Text: "🎲 <b>Random movie from " + movie.Category.Label() + ":</b>\n<b>" + movie.Title + "</b>",
	}, nil
}

// start registers the chat on first contact and shows the welcome text.
func (c *Controller) start(ctx context.Context, session *domain.Session) (*domain.Reply, error) {
	if _, err := c.users.FindByChatID(ctx, session.ChatID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if _, err := c.users.Create(ctx, session.ChatID); err != nil {
			return nil, err
		}
	}

	text := "👋 <b>Welcome to MovieMateBot!</b>\n\n" +
		"This bot helps you and your partner keep a shared list of movies.\n\n" +
		"<b>How to get started:</b>\n" +
		"1️⃣ Use <b>/invite</b> to generate an invite code and send it to your friend.\n" +
		"2️⃣ Your friend should use <b>/join &lt;code&gt;</b> to connect with you.\n\n" +
		"<b>What you can do:</b>\n" +
		"- Add movies to your shared list with <b>/add</b>\n" +
		"- Classify movies as <b>planned</b> or <b>loved</b>\n" +
		"- See your lists with <b>/list planned</b> or <b>/list loved</b>\n" +
		"- Get a random movie suggestion with <b>/random</b>\n" +
		"- Check your partner status with <b>/partner_status</b>\n" +
		"- Unlink from your partner with <b>/unlink</b>\n\n" +
		"<i>All commands work for both you and your partner. Enjoy watching together! 🎬</i>"
	return &domain.Reply{Text: text, Menu: domain.MenuMain}, nil
}

func (c *Controller) help() *domain.Reply {
	return &domain.Reply{
		Text: "Available commands:\n" +
			"/start - Start working with the bot\n" +
			"/invite - Generate an invite code for your partner\n" +
			"/join &lt;code&gt; - Pair with a partner\n" +
			"/add [category] [title] - Add a movie\n" +
			"/list &lt;planned|loved&gt; - Show a list\n" +
			"/random [planned|loved|all] - Random suggestion\n" +
			"/partner_status - Check pairing\n" +
			"/unlink - Unpair\n" +
			"/edit &lt;id&gt; &lt;new title&gt; - Rename a movie\n" +
			"/delete &lt;id&gt; - Delete a movie\n" +
			"/help - Show this message",
		Menu: domain.MenuMain,
	}
}
