package dialog

import (
	"context"
	"strings"

	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/rs/zerolog/log"
)

// addMovie starts the add flow. With arguments it is the direct form
// `add <category> <title...>` and commits immediately; without, it asks
// for a title and stages the two-step flow.
func (c *Controller) addMovie(ctx context.Context, session *domain.Session, args []string) (*domain.Reply, error) {
	if len(args) == 0 {
		session.Flow = domain.FlowState{Kind: domain.FlowAwaitingTitle}
		return &domain.Reply{
			Text: "🎬 <b>Let's add a movie!</b>\n\nPlease enter the movie title you want to add:",
		}, nil
	}

	if len(args) < 2 {
		return nil, domain.Validationf("Usage: /add &lt;category&gt; &lt;movie title&gt;")
	}

	category, err := domain.ParseCategoryLabel(args[0])
	if err != nil {
		return nil, err
	}
	title := strings.Join(args[1:], " ")

	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	if _, err := c.movies.Insert(ctx, &domain.Movie{
		UserID:   user.ID,
		Title:    title,
		Category: category,
	}); err != nil {
		return nil, err
	}

	log.Info().Str("chat_id", session.ChatID).Str("title", title).Str("category", string(category)).Msg("movie added")
	return &domain.Reply{
		Text: "Added '<b>" + title + "</b>' to <b>" + category.Label() + "</b>.",
	}, nil
}

// stageTitle consumes the title sent during FlowAwaitingTitle and asks
// for a category.
func (c *Controller) stageTitle(session *domain.Session, text string) (*domain.Reply, error) {
	title := strings.TrimSpace(text)
	if title == "" {
		return nil, domain.Validationf("Please send a movie title.")
	}

	session.Flow = domain.FlowState{
		Kind:  domain.FlowAwaitingCategory,
		Draft: &domain.MovieDraft{Title: title},
	}
	return &domain.Reply{
		Text: "Which category for '<b>" + title + "</b>'?\n\n" +
			"<b>📅 Planned</b> — movies you want to watch\n" +
			"<b>❤️ Loved</b> — movies you've watched and enjoyed",
		Keyboard: categoryKeyboard(),
	}, nil
}

// commitDraft resolves the pending draft with the chosen category and
// writes the movie record, catalog metadata included when present.
func (c *Controller) commitDraft(ctx context.Context, session *domain.Session, label string) (*domain.Reply, error) {
	if session.Flow.Kind != domain.FlowAwaitingCategory || session.Flow.Draft == nil {
		return &domain.Reply{Text: msgStaleButton, Ack: msgStaleButton}, nil
	}

	category, err := domain.ParseCategoryLabel(label)
	if err != nil {
		return nil, err
	}

	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	draft := session.Flow.Draft
	movie := &domain.Movie{
		UserID:   user.ID,
		Title:    draft.Title,
		Category: category,
	}
	if draft.Meta != nil {
		movie.TMDBID = &draft.Meta.TMDBID
		movie.ReleaseYear = draft.Meta.ReleaseYear
		movie.Overview = draft.Meta.Overview
	}

	if _, err := c.movies.Insert(ctx, movie); err != nil {
		return nil, err
	}

	session.Reset()
	log.Info().Str("chat_id", session.ChatID).Str("title", draft.Title).Str("category", string(category)).Msg("movie added")
	return &domain.Reply{
		Text: "✅ Added '<b>" + draft.Title + "</b>' to your <b>" + category.Label() + "</b> list!\n\n" +
			"Use /list planned or /list loved to see your lists.",
		Edit: true,
		Ack:  "Movie added!",
	}, nil
}

func categoryKeyboard() *domain.Keyboard {
	return domain.NewKeyboard(
		[]domain.Button{{Label: "📅 Planned", Token: Action{Kind: ActionCategory, Arg: "planned"}.Token()}},
		[]domain.Button{{Label: "❤️ Loved", Token: Action{Kind: ActionCategory, Arg: "loved"}.Token()}},
	)
}
