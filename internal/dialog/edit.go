package dialog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/rs/zerolog/log"
)

// editListMenu shows all movies with the edit/re-tag/delete actions.
// fromButton means the request came from an inline button and the
// originating message should be edited in place.
func (c *Controller) editListMenu(ctx context.Context, session *domain.Session, fromButton bool) (*domain.Reply, error) {
	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	movies, err := c.movies.ListByUsers(ctx, user.ScopeIDs(), nil)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return &domain.Reply{
			Text: "You don't have any movies in your lists yet.\n\n" +
				"Use the Add Movie button (➕) from the main menu to add a movie.",
			Edit: fromButton,
		}, nil
	}

	var b strings.Builder
	b.WriteString("<b>📝 Your Movies</b>\n\n")
	for _, m := range movies {
		icon := "📅 Planned"
		if m.Category == domain.CategoryWatched {
			icon = "❤️ Loved"
		}
		b.WriteString("• <b>" + m.Title + "</b> - " + icon + "\n")
	}
	b.WriteString("\nSelect an action from the buttons below:")

	kb := domain.NewKeyboard(
		[]domain.Button{
			{Label: "✏️ Edit Title", Token: Action{Kind: ActionChoose, Arg: "edit"}.Token()},
			{Label: "🔄 Change Category", Token: Action{Kind: ActionChoose, Arg: "category"}.Token()},
		},
		[]domain.Button{
			{Label: "🗑️ Delete Movie", Token: Action{Kind: ActionChoose, Arg: "delete"}.Token()},
		},
	)
	return &domain.Reply{Text: b.String(), Keyboard: kb, Edit: fromButton}, nil
}

// chooseMovie renders the movie picker for one of the edit actions.
func (c *Controller) chooseMovie(ctx context.Context, session *domain.Session, target string) (*domain.Reply, error) {
	var kind ActionKind
	var msg string
	switch target {
	case "edit":
		kind, msg = ActionEditTitle, "✏️ Select a movie to edit title:"
	case "category":
		kind, msg = ActionEditCat, "🔄 Select a movie to change category:"
	case "delete":
		kind, msg = ActionDelete, "🗑️ Select a movie to delete:"
	default:
		return &domain.Reply{Text: msgStaleButton, Ack: msgStaleButton}, nil
	}

	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	movies, err := c.movies.ListByUsers(ctx, user.ScopeIDs(), nil)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return &domain.Reply{Text: "No movies to edit or delete.", Edit: true}, nil
	}

	var rows [][]domain.Button
	for _, m := range movies {
		rows = append(rows, []domain.Button{{
			Label: m.Title + " (" + m.Category.Label() + ")",
			Token: Action{Kind: kind, MovieID: m.ID}.Token(),
		}})
	}
	rows = append(rows, []domain.Button{{Label: "↩️ Back", Token: Action{Kind: ActionEditMenu}.Token()}})

	return &domain.Reply{Text: msg, Keyboard: domain.NewKeyboard(rows...), Edit: true}, nil
}

// requestNewTitle verifies ownership and stages the edit flow: the next
// free-text message becomes the movie's title.
func (c *Controller) requestNewTitle(ctx context.Context, session *domain.Session, movieID uuid.UUID) (*domain.Reply, error) {
	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	movie, err := c.movies.Get(ctx, movieID, user.ScopeIDs())
	if err != nil {
		return nil, err
	}

	session.Flow = domain.FlowState{Kind: domain.FlowAwaitingEditTitle, EditMovieID: movieID}
	return &domain.Reply{
		Text: "✏️ Current title: <b>" + movie.Title + "</b>\n\n" +
			"Please send the new title for this movie:",
		Edit: true,
		Ack:  "Send the new title",
	}, nil
}

// commitEditTitle consumes the replacement title sent during
// FlowAwaitingEditTitle.
func (c *Controller) commitEditTitle(ctx context.Context, session *domain.Session, text string) (*domain.Reply, error) {
	movieID := session.Flow.EditMovieID
	newTitle := strings.TrimSpace(text)
	if newTitle == "" {
		return nil, domain.Validationf("Please send a non-empty title.")
	}

	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	// Re-check ownership; the record may be gone since it was selected.
	if _, err := c.movies.Get(ctx, movieID, user.ScopeIDs()); err != nil {
		session.Reset()
		return nil, err
	}
	if err := c.movies.UpdateTitle(ctx, movieID, user.ScopeIDs(), newTitle); err != nil {
		return nil, err
	}

	session.Reset()
	log.Info().Str("chat_id", session.ChatID).Str("movie_id", movieID.String()).Msg("movie title updated")
	return &domain.Reply{
		Text: "✅ Movie updated successfully!\nNew title: <b>" + newTitle + "</b>",
	}, nil
}

// editCommand is the direct form `/edit <id> <title...>`.
func (c *Controller) editCommand(ctx context.Context, session *domain.Session, args []string) (*domain.Reply, error) {
	if len(args) < 2 {
		return nil, domain.Validationf("Usage: /edit <code>movie_id</code> <code>new_title</code>")
	}
	movieID, err := uuid.Parse(args[0])
	if err != nil {
		return nil, domain.Validationf("Usage: /edit <code>movie_id</code> <code>new_title</code>")
	}
	newTitle := strings.Join(args[1:], " ")

	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	if err := c.movies.UpdateTitle(ctx, movieID, user.ScopeIDs(), newTitle); err != nil {
		return nil, err
	}
	return &domain.Reply{Text: "Movie updated to: <b>" + newTitle + "</b>"}, nil
}

// requestNewCategory shows the category picker for a movie.
func (c *Controller) requestNewCategory(ctx context.Context, session *domain.Session, movieID uuid.UUID) (*domain.Reply, error) {
	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}
	if _, err := c.movies.Get(ctx, movieID, user.ScopeIDs()); err != nil {
		return nil, err
	}

	kb := domain.NewKeyboard([]domain.Button{
		{Label: "📅 Plan to Watch", Token: Action{Kind: ActionSetCat, MovieID: movieID, Arg: "planned"}.Token()},
		{Label: "❤️ Watched & Loved", Token: Action{Kind: ActionSetCat, MovieID: movieID, Arg: "loved"}.Token()},
	})
	return &domain.Reply{Text: "🔄 Choose new category:", Keyboard: kb, Edit: true}, nil
}

// commitCategoryChange re-tags the movie. Category change is not staged:
// it commits on the button press.
func (c *Controller) commitCategoryChange(ctx context.Context, session *domain.Session, movieID uuid.UUID, label string) (*domain.Reply, error) {
	category, err := domain.ParseCategoryLabel(label)
	if err != nil {
		return nil, err
	}

	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	if _, err := c.movies.Get(ctx, movieID, user.ScopeIDs()); err != nil {
		return nil, err
	}
	if err := c.movies.UpdateCategory(ctx, movieID, user.ScopeIDs(), category); err != nil {
		return nil, err
	}

	session.Reset()
	log.Info().Str("chat_id", session.ChatID).Str("movie_id", movieID.String()).Str("category", string(category)).Msg("movie category updated")
	return &domain.Reply{
		Text: "Category updated to: <b>" + category.Label() + "</b>",
		Edit: true,
		Ack:  "Category updated",
	}, nil
}

// requestDelete shows the confirm/cancel prompt. Delete is the only
// destructive action and the only one gated behind a confirmation.
func (c *Controller) requestDelete(ctx context.Context, session *domain.Session, movieID uuid.UUID) (*domain.Reply, error) {
	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}
	if _, err := c.movies.Get(ctx, movieID, user.ScopeIDs()); err != nil {
		return nil, err
	}

	kb := domain.NewKeyboard([]domain.Button{
		{Label: "✅ Yes, delete", Token: Action{Kind: ActionConfirmDel, MovieID: movieID}.Token()},
		{Label: "❌ Cancel", Token: Action{Kind: ActionCancelDel}.Token()},
	})
	return &domain.Reply{Text: "Are you sure you want to delete this movie?", Keyboard: kb, Edit: true}, nil
}

// confirmDelete performs the gated deletion.
func (c *Controller) confirmDelete(ctx context.Context, session *domain.Session, movieID uuid.UUID) (*domain.Reply, error) {
	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	if _, err := c.movies.Get(ctx, movieID, user.ScopeIDs()); err != nil {
		return nil, err
	}
	if err := c.movies.Delete(ctx, movieID, user.ScopeIDs()); err != nil {
		return nil, err
	}

	session.Reset()
	log.Info().Str("chat_id", session.ChatID).Str("movie_id", movieID.String()).Msg("movie deleted")
	return &domain.Reply{Text: "Movie deleted.", Edit: true, Ack: "Deleted"}, nil
}

// deleteCommand is the direct form `/delete <id>`; it still goes through
// the confirmation prompt.
func (c *Controller) deleteCommand(ctx context.Context, session *domain.Session, args []string) (*domain.Reply, error) {
	if len(args) == 0 {
		return nil, domain.Validationf("Usage: /delete <code>movie_id</code>")
	}
	movieID, err := uuid.Parse(args[0])
	if err != nil {
		return nil, domain.Validationf("Usage: /delete <code>movie_id</code>")
	}
	return c.requestDelete(ctx, session, movieID)
}
