package dialog

import (
	"context"
	"strconv"
	"strings"

	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/rs/zerolog/log"
)

type feed string

const (
	feedPopular  feed = "popular"
	feedTopRated feed = "toprated"
)

// browse results are capped so the index grid stays a single row block.
const maxBrowseResults = 10

const overviewPreviewLen = 200

// searchCommand starts the catalog search flow. With arguments it runs
// the search immediately; without, it asks for a query.
func (c *Controller) searchCommand(ctx context.Context, session *domain.Session, args []string) (*domain.Reply, error) {
	if len(args) == 0 {
		session.Flow = domain.FlowState{Kind: domain.FlowAwaitingSearch}
		return &domain.Reply{
			Text: "🔍 <b>Search TMDB</b>\n\nPlease enter the movie title to search for:",
		}, nil
	}
	return c.search(ctx, session, strings.Join(args, " "))
}

// search runs the catalog query and enters the browsing flow.
func (c *Controller) search(ctx context.Context, session *domain.Session, query string) (*domain.Reply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.Validationf("Please send a movie title to search for.")
	}

	results, err := c.catalog.SearchByTitle(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		session.Reset()
		return &domain.Reply{Text: "😕 No results found for '<b>" + query + "</b>'. Try another title."}, nil
	}

	return c.enterBrowsing(session, results, "Search: "+query, false)
}

// browseFeed enters the browsing flow on one of the curated feeds.
func (c *Controller) browseFeed(ctx context.Context, session *domain.Session, f feed) (*domain.Reply, error) {
	var results []domain.ResultItem
	var err error
	var title string
	switch f {
	case feedTopRated:
		results, err = c.catalog.TopRated(ctx)
		title = "⭐ Top Rated Movies"
	default:
		results, err = c.catalog.Popular(ctx)
		title = "🔥 Popular Movies"
	}
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &domain.Reply{Text: "😕 Nothing to show right now. Please try again later."}, nil
	}

	return c.enterBrowsing(session, results, title, false)
}

func (c *Controller) enterBrowsing(session *domain.Session, results []domain.ResultItem, listTitle string, edit bool) (*domain.Reply, error) {
	if len(results) > maxBrowseResults {
		results = results[:maxBrowseResults]
	}
	session.Flow = domain.FlowState{
		Kind:      domain.FlowBrowsing,
		Results:   results,
		Cursor:    0,
		ListTitle: listTitle,
	}
	log.Debug().Str("chat_id", session.ChatID).Int("results", len(results)).Str("list", listTitle).Msg("entered browsing")
	return c.renderBrowseList(session, edit), nil
}

// moveCursor pages through results. Movement past either edge is a
// no-op: the callback is answered but nothing is re-rendered.
func (c *Controller) moveCursor(session *domain.Session, delta int) (*domain.Reply, error) {
	if session.Flow.Kind != domain.FlowBrowsing || len(session.Flow.Results) == 0 {
		return &domain.Reply{Text: msgStaleButton, Ack: msgStaleButton}, nil
	}

	next := session.Flow.Cursor + delta
	if next < 0 || next >= len(session.Flow.Results) {
		return &domain.Reply{Ack: "No more results"}, nil
	}
	session.Flow.Cursor = next
	return c.renderBrowseItem(session), nil
}

// viewResult jumps the cursor to a numbered result from the index grid.
func (c *Controller) viewResult(session *domain.Session, index int) (*domain.Reply, error) {
	if session.Flow.Kind != domain.FlowBrowsing || index < 0 || index >= len(session.Flow.Results) {
		return &domain.Reply{Text: msgStaleButton, Ack: msgStaleButton}, nil
	}
	session.Flow.Cursor = index
	return c.renderBrowseItem(session), nil
}

// fullOverview shows the complete overview text of one result.
func (c *Controller) fullOverview(session *domain.Session, index int) (*domain.Reply, error) {
	if session.Flow.Kind != domain.FlowBrowsing || index < 0 || index >= len(session.Flow.Results) {
		return &domain.Reply{Text: msgStaleButton, Ack: msgStaleButton}, nil
	}
	item := session.Flow.Results[index]

	text := "<b>" + item.Title + "</b>"
	if item.ReleaseYear != nil {
		text += " (" + strconv.Itoa(*item.ReleaseYear) + ")"
	}
	text += "\n\n" + item.Overview

	kb := domain.NewKeyboard([]domain.Button{
		{Label: "↩️ Back", Token: Action{Kind: ActionBackMovie}.Token()},
	})
	return &domain.Reply{Text: text, Keyboard: kb, Edit: true}, nil
}

// backToMovie returns from the full overview to the current card.
func (c *Controller) backToMovie(session *domain.Session) (*domain.Reply, error) {
	if session.Flow.Kind != domain.FlowBrowsing || len(session.Flow.Results) == 0 {
		return &domain.Reply{Text: msgStaleButton, Ack: msgStaleButton}, nil
	}
	return c.renderBrowseItem(session), nil
}

// backToList returns from a movie card to the index grid.
func (c *Controller) backToList(session *domain.Session) (*domain.Reply, error) {
	if session.Flow.Kind != domain.FlowBrowsing || len(session.Flow.Results) == 0 {
		return &domain.Reply{Text: msgStaleButton, Ack: msgStaleButton}, nil
	}
	return c.renderBrowseList(session, true), nil
}

// pickResult carries the selected result into the add flow, catalog
// metadata attached to the draft.
func (c *Controller) pickResult(session *domain.Session, index int) (*domain.Reply, error) {
	if session.Flow.Kind != domain.FlowBrowsing || index < 0 || index >= len(session.Flow.Results) {
		return &domain.Reply{Text: msgStaleButton, Ack: msgStaleButton}, nil
	}
	item := session.Flow.Results[index]

	session.Flow = domain.FlowState{
		Kind: domain.FlowAwaitingCategory,
		Draft: &domain.MovieDraft{
			Title: item.Title,
			Meta: &domain.ExternalMeta{
				TMDBID:      item.TMDBID,
				ReleaseYear: item.ReleaseYear,
				Overview:    &item.Overview,
			},
		},
	}
	return &domain.Reply{
		Text: "Which category for '<b>" + item.Title + "</b>'?\n\n" +
			"<b>📅 Planned</b> — movies you want to watch\n" +
			"<b>❤️ Loved</b> — movies you've watched and enjoyed",
		Keyboard: categoryKeyboard(),
		Edit:     true,
	}, nil
}

// renderBrowseItem renders the card for the result under the cursor.
func (c *Controller) renderBrowseItem(session *domain.Session) *domain.Reply {
	results := session.Flow.Results
	i := session.Flow.Cursor
	if i < 0 {
		i = 0
	}
	if i >= len(results) {
		i = len(results) - 1
	}
	session.Flow.Cursor = i
	item := results[i]

	var b strings.Builder
	b.WriteString("🎬 <b>" + item.Title + "</b>")
	if item.ReleaseYear != nil {
		b.WriteString(" (" + strconv.Itoa(*item.ReleaseYear) + ")")
	}
	b.WriteString("\n")
	if item.Rating > 0 {
		b.WriteString("⭐ " + strconv.FormatFloat(item.Rating, 'f', 1, 64) + "/10\n")
	}
	b.WriteString("\n")

	overview := item.Overview
	truncated := false
	// Cut on a rune boundary; a byte offset could split a multi-byte
	// character and leave invalid UTF-8 for Telegram to reject.
	if runes := []rune(overview); len(runes) > overviewPreviewLen {
		overview = string(runes[:overviewPreviewLen]) + "…"
		truncated = true
	}
	b.WriteString(overview)
	b.WriteString("\n\n" + strconv.Itoa(i+1) + " of " + strconv.Itoa(len(results)))

	var nav []domain.Button
	if i > 0 {
		nav = append(nav, domain.Button{Label: "⬅️ Prev", Token: Action{Kind: ActionPrev}.Token()})
	}
	if i < len(results)-1 {
		nav = append(nav, domain.Button{Label: "Next ➡️", Token: Action{Kind: ActionNext}.Token()})
	}

	var detail []domain.Button
	if truncated {
		detail = append(detail, domain.Button{Label: "📖 Full overview", Token: Action{Kind: ActionFull, Index: i}.Token()})
	}
	detail = append(detail, domain.Button{Label: "➕ Add to my list", Token: Action{Kind: ActionPick, Index: i}.Token()})

	kb := domain.NewKeyboard(
		nav,
		detail,
		[]domain.Button{{Label: "📋 Back to list", Token: Action{Kind: ActionBackToList}.Token()}},
	)

	return &domain.Reply{Text: b.String(), PhotoURL: item.PosterURL, Keyboard: kb, Edit: true}
}

// renderBrowseList renders the numbered index grid of all results.
func (c *Controller) renderBrowseList(session *domain.Session, edit bool) *domain.Reply {
	results := session.Flow.Results

	var b strings.Builder
	b.WriteString("<b>" + session.Flow.ListTitle + "</b>\n\n")
	for i, item := range results {
		b.WriteString(strconv.Itoa(i+1) + ". <b>" + item.Title + "</b>")
		if item.ReleaseYear != nil {
			b.WriteString(" (" + strconv.Itoa(*item.ReleaseYear) + ")")
		}
		if item.Rating > 0 {
			b.WriteString(" — ⭐ " + strconv.FormatFloat(item.Rating, 'f', 1, 64))
		}
		b.WriteString("\n")
	}
	b.WriteString("\nTap a number to see details:")

	var rows [][]domain.Button
	var row []domain.Button
	for i := range results {
		row = append(row, domain.Button{
			Label: strconv.Itoa(i + 1),
			Token: Action{Kind: ActionView, Index: i}.Token(),
		})
		if len(row) == 5 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return &domain.Reply{Text: b.String(), Keyboard: domain.NewKeyboard(rows...), Edit: edit}
}
