package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ActionKind tags a button token with the action it performs.
type ActionKind string

const (
	// Browse navigation.
	ActionNext       ActionKind = "next"
	ActionPrev       ActionKind = "prev"
	ActionView       ActionKind = "view" // arg: result index
	ActionFull       ActionKind = "full" // arg: result index
	ActionBackMovie  ActionKind = "movie"
	ActionBackToList ActionKind = "list"

	// Add flow.
	ActionPick     ActionKind = "pick" // arg: result index
	ActionCategory ActionKind = "cat"  // arg: category label

	// Edit menu.
	ActionEditMenu   ActionKind = "emenu"
	ActionChoose     ActionKind = "choose" // arg: edit|category|delete
	ActionEditTitle  ActionKind = "edit"   // arg: movie id
	ActionEditCat    ActionKind = "editcat"
	ActionSetCat     ActionKind = "setcat" // args: movie id, category label
	ActionDelete     ActionKind = "del"    // arg: movie id
	ActionConfirmDel ActionKind = "delok"  // arg: movie id
	ActionCancelDel  ActionKind = "delno"
)

// Action is a decoded button token: an action tag plus its argument.
// Arg carries the string argument (a category label or a choose target).
type Action struct {
	Kind    ActionKind
	Index   int
	MovieID uuid.UUID
	Arg     string
}

// Token encodes the action back into its wire form, colon separated.
func (a Action) Token() string {
	switch a.Kind {
	case ActionView, ActionFull, ActionBackMovie, ActionPick:
		return fmt.Sprintf("%s:%d", a.Kind, a.Index)
	case ActionCategory, ActionChoose:
		return fmt.Sprintf("%s:%s", a.Kind, a.Arg)
	case ActionEditTitle, ActionEditCat, ActionDelete, ActionConfirmDel:
		return fmt.Sprintf("%s:%s", a.Kind, a.MovieID)
	case ActionSetCat:
		return fmt.Sprintf("%s:%s:%s", a.Kind, a.MovieID, a.Arg)
	default:
		return string(a.Kind)
	}
}

// DecodeToken parses a button token. A token that does not parse is a
// stale or foreign button; callers degrade it to an explanatory reply.
func DecodeToken(token string) (Action, error) {
	parts := strings.Split(token, ":")
	kind := ActionKind(parts[0])

	switch kind {
	case ActionNext, ActionPrev, ActionBackToList, ActionEditMenu, ActionCancelDel:
		if len(parts) != 1 {
			return Action{}, fmt.Errorf("token %q: unexpected argument", token)
		}
		return Action{Kind: kind}, nil

	case ActionView, ActionFull, ActionBackMovie, ActionPick:
		if len(parts) != 2 {
			return Action{}, fmt.Errorf("token %q: missing index", token)
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil || idx < 0 {
			return Action{}, fmt.Errorf("token %q: bad index", token)
		}
		return Action{Kind: kind, Index: idx}, nil

	case ActionCategory, ActionChoose:
		if len(parts) != 2 || parts[1] == "" {
			return Action{}, fmt.Errorf("token %q: missing argument", token)
		}
		return Action{Kind: kind, Arg: parts[1]}, nil

	case ActionEditTitle, ActionEditCat, ActionDelete, ActionConfirmDel:
		if len(parts) != 2 {
			return Action{}, fmt.Errorf("token %q: missing movie id", token)
		}
		id, err := uuid.Parse(parts[1])
		if err != nil {
			return Action{}, fmt.Errorf("token %q: bad movie id", token)
		}
		return Action{Kind: kind, MovieID: id}, nil

	case ActionSetCat:
		if len(parts) != 3 {
			return Action{}, fmt.Errorf("token %q: want id and category", token)
		}
		id, err := uuid.Parse(parts[1])
		if err != nil {
			return Action{}, fmt.Errorf("token %q: bad movie id", token)
		}
		return Action{Kind: kind, MovieID: id, Arg: parts[2]}, nil

	default:
		return Action{}, fmt.Errorf("unknown token %q", token)
	}
}
