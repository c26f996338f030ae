package domain

import (
	"context"

	"github.com/google/uuid"
)

// User represents one chat identity in the users table.
type User struct {
	ID         uuid.UUID  `json:"id"`
	ChatID     string     `json:"chat_id"`
	InviteCode *string    `json:"invite_code,omitempty"`
	PartnerID  *uuid.UUID `json:"partner_id,omitempty"`
}

// HasPartner reports whether the user is paired.
func (u *User) HasPartner() bool {
	return u.PartnerID != nil
}

// ScopeIDs returns the user ids a record lookup is allowed to match:
// the user's own id plus the partner's when paired.
func (u *User) ScopeIDs() []uuid.UUID {
	ids := []uuid.UUID{u.ID}
	if u.PartnerID != nil {
		ids = append(ids, *u.PartnerID)
	}
	return ids
}

// UserRepository defines the interface for user record storage.
type UserRepository interface {
	// FindByChatID returns the user owning the chat, or ErrNotFound.
	FindByChatID(ctx context.Context, chatID string) (*User, error)

	// Create inserts a fresh user for the chat.
	Create(ctx context.Context, chatID string) (*User, error)

	// SetInviteCode stores (or clears, with nil) the user's invite code.
	SetInviteCode(ctx context.Context, userID uuid.UUID, code *string) error

	// FindByInviteCode returns the user holding the code, or ErrNotFound.
	FindByInviteCode(ctx context.Context, code string) (*User, error)

	// LinkPartners pairs two users symmetrically.
	LinkPartners(ctx context.Context, userID, partnerID uuid.UUID) error

	// UnlinkPartner clears the pairing on both sides.
	UnlinkPartner(ctx context.Context, userID, partnerID uuid.UUID) error
}
