package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/moviemate/moviemate-bot/internal/domain"
)

// UserRepository implements domain.UserRepository against the users table.
type UserRepository struct {
	client *Client
}

// NewUserRepository creates a new user repository
func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

// FindByChatID returns the user owning the chat, or domain.ErrNotFound.
func (r *UserRepository) FindByChatID(ctx context.Context, chatID string) (*domain.User, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("chat_id", eq(chatID))

	var users []domain.User
	if err := r.client.do(ctx, http.MethodGet, "users", query, nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user for chat %s: %w", chatID, domain.ErrNotFound)
	}
	return &users[0], nil
}

// Create inserts a fresh user for the chat.
func (r *UserRepository) Create(ctx context.Context, chatID string) (*domain.User, error) {
	body := map[string]any{"chat_id": chatID}

	var users []domain.User
	if err := r.client.do(ctx, http.MethodPost, "users", nil, body, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: supabase returned no row for created user", domain.ErrRemoteUnavailable)
	}
	return &users[0], nil
}

// SetInviteCode stores (or clears, with nil) the user's invite code.
func (r *UserRepository) SetInviteCode(ctx context.Context, userID uuid.UUID, code *string) error {
	query := url.Values{}
	query.Set("id", eq(userID.String()))

	var updated []domain.User
	if err := r.client.do(ctx, http.MethodPatch, "users", query, map[string]any{"invite_code": code}, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}

// FindByInviteCode returns the user holding the code, or domain.ErrNotFound.
func (r *UserRepository) FindByInviteCode(ctx context.Context, code string) (*domain.User, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("invite_code", eq(code))

	var users []domain.User
	if err := r.client.do(ctx, http.MethodGet, "users", query, nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("invite code %s: %w", code, domain.ErrNotFound)
	}
	return &users[0], nil
}

// LinkPartners pairs two users symmetrically.
func (r *UserRepository) LinkPartners(ctx context.Context, userID, partnerID uuid.UUID) error {
	if err := r.setPartner(ctx, userID, &partnerID); err != nil {
		return err
	}
	return r.setPartner(ctx, partnerID, &userID)
}

// UnlinkPartner clears the pairing on both sides.
func (r *UserRepository) UnlinkPartner(ctx context.Context, userID, partnerID uuid.UUID) error {
	if err := r.setPartner(ctx, userID, nil); err != nil {
		return err
	}
	return r.setPartner(ctx, partnerID, nil)
}

func (r *UserRepository) setPartner(ctx context.Context, userID uuid.UUID, partnerID *uuid.UUID) error {
	query := url.Values{}
	query.Set("id", eq(userID.String()))

	var updated []domain.User
	if err := r.client.do(ctx, http.MethodPatch, "users", query, map[string]any{"partner_id": partnerID}, &updated); err != nil {
		return err
	}
	if len(updated) == 0 {
		return fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return nil
}
