package dialog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/rs/zerolog/log"
)

// invite generates a fresh single-use invite code for the user. A new
// code replaces any previous one.
func (c *Controller) invite(ctx context.Context, session *domain.Session) (*domain.Reply, error) {
	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	code := "INV-" + uuid.New().String()[:6]
	if err := c.users.SetInviteCode(ctx, user.ID, &code); err != nil {
		return nil, err
	}

	log.Info().Str("chat_id", session.ChatID).Str("invite_code", code).Msg("invite code generated")
	return &domain.Reply{
		Text: "🎟️ <b>Your invite code:</b> <code>" + code + "</code>\n\n" +
			"1️⃣ Share this code with your friend\n" +
			"2️⃣ They should use <code>/join " + code + "</code>\n" +
			"3️⃣ Start sharing movies together!\n\n" +
			"<i>Note: This code can only be used once</i>",
	}, nil
}

// join pairs the user with the holder of the invite code and burns the
// code.
func (c *Controller) join(ctx context.Context, session *domain.Session, args []string) (*domain.Reply, error) {
	if len(args) == 0 {
		return nil, domain.Validationf(
			"ℹ️ How to join:\n" +
				"1️⃣ Get the invite code from your friend\n" +
				"2️⃣ Use: /join <code>your_code</code>")
	}

	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	inviter, err := c.users.FindByInviteCode(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Reply{
				Text: "❌ Invalid invite code!\n\n" +
					"🔍 Please check the code and try again\n" +
					"💡 Or ask your friend to generate a new one with /invite",
			}, nil
		}
		return nil, err
	}
	if inviter.ID == user.ID {
		return nil, domain.Validationf("You can't join your own invite code. Share it with a friend instead!")
	}

	if err := c.users.LinkPartners(ctx, user.ID, inviter.ID); err != nil {
		return nil, err
	}
	if err := c.users.SetInviteCode(ctx, inviter.ID, nil); err != nil {
		log.Error().Err(err).Str("chat_id", session.ChatID).Msg("failed to burn invite code")
	}

	log.Info().Str("chat_id", session.ChatID).Str("inviter_id", inviter.ID.String()).Msg("users paired")
	return &domain.Reply{
		Text: "🎉 <b>Successfully paired!</b>\n\n" +
			"Try these commands together:\n" +
			"➕ /add - Add movies to your shared lists\n" +
			"📋 /list - View your movie lists\n" +
			"🎲 /random - Get a movie suggestion\n" +
			"✨ Have fun watching together!",
	}, nil
}

// partnerStatus reports whether the user is paired.
func (c *Controller) partnerStatus(ctx context.Context, session *domain.Session) (*domain.Reply, error) {
	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	if !user.HasPartner() {
		return &domain.Reply{
			Text: "🔄 <b>You are not paired yet</b>\n\n" +
				"To connect with a friend:\n" +
				"1️⃣ Use /invite to generate a code\n" +
				"2️⃣ Share the code with your friend\n" +
				"3️⃣ They use /join with your code",
		}, nil
	}

	return &domain.Reply{
		Text: "👥 <b>You are paired with your movie mate!</b>\n\n" +
			"Together you can:\n" +
			"🎬 Share movie lists\n" +
			"📝 Add and edit movies\n" +
			"🎲 Get movie suggestions\n" +
			"❤️ Track favorites",
	}, nil
}

// unlink breaks the pairing on both sides.
func (c *Controller) unlink(ctx context.Context, session *domain.Session) (*domain.Reply, error) {
	user, err := c.userFor(ctx, session)
	if err != nil {
		return nil, err
	}

	if !user.HasPartner() {
		return &domain.Reply{
			Text: "ℹ️ You are not paired with anyone.\n\n" +
				"Use /invite to generate a code and start sharing movies!",
		}, nil
	}

	if err := c.users.UnlinkPartner(ctx, user.ID, *user.PartnerID); err != nil {
		return nil, err
	}

	log.Info().Str("chat_id", session.ChatID).Msg("partner unlinked")
	return &domain.Reply{
		Text: "🔓 <b>Successfully unlinked!</b>\n\n" +
			"You can now:\n" +
			"🎟️ Generate a new invite code with /invite\n" +
			"🤝 Join someone else with /join\n" +
			"✨ Start fresh with a new partner!",
	}, nil
}
