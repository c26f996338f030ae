package dialog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moviemate/moviemate-bot/internal/domain"
	"github.com/moviemate/moviemate-bot/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fixture struct {
	users    *MockUserRepository
	movies   *MockMovieRepository
	catalog  *MockCatalog
	sessions domain.SessionStore
	ctrl     *Controller
}

func newFixture() *fixture {
	users := new(MockUserRepository)
	movies := new(MockMovieRepository)
	cat := new(MockCatalog)
	sessions := memory.NewSessionStore(time.Hour)
	return &fixture{
		users:    users,
		movies:   movies,
		catalog:  cat,
		sessions: sessions,
		ctrl:     NewController(users, movies, cat, sessions),
	}
}

func (f *fixture) session(t *testing.T, chatID string) *domain.Session {
	t.Helper()
	s, err := f.sessions.Get(context.Background(), chatID)
	assert.NoError(t, err)
	return s
}

func testUser(chatID string) *domain.User {
	return &domain.User{ID: uuid.New(), ChatID: chatID}
}

func TestController_AddFlow(t *testing.T) {
	ctx := context.Background()
	const chatID = "100"

	f := newFixture()
	user := testUser(chatID)
	f.users.On("FindByChatID", ctx, chatID).Return(user, nil)
	f.movies.On("Insert", ctx, mock.AnythingOfType("*domain.Movie")).
		Return(&domain.Movie{ID: uuid.New()}, nil)

	// Bare /add asks for a title.
	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "add"})
	assert.Contains(t, reply.Text, "enter the movie title")
	assert.Equal(t, domain.FlowAwaitingTitle, f.session(t, chatID).Flow.Kind)

	// The title stages a draft and asks for a category.
	reply = f.ctrl.HandleEvent(ctx, chatID, FreeText{Text: "Inception"})
	assert.Contains(t, reply.Text, "Inception")
	assert.NotNil(t, reply.Keyboard)
	session := f.session(t, chatID)
	assert.Equal(t, domain.FlowAwaitingCategory, session.Flow.Kind)
	assert.Equal(t, "Inception", session.Flow.Draft.Title)

	// The category button commits the draft.
	reply = f.ctrl.HandleEvent(ctx, chatID, ButtonPress{Token: "cat:loved"})
	assert.Contains(t, reply.Text, "Added")
	assert.True(t, f.session(t, chatID).Idle())

	f.movies.AssertCalled(t, "Insert", ctx, mock.MatchedBy(func(m *domain.Movie) bool {
		return m.Title == "Inception" && m.Category == domain.CategoryWatched && m.UserID == user.ID
	}))
}

func TestController_InFlow(t *testing.T) {
	ctx := context.Background()
	const chatID = "110"

	f := newFixture()
	f.catalog.On("Popular", ctx).Return(resultItems(3), nil)

	// Idle chats are not in a flow.
	assert.False(t, f.ctrl.InFlow(ctx, chatID))

	// A bare /add waits for the title, so free text belongs to the flow.
	f.ctrl.HandleEvent(ctx, chatID, Command{Name: "add"})
	assert.True(t, f.ctrl.InFlow(ctx, chatID))

	// Browsing answers buttons only; free text is not claimed.
	f.ctrl.HandleEvent(ctx, chatID, Command{Name: "popular"})
	assert.False(t, f.ctrl.InFlow(ctx, chatID))
}

func TestController_AddDirect(t *testing.T) {
	ctx := context.Background()
	const chatID = "101"

	f := newFixture()
	user := testUser(chatID)
	f.users.On("FindByChatID", ctx, chatID).Return(user, nil)
	f.movies.On("Insert", ctx, mock.AnythingOfType("*domain.Movie")).
		Return(&domain.Movie{ID: uuid.New()}, nil)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "add", Args: []string{"planned", "Dune", "Part", "Two"}})
	assert.Contains(t, reply.Text, "Dune Part Two")
	assert.True(t, f.session(t, chatID).Idle())

	f.movies.AssertCalled(t, "Insert", ctx, mock.MatchedBy(func(m *domain.Movie) bool {
		return m.Title == "Dune Part Two" && m.Category == domain.CategoryPlanned
	}))
}

func TestController_AddInvalidCategory(t *testing.T) {
	ctx := context.Background()
	const chatID = "102"

	f := newFixture()

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "add", Args: []string{"favorite", "Dune"}})
	assert.Contains(t, reply.Text, "planned")
	assert.Contains(t, reply.Text, "loved")
	f.movies.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestController_FreeTextWhenIdle(t *testing.T) {
	ctx := context.Background()
	const chatID = "103"

	f := newFixture()

	reply := f.ctrl.HandleEvent(ctx, chatID, FreeText{Text: "hello there"})
	assert.Equal(t, msgUseMenu, reply.Text)
	assert.Equal(t, domain.MenuMain, reply.Menu)
	assert.True(t, f.session(t, chatID).Idle())
}

func TestController_CommandAbandonsFlow(t *testing.T) {
	ctx := context.Background()
	const chatID = "104"

	f := newFixture()
	user := testUser(chatID)
	f.users.On("FindByChatID", ctx, chatID).Return(user, nil)
	f.movies.On("ListByUsers", ctx, user.ScopeIDs(), []domain.Category{domain.CategoryPlanned}).
		Return([]domain.Movie{}, nil)

	// Enter the add flow, then issue an unrelated command.
	f.ctrl.HandleEvent(ctx, chatID, Command{Name: "add"})
	f.ctrl.HandleEvent(ctx, chatID, FreeText{Text: "Alien"})
	assert.Equal(t, domain.FlowAwaitingCategory, f.session(t, chatID).Flow.Kind)

	f.ctrl.HandleEvent(ctx, chatID, Command{Name: "list", Args: []string{"planned"}})
	session := f.session(t, chatID)
	assert.True(t, session.Idle())
	assert.Nil(t, session.Flow.Draft)
}

func TestController_StartCreatesUser(t *testing.T) {
	ctx := context.Background()
	const chatID = "105"

	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(nil, domain.ErrNotFound)
	f.users.On("Create", ctx, chatID).Return(testUser(chatID), nil)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "start"})
	assert.Contains(t, reply.Text, "Welcome")
	assert.Equal(t, domain.MenuMain, reply.Menu)
	f.users.AssertExpectations(t)
}

func TestController_StartExistingUser(t *testing.T) {
	ctx := context.Background()
	const chatID = "106"

	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(testUser(chatID), nil)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "start"})
	assert.Contains(t, reply.Text, "Welcome")
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestController_UnknownUserNeedsStart(t *testing.T) {
	ctx := context.Background()
	const chatID = "107"

	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(nil, domain.ErrNotFound)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "invite"})
	assert.Equal(t, msgNeedStart, reply.Text)
}

func TestController_RemoteFailureKeepsFlow(t *testing.T) {
	ctx := context.Background()
	const chatID = "108"

	f := newFixture()
	user := testUser(chatID)
	f.users.On("FindByChatID", ctx, chatID).Return(user, nil)
	f.movies.On("Insert", ctx, mock.AnythingOfType("*domain.Movie")).
		Return(nil, domain.ErrRemoteUnavailable).Once()
	f.movies.On("Insert", ctx, mock.AnythingOfType("*domain.Movie")).
		Return(&domain.Movie{ID: uuid.New()}, nil)

	f.ctrl.HandleEvent(ctx, chatID, Command{Name: "add"})
	f.ctrl.HandleEvent(ctx, chatID, FreeText{Text: "Heat"})

	// First attempt fails remotely; the draft must survive for a retry.
	reply := f.ctrl.HandleEvent(ctx, chatID, ButtonPress{Token: "cat:planned"})
	assert.Equal(t, msgRemoteError, reply.Text)
	assert.Equal(t, domain.FlowAwaitingCategory, f.session(t, chatID).Flow.Kind)

	reply = f.ctrl.HandleEvent(ctx, chatID, ButtonPress{Token: "cat:planned"})
	assert.Contains(t, reply.Text, "Added")
	assert.True(t, f.session(t, chatID).Idle())
}

func TestController_MalformedToken(t *testing.T) {
	ctx := context.Background()
	const chatID = "109"

	f := newFixture()

	for _, token := range []string{"", "view:abc", "setcat:nope", "bogus:1"} {
		reply := f.ctrl.HandleEvent(ctx, chatID, ButtonPress{Token: token})
		assert.Equal(t, msgStaleButton, reply.Text, "token %q", token)
	}
}

func TestController_ListMovies(t *testing.T) {
	ctx := context.Background()
	const chatID = "110"

	partnerID := uuid.New()
	user := &domain.User{ID: uuid.New(), ChatID: chatID, PartnerID: &partnerID}
	year := 1999

	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(user, nil)
	f.movies.On("ListByUsers", ctx, []uuid.UUID{user.ID, partnerID}, []domain.Category{domain.CategoryPlanned}).
		Return([]domain.Movie{
			{Title: "The Matrix", Category: domain.CategoryPlanned, ReleaseYear: &year},
			{Title: "Tenet", Category: domain.CategoryPlanned},
		}, nil)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "list", Args: []string{"planned"}})
	assert.Contains(t, reply.Text, "The Matrix (1999)")
	assert.Contains(t, reply.Text, "Tenet")
}

func TestController_RandomDefaultsToPlanned(t *testing.T) {
	ctx := context.Background()
	const chatID = "111"

	user := testUser(chatID)
	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(user, nil)
	f.movies.On("ListByUsers", ctx, user.ScopeIDs(), []domain.Category{domain.CategoryPlanned}).
		Return([]domain.Movie{{Title: "Arrival", Category: domain.CategoryPlanned}}, nil)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "random"})
	assert.Contains(t, reply.Text, "Arrival")
}

func TestController_JoinFlow(t *testing.T) {
	ctx := context.Background()
	const chatID = "112"

	user := testUser(chatID)
	code := "INV-abc123"
	inviter := &domain.User{ID: uuid.New(), ChatID: "999", InviteCode: &code}

	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(user, nil)
	f.users.On("FindByInviteCode", ctx, code).Return(inviter, nil)
	f.users.On("LinkPartners", ctx, user.ID, inviter.ID).Return(nil)
	f.users.On("SetInviteCode", ctx, inviter.ID, (*string)(nil)).Return(nil)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "join", Args: []string{code}})
	assert.Contains(t, reply.Text, "Successfully paired")
	f.users.AssertExpectations(t)
}

func TestController_JoinInvalidCode(t *testing.T) {
	ctx := context.Background()
	const chatID = "113"

	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(testUser(chatID), nil)
	f.users.On("FindByInviteCode", ctx, "INV-nope").Return(nil, domain.ErrNotFound)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "join", Args: []string{"INV-nope"}})
	assert.Contains(t, reply.Text, "Invalid invite code")
	f.users.AssertNotCalled(t, "LinkPartners", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_JoinOwnCode(t *testing.T) {
	ctx := context.Background()
	const chatID = "114"

	code := "INV-self01"
	user := &domain.User{ID: uuid.New(), ChatID: chatID, InviteCode: &code}

	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(user, nil)
	f.users.On("FindByInviteCode", ctx, code).Return(user, nil)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "join", Args: []string{code}})
	assert.Contains(t, reply.Text, "own invite code")
	f.users.AssertNotCalled(t, "LinkPartners", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_Invite(t *testing.T) {
	ctx := context.Background()
	const chatID = "115"

	user := testUser(chatID)
	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(user, nil)
	f.users.On("SetInviteCode", ctx, user.ID, mock.MatchedBy(func(code *string) bool {
		return code != nil && len(*code) == 10 && (*code)[:4] == "INV-"
	})).Return(nil)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "invite"})
	assert.Contains(t, reply.Text, "INV-")
	f.users.AssertExpectations(t)
}

func TestController_Unlink(t *testing.T) {
	ctx := context.Background()
	const chatID = "116"

	partnerID := uuid.New()
	user := &domain.User{ID: uuid.New(), ChatID: chatID, PartnerID: &partnerID}

	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(user, nil)
	f.users.On("UnlinkPartner", ctx, user.ID, partnerID).Return(nil)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "unlink"})
	assert.Contains(t, reply.Text, "unlinked")
	f.users.AssertExpectations(t)
}

func TestController_UnlinkWithoutPartner(t *testing.T) {
	ctx := context.Background()
	const chatID = "117"

	f := newFixture()
	f.users.On("FindByChatID", ctx, chatID).Return(testUser(chatID), nil)

	reply := f.ctrl.HandleEvent(ctx, chatID, Command{Name: "unlink"})
	assert.Contains(t, reply.Text, "not paired")
	f.users.AssertNotCalled(t, "UnlinkPartner", mock.Anything, mock.Anything, mock.Anything)
}
