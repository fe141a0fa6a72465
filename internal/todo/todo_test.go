package todo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/localtodo/internal/auth"
	"github.com/patric-chuzhbe/localtodo/internal/db/memorystorage"
	"github.com/patric-chuzhbe/localtodo/internal/directory"
	"github.com/patric-chuzhbe/localtodo/internal/models"
	"github.com/patric-chuzhbe/localtodo/internal/session"
	"github.com/patric-chuzhbe/localtodo/internal/user"
)

type testFixture struct {
	accounts *directory.Directory
	session  *session.Session
}

// newTestFixture registers ann@x.com and bob@x.com and logs Ann in.
func newTestFixture(t *testing.T) *testFixture {
	theStorage, err := memorystorage.New()
	require.NoError(t, err)

	accounts := directory.New(theStorage)
	currentSession := session.New(theStorage)

	ann := user.Account{
		Name:     "Ann",
		Email:    "ann@x.com",
		Password: "secret1",
		Todos:    []models.Todo{},
	}
	bob := user.Account{
		Name:     "Bob",
		Email:    "bob@x.com",
		Password: "secret2",
		Todos:    []models.Todo{{ID: 7, Text: "Walk the dog"}},
	}

	err = accounts.SaveAll(context.Background(), []user.Account{ann, bob})
	require.NoError(t, err)

	err = currentSession.Set(context.Background(), &ann)
	require.NoError(t, err)

	return &testFixture{
		accounts: accounts,
		session:  currentSession,
	}
}

func (f *testFixture) newService(t *testing.T) *Service {
	service, err := New(context.Background(), f.accounts, f.session)
	require.NoError(t, err)

	return service
}

func (f *testFixture) annTodos(t *testing.T) []models.Todo {
	accounts, err := f.accounts.LoadAll(context.Background())
	require.NoError(t, err)

	account, found := directory.FindByEmail(accounts, "ann@x.com")
	require.True(t, found)

	return account.Todos
}

func TestNewWithoutSession(t *testing.T) {
	theStorage, err := memorystorage.New()
	require.NoError(t, err)

	_, err = New(context.Background(), directory.New(theStorage), session.New(theStorage))
	assert.ErrorIs(t, err, models.ErrNoActiveSession)
}

func TestAddEditDeleteScenario(t *testing.T) {
	fixture := newTestFixture(t)
	service := fixture.newService(t)

	assert.Empty(t, service.List())

	err := service.AddOrUpdate(context.Background(), "Buy milk", 0)
	require.NoError(t, err)

	items := service.List()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)

	id := items[0].ID

	err = service.AddOrUpdate(context.Background(), "Buy bread", id)
	require.NoError(t, err)
	assert.Equal(t, []models.Todo{{ID: id, Text: "Buy bread"}}, service.List(),
		"An edit should preserve the todo's id and position")

	err = service.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, service.List())
	assert.Empty(t, fixture.annTodos(t), "The deletion should be persisted")
}

func TestBlankTextIsNoOp(t *testing.T) {
	fixture := newTestFixture(t)
	service := fixture.newService(t)

	err := service.AddOrUpdate(context.Background(), "Buy milk", 0)
	require.NoError(t, err)

	before := service.List()

	err = service.AddOrUpdate(context.Background(), "   \t  ", 0)
	require.NoError(t, err)
	assert.Equal(t, before, service.List())

	err = service.AddOrUpdate(context.Background(), "", before[0].ID)
	require.NoError(t, err)
	assert.Equal(t, before, service.List(), "Blank text is a no-op even while editing")
}

func TestStaleEditIDFallsThroughToInsert(t *testing.T) {
	fixture := newTestFixture(t)
	service := fixture.newService(t)

	err := service.AddOrUpdate(context.Background(), "Buy milk", 424242)
	require.NoError(t, err)

	items := service.List()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)
	assert.NotEqual(t, int64(424242), items[0].ID,
		"A stale edit target should insert a new todo, not reuse the stale id")
}

func TestDeleteMissingIDLeavesListUnchanged(t *testing.T) {
	fixture := newTestFixture(t)
	service := fixture.newService(t)

	err := service.AddOrUpdate(context.Background(), "Buy milk", 0)
	require.NoError(t, err)

	before := service.List()

	err = service.Delete(context.Background(), 424242)
	require.NoError(t, err, "Deleting a non-existent id is not an error")
	assert.Equal(t, before, service.List())
}

func TestNewItemsArePrependedWithIncreasingIDs(t *testing.T) {
	fixture := newTestFixture(t)
	service := fixture.newService(t)

	for _, text := range []string{"first", "second", "third"} {
		err := service.AddOrUpdate(context.Background(), text, 0)
		require.NoError(t, err)
	}

	items := service.List()
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].Text, "The newest item should be the head")
	assert.Equal(t, "first", items[2].Text)

	assert.Greater(t, items[0].ID, items[1].ID,
		"IDs must stay unique and increasing under rapid successive inserts")
	assert.Greater(t, items[1].ID, items[2].ID)
}

func TestTextIsTrimmedOnInsertAndUpdate(t *testing.T) {
	fixture := newTestFixture(t)
	service := fixture.newService(t)

	err := service.AddOrUpdate(context.Background(), "  Buy milk  ", 0)
	require.NoError(t, err)

	items := service.List()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)

	err = service.AddOrUpdate(context.Background(), "  Buy bread  ", items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy bread", service.List()[0].Text)
}

func TestEditLooksUpByID(t *testing.T) {
	fixture := newTestFixture(t)
	service := fixture.newService(t)

	err := service.AddOrUpdate(context.Background(), "Buy milk", 0)
	require.NoError(t, err)

	id := service.List()[0].ID

	item, found := service.Edit(id)
	require.True(t, found)
	assert.Equal(t, "Buy milk", item.Text)

	_, found = service.Edit(424242)
	assert.False(t, found)
}

func TestWorkingCopyIsLoadedFromDirectoryNotSnapshot(t *testing.T) {
	fixture := newTestFixture(t)

	// the session snapshot was taken with empty todos; the directory
	// record changes afterwards
	accounts, err := fixture.accounts.LoadAll(context.Background())
	require.NoError(t, err)
	account, found := directory.FindByEmail(accounts, "ann@x.com")
	require.True(t, found)
	account.Todos = []models.Todo{{ID: 42, Text: "Buy milk"}}
	err = fixture.accounts.SaveAll(context.Background(), accounts)
	require.NoError(t, err)

	service := fixture.newService(t)
	assert.Equal(t, []models.Todo{{ID: 42, Text: "Buy milk"}}, service.List(),
		"The working copy must come from the directory entry, not the stale snapshot")
}

func TestPersistTouchesOnlyTheMatchingAccount(t *testing.T) {
	fixture := newTestFixture(t)
	service := fixture.newService(t)

	err := service.AddOrUpdate(context.Background(), "Buy milk", 0)
	require.NoError(t, err)

	accounts, err := fixture.accounts.LoadAll(context.Background())
	require.NoError(t, err)

	bob, found := directory.FindByEmail(accounts, "bob@x.com")
	require.True(t, found)
	assert.Equal(t, []models.Todo{{ID: 7, Text: "Walk the dog"}}, bob.Todos,
		"Another account's todos must not be altered")
}

func TestSignupLoginTodoLifecycle(t *testing.T) {
	theStorage, err := memorystorage.New()
	require.NoError(t, err)

	accounts := directory.New(theStorage)
	currentSession := session.New(theStorage)

	theAuth, err := auth.New(accounts, currentSession)
	require.NoError(t, err)

	err = theAuth.Signup(context.Background(), models.SignupRequest{
		Name:            "Ann",
		Email:           "ann@x.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)

	account, err := theAuth.Login(context.Background(), "ann@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", account.Name)
	assert.Equal(t, []models.Todo{}, account.Todos)

	service, err := New(context.Background(), accounts, currentSession)
	require.NoError(t, err)

	err = service.AddOrUpdate(context.Background(), "Buy milk", 0)
	require.NoError(t, err)

	items := service.List()
	require.Len(t, items, 1)
	assert.Equal(t, "Buy milk", items[0].Text)

	id := items[0].ID

	err = service.AddOrUpdate(context.Background(), "Buy bread", id)
	require.NoError(t, err)
	assert.Equal(t, []models.Todo{{ID: id, Text: "Buy bread"}}, service.List())

	err = service.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, service.List())
}

func TestPersistedStateSurvivesServiceReload(t *testing.T) {
	fixture := newTestFixture(t)
	service := fixture.newService(t)

	err := service.AddOrUpdate(context.Background(), "Buy milk", 0)
	require.NoError(t, err)

	reloaded := fixture.newService(t)
	assert.Equal(t, service.List(), reloaded.List())
}
