package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freelancer_directory/internal/api"
	"freelancer_directory/internal/auth"
	"freelancer_directory/internal/client"
	"freelancer_directory/internal/db"
	"freelancer_directory/internal/repository"
	"freelancer_directory/internal/testutil"
	"freelancer_directory/internal/utils"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := testutil.NewDB(t)
	repo := repository.NewFreelancerRepository(gdb)
	tokens := utils.TokenOptions{Secret: "client-secret", Issuer: "freelancer-directory", TTL: time.Hour}

	_, err := db.SeedAdmin(context.Background(), repo, db.AdminSeed{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "AdminPass1",
		PhoneNum: "+1 555 0100",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(api.Deps{
		DB:     gdb,
		Repo:   repo,
		Auth:   auth.NewService(repo, tokens, nil),
		Tokens: tokens,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientAdminFlow(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)
	c := client.New(srv.URL+"/", client.WithHTTPClient(srv.Client()))

	login, err := c.Login(ctx, "admin", "AdminPass1")
	require.NoError(t, err)
	assert.Equal(t, "admin", login.Username)
	assert.Equal(t, login.AccessToken, c.Store().Token())

	created, err := c.Create(ctx, client.FreelancerInput{
		Username:  "carol",
		Email:     "carol@example.com",
		PhoneNum:  "555-0101-22",
		Skillsets: client.SplitSkillsets("Go, SQL"),
		Hobbies:   client.SplitHobbies("Chess"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.ElementsMatch(t, []string{"Go", "SQL"}, client.SkillNames(created.Skillsets))

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", got.Username)

	err = c.Update(ctx, created.ID, client.FreelancerInput{
		Username:  got.Username,
		Email:     got.Email,
		PhoneNum:  got.PhoneNum,
		Skillsets: client.SplitSkillsets("Rust"),
		Hobbies:   got.Hobbies,
	})
	require.NoError(t, err)

	require.NoError(t, c.Archive(ctx, created.ID))
	archived := true
	page, err := c.Filter(ctx, client.FilterParams{IsArchived: &archived, SearchPhrase: "car"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, []string{"Rust"}, client.SkillNames(page.Items[0].Skillsets))

	require.NoError(t, c.Unarchive(ctx, created.ID))
	require.NoError(t, c.Delete(ctx, created.ID))

	_, err = c.Get(ctx, created.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Freelancer not found.", apiErr.Message)
}

func TestClientSignupAndForbidden(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)
	c := client.New(srv.URL)

	data, err := c.Signup(ctx, client.FreelancerInput{
		Username: "bob",
		Email:    "bob@x.com",
		PhoneNum: "+1-555-0100",
		Password: "Passw0rd!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.Store().Token())

	page, err := c.Filter(ctx, client.FilterParams{SearchPhrase: "bob", PageSize: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, data.ID, page.Items[0].ID)

	err = c.Delete(ctx, data.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.False(t, errors.Is(err, client.ErrUnauthenticated))
	assert.NotEmpty(t, c.Store().Token(), "403 keeps the token")

	_, err = c.Signup(ctx, client.FreelancerInput{
		Username: "bob",
		Email:    "bob2@x.com",
		PhoneNum: "+1-555-0100",
		Password: "Passw0rd!",
	})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Username already exists.", apiErr.Message)
}

func TestClientUnauthorizedClearsToken(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)
	store := &client.MemoryStore{}
	store.Save(client.AuthData{Username: "ghost", AccessToken: "expired-or-forged"})
	c := client.New(srv.URL, client.WithTokenStore(store))

	_, err := c.Filter(ctx, client.FilterParams{})
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
	assert.Empty(t, store.Token())

	_, err = c.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid username or password.", apiErr.Message)
}

func TestNames(t *testing.T) {
	skillsets := client.SplitSkillsets(" Go ,, SQL,  ")
	assert.Equal(t, []string{"Go", "SQL"}, client.SkillNames(skillsets))
	assert.Equal(t, "Go, SQL", client.JoinNames(client.SkillNames(skillsets)))

	hobbies := client.SplitHobbies("")
	assert.Empty(t, hobbies)
	assert.NotNil(t, hobbies)
	assert.Equal(t, "", client.JoinNames(client.HobbyNames(hobbies)))

	assert.Equal(t, []string{"Chess", "Hiking"}, client.HobbyNames(client.SplitHobbies("Chess,Hiking")))
}
