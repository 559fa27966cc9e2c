package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/deskmate/internal/client/api"
	"github.com/dmitrijs2005/deskmate/internal/client/config"
)

func submitLogin(view View) (View, []tea.Msg) {
	view = typeString(view, "alice@corp.test")
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyTab})
	view = typeString(view, "secret")
	next, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return feed(next, cmd)
}

func TestLogin_SuccessEmitsLoggedIn(t *testing.T) {
	deps, _ := testDeps(t, config.RoleUser)
	auth := &fakeAuth{}
	deps.Auth = auth

	view := View(newLoginView(context.Background(), deps))
	view, _ = feed(view, view.Init())

	_, msgs := submitLogin(view)

	assert.Equal(t, 1, auth.loginCalls)
	sawLogin := false
	for _, msg := range msgs {
		if _, ok := msg.(loggedInMsg); ok {
			sawLogin = true
		}
	}
	assert.True(t, sawLogin)
}

func TestLogin_RejectedCredentialsShowBackendDetail(t *testing.T) {
	deps, _ := testDeps(t, config.RoleUser)
	deps.Auth = &fakeAuth{loginErr: &api.RequestError{
		Status: 401,
		Body:   `{"detail":"Incorrect username or password"}`,
	}}

	view := View(newLoginView(context.Background(), deps))
	view, _ = feed(view, view.Init())

	view, msgs := submitLogin(view)

	for _, msg := range msgs {
		_, ok := msg.(loggedInMsg)
		require.False(t, ok, "a rejected login must stay on the form")
	}
	assert.Contains(t, view.View(), "Incorrect username or password")
}

func TestLogin_NetworkErrorShowsGenericLine(t *testing.T) {
	deps, _ := testDeps(t, config.RoleUser)
	deps.Auth = &fakeAuth{
		loginErr: fmt.Errorf("%w: dial tcp: connection refused", api.ErrNetworkOrDecode),
	}

	view := View(newLoginView(context.Background(), deps))
	view, _ = feed(view, view.Init())

	view, _ = submitLogin(view)

	assert.Contains(t, view.View(), "cannot reach the server")
}

func TestLogin_EnterOnUsernameMovesToPassword(t *testing.T) {
	deps, _ := testDeps(t, config.RoleUser)
	auth := &fakeAuth{}
	deps.Auth = auth

	view := View(newLoginView(context.Background(), deps))
	view = typeString(view, "alice@corp.test")
	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd, "first enter only advances focus")
	assert.Zero(t, auth.loginCalls)
	assert.Equal(t, 1, view.(*loginView).focus)
}
