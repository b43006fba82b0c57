// Package cli is the interactive terminal frontend of the sessions client.
// It drives the api.Client through a small REPL; the session cookie is held
// by the client, so the CLI only tracks the display name for the prompt.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/monacoremo/postgrest-sessions-example/internal/client/api"
	"github.com/monacoremo/postgrest-sessions-example/internal/client/config"
)

type App struct {
	config   *config.Config
	client   *api.Client
	reader   *bufio.Reader
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := api.New(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "not logged in"
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
