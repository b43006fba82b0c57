package cli

import (
	"context"
	"fmt"
	"os"
)

// Register prompts for account details and creates the account. On success
// the server's session cookie leaves the client logged in.
func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	name, err := GetSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.client.Register(ctx, email, name, password); err != nil {
		printlnFn(err.Error())
		return err
	}

	a.userName = name
	printlnFn("Registered and logged in as", name)
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.client.Login(ctx, email, password); err != nil {
		printlnFn(err.Error())
		return err
	}

	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.userName = user.Name
	printlnFn("Logged in as", user.Name)
	return nil
}

// Whoami prints the profile of the logged-in user.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("%s <%s> (%s)", user.Name, user.Email, user.UserID))
	return nil
}

// Refresh rotates the session token.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.client.RefreshSession(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Session refreshed")
	return nil
}

// Logout revokes the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}
	a.userName = ""
	printlnFn("Logged out")
	return nil
}
