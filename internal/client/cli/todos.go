package cli

import (
	"context"
	"fmt"
	"os"
)

// List prints every todo visible to the logged-in user.
func (a *App) List(ctx context.Context) error {
	todos, err := a.client.Todos(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if len(todos) == 0 {
		printlnFn("No todos")
		return nil
	}
	for _, t := range todos {
		visibility := "private"
		if t.Public {
			visibility = "public"
		}
		printlnFn(fmt.Sprintf("[%s] %s (%s)", t.ID, t.Description, visibility))
	}
	return nil
}

// Add prompts for a description and creates a private todo.
func (a *App) Add(ctx context.Context) error {
	description, err := GetSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	todo, err := a.client.CreateTodo(ctx, description)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn("Created todo", todo.ID)
	return nil
}

// Publish flips the public flag on all todos owned by the logged-in user.
func (a *App) Publish(ctx context.Context, public bool) error {
	if err := a.client.SetTodosPublic(ctx, public); err != nil {
		printlnFn(err.Error())
		return err
	}
	if public {
		printlnFn("Your todos are now public")
	} else {
		printlnFn("Your todos are now private")
	}
	return nil
}

// Users prints the user directory.
func (a *App) Users(ctx context.Context) error {
	users, err := a.client.Users(ctx)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	for _, u := range users {
		printlnFn(fmt.Sprintf("%s (%s)", u.Name, u.UserID))
	}
	return nil
}
