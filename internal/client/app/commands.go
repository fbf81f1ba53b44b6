package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/voyago/traveldesk/internal/client/api"
	"github.com/voyago/traveldesk/internal/client/authz"
)

const usage = `usage: traveldesk <command> [args]

commands:
  login              sign in with username and password
  logout             sign out and revoke the session
  whoami             show the current identity and roles
  events             list travel events
  report <event-id>  dispatch the expense report for an event
`

// Run dispatches a CLI subcommand against the wired application.
func (a *Application) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("no command given")
	}

	switch args[0] {
	case "login":
		return a.runLogin(ctx)
	case "logout":
		a.Session.Logout(ctx)
		fmt.Println("signed out")
		return nil
	case "whoami":
		return a.runWhoami()
	case "events":
		return a.runEvents(ctx)
	case "report":
		if len(args) < 2 {
			return errors.New("report: event id required")
		}
		return a.runReport(ctx, args[1])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *Application) runLogin(ctx context.Context) error {
	username, password, err := promptCredentials(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	if err := a.Session.Login(ctx, username, password); err != nil {
		return err
	}

	fmt.Printf("signed in as %s\n", a.Session.Identity().User.DisplayName())
	return nil
}

func (a *Application) runWhoami() error {
	id := a.Session.Identity()
	if !id.IsAuthenticated {
		fmt.Println("not signed in")
		return nil
	}

	fmt.Printf("user:  %s\n", id.User.DisplayName())
	fmt.Printf("roles: %s\n", strings.Join(id.Roles(), ", "))
	if a.Session.IsAdmin() {
		fmt.Println("admin: yes")
	}
	return nil
}

func (a *Application) runEvents(ctx context.Context) error {
	if !authz.CanAccess(a.Session.Identity()) {
		return errors.New("sign in first")
	}

	events, err := a.API.ListEvents(ctx)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Println("no events")
		return nil
	}

	for _, ev := range events {
		fmt.Printf("%s  %-10s  %s\n", ev.ID, ev.Status, ev.Title)
	}
	return nil
}

func (a *Application) runReport(ctx context.Context, eventID string) error {
	ack, err := a.API.DispatchReport(ctx, api.DispatchReportRequest{EventID: eventID})
	if err != nil {
		return err
	}

	fmt.Printf("report %s dispatched at %s\n", ack.ReportID, ack.DispatchedAt.Format("15:04:05"))
	return nil
}

// promptCredentials reads a username and a password, one per line.
func promptCredentials(in io.Reader, out io.Writer) (string, string, error) {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", fmt.Errorf("reading username: %w", err)
	}
	username = strings.TrimSpace(username)

	fmt.Fprint(out, "password: ")
	password, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", fmt.Errorf("reading password: %w", err)
	}

	return username, strings.TrimSpace(password), nil
}
