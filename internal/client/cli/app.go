package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mkozyrev/gatekeeper/internal/server/bus"
)

// getSimpleText and getPassword are indirections for testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// App is the authctl REPL. It remembers the token of the last successful
// operation so "verify" can run without pasting it back.
type App struct {
	reader *bufio.Reader
	out    io.Writer
	client AuthClient
	token  string
}

func NewApp(client AuthClient) *App {
	return &App{
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		client: client,
	}
}

// Register prompts for email, name, and password and creates an account.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer WipePassword(password)

	resp, err := a.client.Register(ctx, email, name, string(password))
	if err != nil {
		return err
	}
	a.printResponse(resp)
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer WipePassword(password)

	resp, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.printResponse(resp)
	return nil
}

// Verify checks the remembered token (or a pasted one) and stores the
// reissued token for the next call.
func (a *App) Verify(ctx context.Context) error {
	token := a.token
	if token == "" {
		t, err := getSimpleText(a.reader, "Enter token", a.out)
		if err != nil {
			return err
		}
		token = t
	}

	resp, err := a.client.Verify(ctx, token)
	if err != nil {
		return err
	}
	a.printResponse(resp)
	return nil
}

func (a *App) printResponse(resp *bus.Response) {
	if resp.Error != nil {
		fmt.Fprintf(a.out, "Failed: %d %s\n", resp.Error.Status, resp.Error.Message)
		return
	}
	a.token = resp.Token
	fmt.Fprintf(a.out, "OK: id=%s email=%s name=%s\ntoken: %s\n",
		resp.User.ID, resp.User.Email, resp.User.Name, resp.Token)
}

// Run executes the REPL until "exit" or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "authctl (type 'help' for commands)")

	for {
		fmt.Fprint(a.out, "authctl> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)

		var cmdErr error
		switch cmd {
		case "":
			continue
		case "help":
			fmt.Fprintln(a.out, "Available commands: register, login, verify, exit")
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "verify":
			cmdErr = a.Verify(ctx)
		case "exit":
			return
		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		}
		if cmdErr != nil {
			fmt.Fprintf(a.out, "Error: %v\n", cmdErr)
		}
	}
}
