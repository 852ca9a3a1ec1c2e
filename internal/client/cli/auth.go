package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/graphauth/internal/client/client"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/imagepool"
	"github.com/dmitrijs2005/graphauth/internal/shuffle"
)

// registrationGrid is the grid shown while choosing a new image sequence.
// Tests swap it for a fixed order.
var registrationGrid = func() []imagepool.Image {
	return shuffle.Shuffle(shuffle.New(), imagepool.Default().Images())
}

// Register asks for a username and a new graphical password and creates
// the account. The username is checked first so a taken name is reported
// before the user spends effort on the password.
func (a *App) Register(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}

	available, err := a.client.CheckUsername(ctx, userName)
	if err != nil {
		return err
	}
	if !available {
		fmt.Fprintln(a.out, "Username is already taken")
		return nil
	}

	method, err := a.chooseMethod()
	if err != nil {
		return a.quiet(err)
	}

	cred, err := a.collect(method, imagepool.BackgroundImage, registrationGrid())
	if err != nil {
		return a.quiet(err)
	}

	if err := a.client.Register(ctx, userName, cred); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s with %s. You can now log in.\n", userName, method.DisplayName())
	return nil
}

// Login opens a login session and keeps submitting attempts until access is
// granted, the account locks or the user cancels.
func (a *App) Login(ctx context.Context) error {
	userName, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	ch, err := a.client.BeginLogin(ctx, userName)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s login for %s. Attempts remaining: %d\n", ch.Method.DisplayName(), ch.Username, ch.Remaining)

	grid := ch.Grid
	for attemptNo := 0; ; attemptNo++ {
		if attemptNo > 0 && ch.Method == credential.MethodImageSequence {
			// every attempt gets a freshly shuffled grid
			if grid, err = a.client.Grid(ctx, ch.SessionID); err != nil {
				return err
			}
		}

		cred, err := a.collect(ch.Method, ch.BackgroundImage, grid)
		if err != nil {
			return a.quiet(err)
		}

		res, err := a.client.SubmitAttempt(ctx, ch.SessionID, cred)
		if err != nil {
			if errors.Is(err, client.ErrLocked) {
				fmt.Fprintln(a.out, err.Error())
				return nil
			}
			return err
		}

		switch res.Outcome {
		case client.OutcomeGranted:
			a.userName = res.Username
			fmt.Fprintf(a.out, "Welcome, %s!\n", res.Username)
			return nil
		case client.OutcomeLocked:
			fmt.Fprintln(a.out, res.Message)
			return nil
		default:
			fmt.Fprintln(a.out, res.Message)
		}
	}
}

// WhoAmI prints the identity carried by the current access token.
func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.client.WhoAmI(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.userName = ""
			fmt.Fprintln(a.out, "Not logged in")
			return nil
		}
		return err
	}

	fmt.Fprintf(a.out, "%s (%s), access valid until %s\n",
		id.Username, id.Method.DisplayName(), id.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

// Logout forgets the access token.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// quiet turns a user cancellation into a plain notice.
func (a *App) quiet(err error) error {
	if errors.Is(err, errCancelled) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	return err
}
