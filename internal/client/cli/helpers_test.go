package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/client/client"
	"github.com/dmitrijs2005/graphauth/internal/client/config"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/imagepool"
)

// stubSecrets feeds lines to readPassword in order; after the last one it
// returns io.EOF.
func stubSecrets(t *testing.T, lines ...string) {
	t.Helper()
	orig := readPassword
	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(lines) {
			return nil, io.EOF
		}
		i++
		return []byte(lines[i-1]), nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

// fixedGrid replaces the registration shuffle with the canonical pool order.
func fixedGrid(t *testing.T) []imagepool.Image {
	t.Helper()
	grid := imagepool.Default().Images()
	orig := registrationGrid
	registrationGrid = func() []imagepool.Image { return grid }
	t.Cleanup(func() { registrationGrid = orig })
	return grid
}

type submitted struct {
	sessionID string
	cred      credential.Credential
}

type fakeClient struct {
	available   bool
	checkErr    error
	registered  map[string]credential.Credential
	registerErr error

	challenge *client.Challenge
	beginErr  error
	grids     [][]imagepool.Image
	gridCalls int

	results   []*client.Result
	submitErr error
	submits   []submitted

	identity  *client.Identity
	whoAmIErr error

	pingErr   error
	pings     int
	loggedOut bool
	closed    bool
}

func (f *fakeClient) CheckUsername(context.Context, string) (bool, error) {
	return f.available, f.checkErr
}

func (f *fakeClient) Register(_ context.Context, username string, c credential.Credential) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	if f.registered == nil {
		f.registered = map[string]credential.Credential{}
	}
	f.registered[username] = c
	return nil
}

func (f *fakeClient) BeginLogin(context.Context, string) (*client.Challenge, error) {
	return f.challenge, f.beginErr
}

func (f *fakeClient) Grid(context.Context, string) ([]imagepool.Image, error) {
	g := f.grids[f.gridCalls]
	f.gridCalls++
	return g, nil
}

func (f *fakeClient) SubmitAttempt(_ context.Context, sessionID string, c credential.Credential) (*client.Result, error) {
	f.submits = append(f.submits, submitted{sessionID: sessionID, cred: c})
	if f.submitErr != nil && len(f.submits) > len(f.results) {
		return nil, f.submitErr
	}
	return f.results[len(f.submits)-1], nil
}

func (f *fakeClient) WhoAmI(context.Context) (*client.Identity, error) {
	return f.identity, f.whoAmIErr
}

func (f *fakeClient) Ping(context.Context) error {
	f.pings++
	return f.pingErr
}

func (f *fakeClient) Logout()      { f.loggedOut = true }
func (f *fakeClient) Close() error { f.closed = true; return nil }

func testApp(fc *fakeClient, input ...string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	cfg := &config.Config{ServerEndpointAddr: "bufnet", OnlineCheckInterval: time.Hour}
	in := strings.Join(input, "\n")
	if len(input) > 0 {
		in += "\n"
	}
	return newApp(cfg, fc, strings.NewReader(in), &out), &out
}

var clickLines = []string{"10,10", "20,20", "30,30", "40,40", "50,50"}

func wantClicks() credential.Credential {
	return credential.ClickCredential{Points: credential.ClickSequence{
		{X: 10, Y: 10}, {X: 20, Y: 20}, {X: 30, Y: 30}, {X: 40, Y: 40}, {X: 50, Y: 50},
	}}
}
