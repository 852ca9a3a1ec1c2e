package proto

import (
	"time"

	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/imagepool"
)

// Credential is the wire form of a credential or an attempt. Exactly one
// of ClickPoints and ImageSequence is meaningful, as selected by Method.
type Credential struct {
	Method        credential.Method         `json:"authMethod"`
	ClickPoints   credential.ClickSequence  `json:"clickPoints,omitempty"`
	ImageSequence credential.ImageSelection `json:"imageSequence,omitempty"`
}

// FromCredential converts c to its wire form. A nil c gives nil.
func FromCredential(c credential.Credential) *Credential {
	switch v := c.(type) {
	case credential.ClickCredential:
		return &Credential{Method: credential.MethodClickPoints, ClickPoints: v.Points}
	case credential.SequenceCredential:
		return &Credential{Method: credential.MethodImageSequence, ImageSequence: v.Images}
	default:
		return nil
	}
}

// ToCredential converts the wire form back. An unknown method gives nil;
// the flow controller rejects nil credentials.
func (c *Credential) ToCredential() credential.Credential {
	if c == nil {
		return nil
	}
	switch c.Method {
	case credential.MethodClickPoints:
		return credential.ClickCredential{Points: c.ClickPoints}
	case credential.MethodImageSequence:
		return credential.SequenceCredential{Images: c.ImageSequence}
	default:
		return nil
	}
}

type CheckUsernameRequest struct {
	Username string `json:"username"`
}

type CheckUsernameResponse struct {
	Available bool `json:"available"`
}

type RegisterRequest struct {
	Username   string      `json:"username"`
	Credential *Credential `json:"credential"`
}

type RegisterResponse struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	Method    credential.Method `json:"authMethod"`
	CreatedAt time.Time         `json:"createdAt"`
}

type BeginLoginRequest struct {
	Username string `json:"username"`
}

type BeginLoginResponse struct {
	SessionID       string            `json:"sessionId"`
	Username        string            `json:"username"`
	Method          credential.Method `json:"authMethod"`
	Remaining       int               `json:"remaining"`
	BackgroundImage string            `json:"backgroundImage,omitempty"`
	Grid            []imagepool.Image `json:"grid,omitempty"`
}

// GridRequest asks for a freshly shuffled grid of an open session.
type GridRequest struct {
	SessionID string `json:"sessionId"`
}

type GridResponse struct {
	Grid []imagepool.Image `json:"grid"`
}

// Outcome values of SubmitAttemptResponse.
const (
	OutcomeGranted = "granted"
	OutcomeRetry   = "retry"
	OutcomeLocked  = "locked"
)

type SubmitAttemptRequest struct {
	SessionID string      `json:"sessionId"`
	Attempt   *Credential `json:"attempt"`
}

type SubmitAttemptResponse struct {
	Outcome     string            `json:"outcome"`
	Remaining   int               `json:"remaining"`
	Message     string            `json:"message,omitempty"`
	Username    string            `json:"username,omitempty"`
	Method      credential.Method `json:"authMethod,omitempty"`
	AccessToken string            `json:"accessToken,omitempty"`
}

type WhoAmIRequest struct{}

type WhoAmIResponse struct {
	Username  string            `json:"username"`
	Method    credential.Method `json:"authMethod"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
