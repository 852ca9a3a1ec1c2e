// Package credential holds the data contracts of the graphical password
// engine: click points, image selections, the Credential sum type and the
// stored user record.
package credential

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/common"
)

const (
	// RequiredPoints is the number of clicks in a click-point credential.
	RequiredPoints = 5
	// RequiredImages is the number of images in an image-sequence credential.
	RequiredImages = 4
	// ToleranceRadius is the largest distance, in percent of the displayed
	// image, between an attempted click and the stored one it must match.
	ToleranceRadius = 5.0
	// MaxCoordinate bounds both axes; coordinates are percentages.
	MaxCoordinate = 100.0
)

// Method discriminates the two credential variants.
type Method string

const (
	MethodClickPoints   Method = "cued-click-points"
	MethodImageSequence Method = "image-sequence"
)

// ParseMethod accepts the wire names of both methods.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodClickPoints:
		return MethodClickPoints, nil
	case MethodImageSequence:
		return MethodImageSequence, nil
	default:
		return "", fmt.Errorf("%w: unknown authentication method %q", common.ErrValidation, s)
	}
}

// DisplayName is the label used in user-facing failure messages.
func (m Method) DisplayName() string {
	if m == MethodImageSequence {
		return "Image sequence"
	}
	return "Click points"
}

// ClickPoint is one click, in percent of the image's displayed size.
type ClickPoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	ImageIndex int     `json:"imageIndex"`
}

// ClickSequence is an ordered list of clicks; position i is only ever
// compared with position i.
type ClickSequence []ClickPoint

// Validate checks cardinality and bounds.
func (s ClickSequence) Validate() error {
	if len(s) != RequiredPoints {
		return common.NewValidationError(common.ErrIncompleteAttempt, "Please select exactly %d points", RequiredPoints)
	}
	for i, p := range s {
		if !inRange(p.X) || !inRange(p.Y) {
			return common.NewValidationError(common.ErrInvalidCredential, "Point %d lies outside the image", i+1)
		}
		if p.ImageIndex < 0 {
			return common.NewValidationError(common.ErrInvalidCredential, "Point %d has a negative image index", i+1)
		}
	}
	return nil
}

func inRange(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= MaxCoordinate
}

// ImageSelection is an ordered list of image identifiers.
type ImageSelection []string

// Validate checks cardinality, repetition and pool membership. A nil pool
// skips the membership check.
func (s ImageSelection) Validate(pool func(id string) bool) error {
	if len(s) != RequiredImages {
		return common.NewValidationError(common.ErrIncompleteAttempt, "Please select exactly %d images", RequiredImages)
	}
	seen := make(map[string]struct{}, len(s))
	for _, id := range s {
		if _, dup := seen[id]; dup {
			return common.NewValidationError(common.ErrInvalidCredential, "Image %s is selected more than once", id)
		}
		seen[id] = struct{}{}
		if pool != nil && !pool(id) {
			return common.NewValidationError(common.ErrInvalidCredential, "Unknown image %s", id)
		}
	}
	return nil
}

// Credential is either a ClickCredential or a SequenceCredential. The
// interface is sealed; no other implementations exist.
type Credential interface {
	Method() Method
	sealed()
}

// ClickCredential is the cued-click-points secret.
type ClickCredential struct {
	Points ClickSequence
}

func (ClickCredential) Method() Method { return MethodClickPoints }
func (ClickCredential) sealed()        {}

// SequenceCredential is the image-sequence secret.
type SequenceCredential struct {
	Images ImageSelection
}

func (SequenceCredential) Method() Method { return MethodImageSequence }
func (SequenceCredential) sealed()        {}

// Validate dispatches to the variant's own validation.
func Validate(c Credential, pool func(id string) bool) error {
	switch v := c.(type) {
	case ClickCredential:
		return v.Points.Validate()
	case SequenceCredential:
		return v.Images.Validate(pool)
	default:
		return common.NewValidationError(common.ErrInvalidCredential, "Missing credential")
	}
}

// UserRecord is created once at registration and never changed.
type UserRecord struct {
	ID         string
	Username   string
	Credential Credential
	CreatedAt  time.Time
}

// Method is the record's authentication method, derived from its credential.
func (u *UserRecord) Method() Method {
	if u.Credential == nil {
		return ""
	}
	return u.Credential.Method()
}

// Key is the lookup key for the record: the lower-cased username.
func (u *UserRecord) Key() string {
	return UsernameKey(u.Username)
}

// UsernameKey normalizes a username for case-insensitive lookups.
func UsernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks a username offered at login.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return common.ErrUsernameRequired
	}
	return nil
}

// ValidateNewUsername checks a username offered at registration.
func ValidateNewUsername(username string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if len([]rune(strings.TrimSpace(username))) < common.MinUsernameLength {
		return common.ErrUsernameTooShort
	}
	return nil
}
