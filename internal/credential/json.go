package credential

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/common"
)

// imageStep is one element of the persisted image sequence.
type imageStep struct {
	ImageID string `json:"imageId"`
	Order   int    `json:"order"`
}

// userRecordJSON is the persisted shape of a UserRecord. Exactly one of
// ClickPoints and ImageSequence is set, as selected by AuthMethod.
type userRecordJSON struct {
	ID            string        `json:"id,omitempty"`
	Username      string        `json:"username"`
	AuthMethod    Method        `json:"authMethod"`
	ClickPoints   ClickSequence `json:"clickPoints,omitempty"`
	ImageSequence []imageStep   `json:"imageSequence,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (u UserRecord) MarshalJSON() ([]byte, error) {
	out := userRecordJSON{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}

	switch c := u.Credential.(type) {
	case ClickCredential:
		out.AuthMethod = MethodClickPoints
		out.ClickPoints = c.Points
	case SequenceCredential:
		out.AuthMethod = MethodImageSequence
		out.ImageSequence = make([]imageStep, len(c.Images))
		for i, id := range c.Images {
			out.ImageSequence[i] = imageStep{ImageID: id, Order: i}
		}
	default:
		return nil, fmt.Errorf("user %q: %w", u.Username, common.ErrInvalidUserData)
	}

	return json.Marshal(out)
}

func (u *UserRecord) UnmarshalJSON(b []byte) error {
	var in userRecordJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}

	switch in.AuthMethod {
	case MethodClickPoints:
		if len(in.ClickPoints) == 0 || len(in.ImageSequence) != 0 {
			return fmt.Errorf("user %q: %w", in.Username, common.ErrInvalidUserData)
		}
		u.Credential = ClickCredential{Points: in.ClickPoints}
	case MethodImageSequence:
		if len(in.ImageSequence) == 0 || len(in.ClickPoints) != 0 {
			return fmt.Errorf("user %q: %w", in.Username, common.ErrInvalidUserData)
		}
		steps := append([]imageStep(nil), in.ImageSequence...)
		sort.SliceStable(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })
		images := make(ImageSelection, len(steps))
		for i, s := range steps {
			images[i] = s.ImageID
		}
		u.Credential = SequenceCredential{Images: images}
	default:
		return fmt.Errorf("user %q: %w", in.Username, common.ErrInvalidUserData)
	}

	u.ID = in.ID
	u.Username = in.Username
	u.CreatedAt = in.CreatedAt
	return nil
}

// MarshalCredential encodes only the credential, for backends that store
// the method in its own column.
func MarshalCredential(c Credential) ([]byte, error) {
	switch v := c.(type) {
	case ClickCredential:
		return json.Marshal(v.Points)
	case SequenceCredential:
		return json.Marshal(v.Images)
	default:
		return nil, common.ErrInvalidUserData
	}
}

// UnmarshalCredential is the inverse of MarshalCredential.
func UnmarshalCredential(method Method, b []byte) (Credential, error) {
	switch method {
	case MethodClickPoints:
		var points ClickSequence
		if err := json.Unmarshal(b, &points); err != nil || len(points) == 0 {
			return nil, common.ErrInvalidUserData
		}
		return ClickCredential{Points: points}, nil
	case MethodImageSequence:
		var images ImageSelection
		if err := json.Unmarshal(b, &images); err != nil || len(images) == 0 {
			return nil, common.ErrInvalidUserData
		}
		return SequenceCredential{Images: images}, nil
	default:
		return nil, common.ErrInvalidUserData
	}
}
