package attempt

import (
	"slices"

	"github.com/dmitrijs2005/graphauth/internal/credential"
)

// Collector buffers a partial attempt until it reaches the required size.
type Collector interface {
	Len() int
	Complete() bool
	Reset()
	Credential() credential.Credential
}

// ClickCollector gathers click points in order. Clicks beyond
// credential.RequiredPoints are ignored.
type ClickCollector struct {
	points credential.ClickSequence
}

// Add appends p unless the collector is already complete. It reports
// whether the point was taken.
func (c *ClickCollector) Add(p credential.ClickPoint) bool {
	if c.Complete() {
		return false
	}
	c.points = append(c.points, p)
	return true
}

func (c *ClickCollector) Len() int       { return len(c.points) }
func (c *ClickCollector) Complete() bool { return len(c.points) >= credential.RequiredPoints }
func (c *ClickCollector) Reset()         { c.points = nil }

// Credential returns a copy of the collected points as a credential.
func (c *ClickCollector) Credential() credential.Credential {
	return credential.ClickCredential{Points: slices.Clone(c.points)}
}

// ImageCollector gathers an ordered image selection. Choosing an image that
// is already selected removes it; new images are ignored once
// credential.RequiredImages are held.
type ImageCollector struct {
	ids credential.ImageSelection
}

// Toggle selects or deselects id and reports whether it is selected after
// the call.
func (c *ImageCollector) Toggle(id string) bool {
	if i := slices.Index(c.ids, id); i >= 0 {
		c.ids = slices.Delete(c.ids, i, i+1)
		return false
	}
	if c.Complete() {
		return false
	}
	c.ids = append(c.ids, id)
	return true
}

// Position is the 1-based selection order of id, or 0 when not selected.
func (c *ImageCollector) Position(id string) int {
	return slices.Index(c.ids, id) + 1
}

func (c *ImageCollector) Len() int       { return len(c.ids) }
func (c *ImageCollector) Complete() bool { return len(c.ids) >= credential.RequiredImages }
func (c *ImageCollector) Reset()         { c.ids = nil }

// Credential returns a copy of the selection as a credential.
func (c *ImageCollector) Credential() credential.Credential {
	return credential.SequenceCredential{Images: slices.Clone(c.ids)}
}

// NewCollector returns an empty collector for method.
func NewCollector(method credential.Method) Collector {
	if method == credential.MethodImageSequence {
		return &ImageCollector{}
	}
	return &ClickCollector{}
}
