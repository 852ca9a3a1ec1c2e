package attempt

import (
	"testing"

	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/stretchr/testify/assert"
)

func TestClickCollector(t *testing.T) {
	var c ClickCollector

	for i := 0; i < credential.RequiredPoints; i++ {
		assert.False(t, c.Complete())
		assert.True(t, c.Add(credential.ClickPoint{X: float64(i), Y: float64(i)}))
	}
	assert.True(t, c.Complete())
	assert.False(t, c.Add(credential.ClickPoint{X: 99, Y: 99}), "extra clicks are ignored")
	assert.Equal(t, credential.RequiredPoints, c.Len())

	cred := c.Credential().(credential.ClickCredential)
	assert.Len(t, cred.Points, credential.RequiredPoints)
	assert.Equal(t, 4.0, cred.Points[4].X)

	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.Len(t, cred.Points, credential.RequiredPoints, "credential is a copy")
}

func TestImageCollector_ToggleAndOrder(t *testing.T) {
	var c ImageCollector

	assert.True(t, c.Toggle("img-3"))
	assert.True(t, c.Toggle("img-7"))
	assert.True(t, c.Toggle("img-1"))
	assert.Equal(t, 2, c.Position("img-7"))

	assert.False(t, c.Toggle("img-7"), "second toggle deselects")
	assert.Equal(t, 0, c.Position("img-7"))
	assert.Equal(t, 2, c.Position("img-1"))

	assert.True(t, c.Toggle("img-7"))
	assert.True(t, c.Toggle("img-9"))
	assert.True(t, c.Complete())
	assert.False(t, c.Toggle("img-5"), "full selection ignores new images")

	assert.Equal(t, credential.SequenceCredential{Images: credential.ImageSelection{"img-3", "img-1", "img-7", "img-9"}}, c.Credential())

	assert.False(t, c.Toggle("img-9"), "deselect works even when full")
	assert.Equal(t, 3, c.Len())

	c.Reset()
	assert.Equal(t, 0, c.Len())
}

func TestNewCollector(t *testing.T) {
	assert.IsType(t, &ImageCollector{}, NewCollector(credential.MethodImageSequence))
	assert.IsType(t, &ClickCollector{}, NewCollector(credential.MethodClickPoints))
}
