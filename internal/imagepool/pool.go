// Package imagepool is the fixed set of images an image-sequence credential
// is drawn from, plus the reference image for click points.
package imagepool

// Image is one tile of the selection grid.
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// BackgroundImage is the reference image clicked on by click-point users.
const BackgroundImage = "https://images.pexels.com/photos/1271619/pexels-photo-1271619.jpeg?auto=compress&cs=tinysrgb&w=1200"

const photoURL = "https://images.pexels.com/photos/%s/pexels-photo-%s.jpeg?auto=compress&cs=tinysrgb&w=400"

var images = []Image{
	newImage(1, "1181690"),
	newImage(2, "1181686"),
	newImage(3, "1181519"),
	newImage(4, "1181424"),
	newImage(5, "1181676"),
	newImage(6, "1181391"),
	newImage(7, "1222271"),
	newImage(8, "1239291"),
	newImage(9, "1755385"),
	newImage(10, "91227"),
	newImage(11, "1681010"),
	newImage(12, "1130626"),
}

var byID = func() map[string]Image {
	m := make(map[string]Image, len(images))
	for _, img := range images {
		m[img.ID] = img
	}
	return m
}()

// Pool is a read-only view of the image pool.
type Pool struct{}

// Default returns the built-in pool of 12 images.
func Default() Pool {
	return Pool{}
}

// Images returns the pool in its canonical order. The slice is a copy.
func (Pool) Images() []Image {
	out := make([]Image, len(images))
	copy(out, images)
	return out
}

// Contains reports whether id names an image in the pool.
func (Pool) Contains(id string) bool {
	_, ok := byID[id]
	return ok
}

// Lookup returns the image named id.
func (Pool) Lookup(id string) (Image, bool) {
	img, ok := byID[id]
	return img, ok
}

// Size is the number of images in the pool.
func (Pool) Size() int {
	return len(images)
}
