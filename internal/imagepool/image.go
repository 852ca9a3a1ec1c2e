package imagepool

import "fmt"

func newImage(n int, photo string) Image {
	return Image{
		ID:  fmt.Sprintf("img-%d", n),
		URL: fmt.Sprintf(photoURL, photo, photo),
		Alt: fmt.Sprintf("Portrait %d", n),
	}
}
