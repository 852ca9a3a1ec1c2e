package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/graphauth/internal/attempt"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/dmitrijs2005/graphauth/internal/imagepool"
)

// errCancelled is returned when the user types "cancel" during entry.
var errCancelled = errors.New("cancelled")

const cancelWord = "cancel"

// chooseMethod asks which kind of graphical password to create.
func (a *App) chooseMethod() (credential.Method, error) {
	for {
		answer, err := GetSimpleText(a.reader, "Choose authentication method: 1) click points  2) image sequence", a.out)
		if err != nil {
			return "", err
		}

		switch strings.ToLower(answer) {
		case "1", "click", "clicks":
			return credential.MethodClickPoints, nil
		case "2", "image", "images", "sequence":
			return credential.MethodImageSequence, nil
		case cancelWord:
			return "", errCancelled
		}

		if m, err := credential.ParseMethod(answer); err == nil {
			return m, nil
		}
		fmt.Fprintln(a.out, "Please answer 1 or 2")
	}
}

// collectClicks reads credential.RequiredPoints hidden "x,y" pairs on the
// reference image. An unparsable point is asked for again; "undo" drops the
// previous point.
func (a *App) collectClicks(background string) (credential.Credential, error) {
	fmt.Fprintln(a.out, "Reference image:", background)
	fmt.Fprintf(a.out, "Enter %d points as x,y in percent of the image (input is hidden, 'undo' removes the last point)\n",
		credential.RequiredPoints)

	var c attempt.ClickCollector
	var points credential.ClickSequence

	for !c.Complete() {
		raw, err := GetSecret(fmt.Sprintf("Point %d of %d", c.Len()+1, credential.RequiredPoints), a.out)
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(raw) {
		case cancelWord:
			return nil, errCancelled
		case "undo":
			if len(points) > 0 {
				points = points[:len(points)-1]
				c.Reset()
				for _, p := range points {
					c.Add(p)
				}
			}
			continue
		}

		p, err := ParseClickPoint(raw)
		if err != nil {
			if !errors.Is(err, errEmptyInput) {
				fmt.Fprintln(a.out, "Invalid point:", err)
			}
			continue
		}

		if c.Add(p) {
			points = append(points, p)
		}
	}

	return c.Credential(), nil
}

// collectImages shows the numbered grid and reads hidden tile numbers until
// credential.RequiredImages distinct images are selected. Entering a
// selected tile again deselects it.
func (a *App) collectImages(grid []imagepool.Image) (credential.Credential, error) {
	fmt.Fprintln(a.out, "Image grid:")
	for i, img := range grid {
		fmt.Fprintf(a.out, "  %2d) %s  %s\n", i+1, img.Alt, img.URL)
	}
	fmt.Fprintf(a.out, "Select %d images in order by tile number (input is hidden, repeat a number to deselect it)\n",
		credential.RequiredImages)

	var c attempt.ImageCollector

	for !c.Complete() {
		raw, err := GetSecret(fmt.Sprintf("Selected %d of %d", c.Len(), credential.RequiredImages), a.out)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(raw, cancelWord) {
			return nil, errCancelled
		}

		tiles, err := ParseTileNumbers(raw, len(grid))
		if err != nil {
			if !errors.Is(err, errEmptyInput) {
				fmt.Fprintln(a.out, "Invalid selection:", err)
			}
			continue
		}

		for _, n := range tiles {
			c.Toggle(grid[n-1].ID)
		}
	}

	return c.Credential(), nil
}

// collect reads one complete credential for method.
func (a *App) collect(method credential.Method, background string, grid []imagepool.Image) (credential.Credential, error) {
	if method == credential.MethodImageSequence {
		return a.collectImages(grid)
	}
	return a.collectClicks(background)
}
