package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/graphauth/internal/credential"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

var errEmptyInput = errors.New("empty input")

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSecret prints prompt to w and reads one line from the terminal without
// echo, so a graphical password typed as text never shows on screen.
func GetSecret(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// ParseClickPoint reads "x,y" (or "x y") as a point on the reference image.
// Coordinates are percentages of the displayed image.
func ParseClickPoint(s string) (credential.ClickPoint, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	if len(fields) == 0 {
		return credential.ClickPoint{}, errEmptyInput
	}
	if len(fields) != 2 {
		return credential.ClickPoint{}, fmt.Errorf("expected x,y but got %q", s)
	}

	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return credential.ClickPoint{}, fmt.Errorf("bad x coordinate %q", fields[0])
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return credential.ClickPoint{}, fmt.Errorf("bad y coordinate %q", fields[1])
	}
	if x < 0 || x > credential.MaxCoordinate || y < 0 || y > credential.MaxCoordinate {
		return credential.ClickPoint{}, fmt.Errorf("coordinates must be between 0 and %g", credential.MaxCoordinate)
	}

	return credential.ClickPoint{X: x, Y: y}, nil
}

// ParseTileNumbers reads a list of 1-based grid positions separated by
// spaces or commas. Every number must lie in [1, n].
func ParseTileNumbers(s string, n int) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, errEmptyInput
	}

	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 1 || v > n {
			return nil, fmt.Errorf("%q is not a tile between 1 and %d", f, n)
		}
		out = append(out, v)
	}
	return out, nil
}
