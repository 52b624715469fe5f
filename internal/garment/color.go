package garment

import (
	"fmt"
	"image"
	"regexp"
	"strings"

	"golang.org/x/image/draw"
)

// DefaultColor is the fill used when nothing else resolved a color.
const DefaultColor = "#FFB6C1"

// Six-digit codes are tried first so "#123456" is never cut to "#123". No
// trailing boundary: "#FF0000red" and "#1234567" still yield their first
// six digits.
var hexInText = regexp.MustCompile(`#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`)

var hexExact = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})$`)

// colorFromText returns an explicit hex code or a named color.
func colorFromText(text string) (string, bool) {
	if m := hexInText.FindString(text); m != "" {
		return strings.ToUpper(m), true
	}
	return colorTerms.lookup(text)
}

// dominantColor downsamples img to a grid×grid raster and returns the most
// frequent exact RGB value. Ties go to the color seen first in row-major
// order.
func dominantColor(img image.Image, grid int) (string, bool) {
	b := img.Bounds()
	if b.Empty() {
		return "", false
	}
	if grid <= 0 {
		grid = defaultColorGrid
	}
	dst := image.NewNRGBA(image.Rect(0, 0, grid, grid))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	counts := make(map[uint32]int, grid*grid)
	var seen []uint32
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		key := uint32(dst.Pix[i])<<16 | uint32(dst.Pix[i+1])<<8 | uint32(dst.Pix[i+2])
		if counts[key] == 0 {
			seen = append(seen, key)
		}
		counts[key]++
	}
	if len(seen) == 0 {
		return "", false
	}
	best := seen[0]
	for _, key := range seen[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}
	return fmt.Sprintf("#%02X%02X%02X", best>>16&0xFF, best>>8&0xFF, best&0xFF), true
}
