package pdf

import "strings"

// Font identifies one of the standard 14 fonts the sheets use.
type Font int

const (
	Helvetica Font = iota
	HelveticaBold
	ZapfDingbats
)

// Resource returns the page resource name the font registers under.
func (f Font) Resource() string {
	return "/F" + string(rune('1'+int(f)))
}

// BaseFont returns the PDF base font name.
func (f Font) BaseFont() string {
	switch f {
	case HelveticaBold:
		return "Helvetica-Bold"
	case ZapfDingbats:
		return "ZapfDingbats"
	default:
		return "Helvetica"
	}
}

// Checkmark is the ZapfDingbats glyph used to tick correct options.
const Checkmark = "4"

// Glyph widths in 1/1000 em for ASCII 0x20..0x7E, from the Adobe AFM
// files for the standard fonts.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333,
	278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278,
	584, 584, 584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, 722, 278,
	500, 667, 556, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944,
	667, 667, 611, 278, 278, 278, 469, 556, 333, 556, 556, 500, 556, 556,
	278, 556, 556, 222, 222, 500, 222, 833, 556, 556, 556, 556, 333, 500,
	278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
}

var helveticaBoldWidths = [95]int{
	278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333,
	278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 333, 333,
	584, 584, 584, 611, 975, 722, 722, 722, 722, 667, 611, 778, 722, 278,
	556, 722, 611, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944,
	667, 667, 611, 333, 278, 333, 584, 556, 333, 556, 611, 556, 611, 556,
	333, 611, 611, 278, 278, 556, 278, 889, 611, 611, 611, 611, 389, 556,
	333, 611, 556, 778, 556, 556, 500, 389, 280, 389, 584,
}

// Accented-range widths the localized strings need; everything else
// outside ASCII falls back to a lowercase-letter width.
var helveticaAccents = map[rune]int{
	'á': 556, 'é': 556, 'í': 278, 'ó': 556, 'ú': 556, 'ñ': 556, 'ü': 556,
	'Á': 667, 'É': 667, 'Í': 278, 'Ó': 778, 'Ú': 722, 'Ñ': 722, 'Ü': 722,
	'¿': 611, '¡': 333, '°': 400,
}

var helveticaBoldAccents = map[rune]int{
	'á': 556, 'é': 556, 'í': 278, 'ó': 611, 'ú': 611, 'ñ': 611, 'ü': 611,
	'Á': 722, 'É': 667, 'Í': 278, 'Ó': 778, 'Ú': 722, 'Ñ': 722, 'Ü': 722,
	'¿': 611, '¡': 333, '°': 400,
}

const defaultGlyphWidth = 556

func glyphWidth(r rune, font Font) int {
	if r >= 0x20 && r <= 0x7E {
		if font == HelveticaBold {
			return helveticaBoldWidths[r-0x20]
		}
		return helveticaWidths[r-0x20]
	}
	accents := helveticaAccents
	if font == HelveticaBold {
		accents = helveticaBoldAccents
	}
	if w, ok := accents[r]; ok {
		return w
	}
	return defaultGlyphWidth
}

// TextWidth measures text in points at the given font size.
func TextWidth(text string, font Font, size float64) float64 {
	var total int
	for _, r := range text {
		total += glyphWidth(r, font)
	}
	return float64(total) * size / 1000
}

// WrapText greedily breaks text into lines no wider than maxWidth.
// Words wider than the limit occupy a line of their own rather than
// being split mid-word.
func WrapText(text string, font Font, size, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	spaceWidth := TextWidth(" ", font, size)
	var lines []string
	current := words[0]
	currentWidth := TextWidth(words[0], font, size)

	for _, word := range words[1:] {
		wordWidth := TextWidth(word, font, size)
		if currentWidth+spaceWidth+wordWidth <= maxWidth {
			current += " " + word
			currentWidth += spaceWidth + wordWidth
		} else {
			lines = append(lines, current)
			current = word
			currentWidth = wordWidth
		}
	}
	lines = append(lines, current)
	return lines
}
