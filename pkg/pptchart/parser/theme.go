package parser

import (
	"encoding/xml"
	"path"
	"regexp"
	"strings"
)

var themePartRe = regexp.MustCompile(`^theme\d*\.xml$`)

// ThemeColors maps accent slots (accent1..accent10) to "#RRGGBB".
type ThemeColors map[string]string

// Resolve returns the color for a scheme reference, or the literal
// "scheme:<name>" placeholder when the slot is not in the table.
func (tc ThemeColors) Resolve(name string) string {
	if hex, ok := tc[name]; ok {
		return hex
	}
	return "scheme:" + name
}

// LoadThemeColors parses the first theme part of the container. Further theme
// parts are ignored. A container without a theme yields an empty table.
func LoadThemeColors(c *Container) (ThemeColors, error) {
	for _, name := range c.ListEntries("ppt/theme/") {
		if path.Dir(name) != "ppt/theme" || !themePartRe.MatchString(path.Base(name)) {
			continue
		}
		data, err := c.ReadEntry(name)
		if err != nil {
			return ThemeColors{}, err
		}
		return parseThemeColors(data), nil
	}
	return ThemeColors{}, nil
}

func parseThemeColors(data []byte) ThemeColors {
	colors := ThemeColors{}
	decoder := newDecoder(data)

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "clrScheme" {
			continue
		}
		parseColorScheme(decoder, colors)
		break
	}

	return colors
}

// parseColorScheme reads accent slots from an a:clrScheme element.
func parseColorScheme(decoder *xml.Decoder, colors ThemeColors) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if strings.HasPrefix(t.Name.Local, "accent") {
				if hex := parseColorSlot(decoder); hex != "" {
					colors[t.Name.Local] = hex
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseColorSlot returns the RGB value of a color slot element.
func parseColorSlot(decoder *xml.Decoder) string {
	var hex string
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "srgbClr":
				if v := attr(t, "val"); v != "" && hex == "" {
					hex = "#" + v
				}
			case "sysClr":
				if v := attr(t, "lastClr"); v != "" && hex == "" {
					hex = "#" + v
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return hex
}
