package highlight

// Colored pairs a keyword with the colour used to mark it.
type Colored struct {
	Keyword string
	Color   string
}

// Palette assigns colours by keyword position.
type Palette struct {
	Colors   []string
	Fallback string
}

var (
	// SearchPalette colours the background of search keywords.
	SearchPalette = Palette{
		Colors:   []string{"#FFA500", "#FFFF00", "#00FF00", "#FF69B4"},
		Fallback: "#FFA500",
	}
	// RecommendPalette colours the text of recommended keywords.
	RecommendPalette = Palette{
		Colors:   []string{"#FF0000", "#0000FF"},
		Fallback: "#FF0000",
	}
)

// Color returns the colour for position i, or the fallback past the end.
func (p Palette) Color(i int) string {
	if i >= 0 && i < len(p.Colors) {
		return p.Colors[i]
	}
	return p.Fallback
}

// Assign colours keywords by their position in the list.
func (p Palette) Assign(keywords []string) []Colored {
	out := make([]Colored, 0, len(keywords))
	for i, kw := range keywords {
		out = append(out, Colored{Keyword: kw, Color: p.Color(i)})
	}
	return out
}
