package dashboard

// Qualitative colour sequences, hex without the leading '#'.
var (
	PalettePlotly = []string{"636EFA", "EF553B", "00CC96", "AB63FA", "FFA15A", "19D3F3", "FF6692", "B6E880", "FF97FF", "FECB52"}
	PaletteSet1   = []string{"E41A1C", "377EB8", "4DAF4A", "984EA3", "FF7F00", "FFFF33", "A65628", "F781BF", "999999"}
	PaletteSet2   = []string{"66C2A5", "FC8D62", "8DA0CB", "E78AC3", "A6D854", "FFD92F", "E5C494", "B3B3B3"}
	PaletteSet3   = []string{"8DD3C7", "FFFFB3", "BEBADA", "FB8072", "80B1D3", "FDB462", "B3DE69", "FCCDE5", "D9D9D9", "BC80BD", "CCEBC5", "FFED6F"}
	PalettePastel = []string{"66C5CC", "F6CF71", "F89C74", "DCB0F2", "87C55F", "9EB9F3", "FE88B1", "C9DB74", "8BE0A4", "B497E7", "D3B484", "B3B3B3"}

	PaletteHealthCondition = []string{"636EFA", "00CC96", "AB63FA", "FF7F0E"}
	PaletteFitnessLevel    = []string{"EF553B", "00CC96", "636EFA"}
)

// Theme selects chart background and text colours.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Colors for a theme.
type ThemeColors struct {
	Background string
	Plot       string
	Text       string
	Grid       string
}

// Colors returns the hex colours used to draw charts in theme t.
func (t Theme) Colors() ThemeColors {
	if t == ThemeDark {
		return ThemeColors{Background: "111111", Plot: "111111", Text: "F2F5FA", Grid: "283442"}
	}
	return ThemeColors{Background: "FFFFFF", Plot: "E5ECF6", Text: "2A3F5F", Grid: "FFFFFF"}
}

func cycle(palette []string, n int) []string {
	if len(palette) == 0 {
		palette = PalettePlotly
	}
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}
