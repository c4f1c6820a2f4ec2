package smsotp

const maskRune = '*'

// Mask partially redacts a mobile number for display. order selects which
// end stays visible; visible is the number of characters kept. A visible
// count at or beyond the number's length returns the number unmasked, and
// visible <= 0 masks everything. The result always has the same length as
// the input.
func Mask(number string, visible int, order MaskingOrder) string {
	runes := []rune(number)
	if visible >= len(runes) {
		return number
	}
	if visible < 0 {
		visible = 0
	}

	masked := make([]rune, len(runes))
	for i := range masked {
		masked[i] = maskRune
	}

	switch order {
	case OrderBackward:
		copy(masked[len(runes)-visible:], runes[len(runes)-visible:])
	default:
		copy(masked[:visible], runes[:visible])
	}

	return string(masked)
}
