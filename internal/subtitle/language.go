package subtitle

import (
	"github.com/abadojack/whatlanggo"
)

// DetectLanguage returns the ISO 639-1 code most lines are written in, or
// an empty string when nothing could be detected.
func DetectLanguage(lines []string) string {
	counts := make(map[string]int)
	var order []string

	for _, line := range lines {
		if len([]rune(line)) < 3 {
			continue
		}
		lang := whatlanggo.DetectLang(line).Iso6391()
		if lang == "" {
			continue
		}
		if _, ok := counts[lang]; !ok {
			order = append(order, lang)
		}
		counts[lang]++
	}

	var top string
	var topCount int
	for _, lang := range order {
		if counts[lang] > topCount {
			top = lang
			topCount = counts[lang]
		}
	}
	return top
}
