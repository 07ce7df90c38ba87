package moderation

import "github.com/abadojack/whatlanggo"

// DetectLanguage returns the ISO-639-1 code of the content's language,
// or an empty string when detection is too unreliable to store.
func DetectLanguage(content string) string {
	info := whatlanggo.Detect(content)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.Iso6391()
}
