package markdown

import "strings"

// emojiShorthands maps :name: tokens to their emoji. Unknown tokens pass
// through unchanged.
var emojiShorthands = map[string]string{
	"smile":            "😄",
	"grin":             "😁",
	"laughing":         "😆",
	"wink":             "😉",
	"thinking":         "🤔",
	"sob":              "😭",
	"skull":            "💀",
	"heart":            "❤️",
	"broken_heart":     "💔",
	"star":             "⭐",
	"sparkles":         "✨",
	"fire":             "🔥",
	"rocket":           "🚀",
	"tada":             "🎉",
	"eyes":             "👀",
	"wave":             "👋",
	"thumbsup":         "👍",
	"thumbsdown":       "👎",
	"clap":             "👏",
	"bulb":             "💡",
	"book":             "📖",
	"memo":             "📝",
	"warning":          "⚠️",
	"x":                "❌",
	"white_check_mark": "✅",
	"question":         "❓",
	"exclamation":      "❗",
	"bug":              "🐛",
	"hammer":           "🔨",
	"wrench":           "🔧",
	"gear":             "⚙️",
	"geode":            "💎",
}

// substituteEmoji replaces :name: shorthand tokens in a text run. The
// caller gates this off inside code blocks.
func substituteEmoji(text string) string {
	if !strings.Contains(text, ":") {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for {
		open := strings.IndexByte(text, ':')
		if open < 0 {
			sb.WriteString(text)
			return sb.String()
		}
		rest := text[open+1:]
		length := strings.IndexByte(rest, ':')
		if length < 0 {
			sb.WriteString(text)
			return sb.String()
		}
		if emoji, ok := emojiShorthands[rest[:length]]; ok {
			sb.WriteString(text[:open])
			sb.WriteString(emoji)
			text = rest[length+1:]
		} else {
			// not a shorthand; the closing colon may open the next one
			sb.WriteString(text[:open+1])
			text = rest
		}
	}
}
