package emoji

// Standard returns the built-in emoji set.
func Standard() []Emoji {
	return []Emoji{
		{ID: "grinning", Name: "grinning", Unicode: "😀", Category: "faces", Tags: []string{"happy", "smile"}, Aliases: []string{"grinning"}},
		{ID: "smile", Name: "smile", Unicode: "😄", Category: "faces", Tags: []string{"happy", "joy"}, Aliases: []string{"smile", "happy"}},
		{ID: "joy", Name: "joy", Unicode: "😂", Category: "faces", Tags: []string{"laugh", "tears"}, Aliases: []string{"joy", "laugh"}},
		{ID: "heart_eyes", Name: "heart_eyes", Unicode: "😍", Category: "faces", Tags: []string{"love", "heart"}, Aliases: []string{"heart_eyes"}},
		{ID: "wink", Name: "wink", Unicode: "😉", Category: "faces", Tags: []string{"flirt", "wink"}, Aliases: []string{"wink"}},
		{ID: "thinking", Name: "thinking", Unicode: "🤔", Category: "faces", Tags: []string{"think", "hmm"}, Aliases: []string{"thinking", "hmm"}},

		{ID: "thumbsup", Name: "thumbsup", Unicode: "👍", Category: "gestures", Tags: []string{"like", "good"}, Aliases: []string{"thumbsup", "like", "good"}},
		{ID: "thumbsdown", Name: "thumbsdown", Unicode: "👎", Category: "gestures", Tags: []string{"dislike", "bad"}, Aliases: []string{"thumbsdown", "dislike", "bad"}},
		{ID: "clap", Name: "clap", Unicode: "👏", Category: "gestures", Tags: []string{"applause", "good"}, Aliases: []string{"clap", "applause"}},
		{ID: "wave", Name: "wave", Unicode: "👋", Category: "gestures", Tags: []string{"hello", "goodbye"}, Aliases: []string{"wave", "hello"}},

		{ID: "heart", Name: "heart", Unicode: "❤️", Category: "hearts", Tags: []string{"love", "red"}, Aliases: []string{"heart", "love"}},
		{ID: "blue_heart", Name: "blue_heart", Unicode: "💙", Category: "hearts", Tags: []string{"love", "blue"}, Aliases: []string{"blue_heart"}},
		{ID: "green_heart", Name: "green_heart", Unicode: "💚", Category: "hearts", Tags: []string{"love", "green"}, Aliases: []string{"green_heart"}},
		{ID: "yellow_heart", Name: "yellow_heart", Unicode: "💛", Category: "hearts", Tags: []string{"love", "yellow"}, Aliases: []string{"yellow_heart"}},
		{ID: "purple_heart", Name: "purple_heart", Unicode: "💜", Category: "hearts", Tags: []string{"love", "purple"}, Aliases: []string{"purple_heart"}},

		{ID: "fire", Name: "fire", Unicode: "🔥", Category: "objects", Tags: []string{"hot", "flame"}, Aliases: []string{"fire", "flame"}},
		{ID: "rocket", Name: "rocket", Unicode: "🚀", Category: "objects", Tags: []string{"space", "launch"}, Aliases: []string{"rocket", "launch"}},
		{ID: "star", Name: "star", Unicode: "⭐", Category: "objects", Tags: []string{"favorite", "good"}, Aliases: []string{"star", "favorite"}},
		{ID: "trophy", Name: "trophy", Unicode: "🏆", Category: "objects", Tags: []string{"win", "award"}, Aliases: []string{"trophy", "win"}},
		{ID: "computer", Name: "computer", Unicode: "💻", Category: "objects", Tags: []string{"tech", "work"}, Aliases: []string{"computer", "laptop"}},

		{ID: "sun", Name: "sun", Unicode: "☀️", Category: "nature", Tags: []string{"weather", "bright"}, Aliases: []string{"sun", "sunny"}},
		{ID: "moon", Name: "moon", Unicode: "🌙", Category: "nature", Tags: []string{"night", "crescent"}, Aliases: []string{"moon", "night"}},
		{ID: "tree", Name: "tree", Unicode: "🌳", Category: "nature", Tags: []string{"nature", "green"}, Aliases: []string{"tree"}},
		{ID: "flower", Name: "flower", Unicode: "🌸", Category: "nature", Tags: []string{"nature", "pink"}, Aliases: []string{"flower", "blossom"}},
	}
}
