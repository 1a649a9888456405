package reddit

import (
	"encoding/json"
	"strings"
)

// Reddit "thing" kinds.
const (
	kindComment = "t1"
	kindPost    = "t3"
)

type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

func (t thing) decode(v any) error {
	return json.Unmarshal(t.Data, v)
}

type listing struct {
	Data struct {
		Children []thing `json:"children"`
	} `json:"data"`
}

// Post is a submission returned by search.
type Post struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Permalink  string  `json:"permalink"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
	Subreddit  string  `json:"subreddit"`
}

// Comment is a top-level reply to a post.
type Comment struct {
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	Score      int     `json:"score"`
	CreatedUTC float64 `json:"created_utc"`
}

// User is a redditor's public profile.
type User struct {
	Name         string  `json:"name"`
	CreatedUTC   float64 `json:"created_utc"`
	CommentKarma int     `json:"comment_karma"`
	LinkKarma    int     `json:"link_karma"`
	Verified     bool    `json:"verified"`
	IsGold       bool    `json:"is_gold"`
	Subreddit    *struct {
		Title             string `json:"title"`
		PublicDescription string `json:"public_description"`
	} `json:"subreddit"`
}

// deleted reports whether an author name denotes a removed account.
func deleted(author string) bool {
	return author == "" || strings.HasPrefix(author, "[deleted]")
}
