package domain

import "time"

// Action is a recorded user reaction to an article.
type Action string

const (
	ActionThumbsUp   Action = "thumbs_up"
	ActionThumbsDown Action = "thumbs_down"
	ActionSave       Action = "save"
	ActionRead       Action = "read"
	ActionShare      Action = "share"
)

// ValidAction reports whether a is one of the recorded action kinds.
func ValidAction(a Action) bool {
	switch a {
	case ActionThumbsUp, ActionThumbsDown, ActionSave, ActionRead, ActionShare:
		return true
	}
	return false
}

// Interaction is one row of the append-only interaction log. UserID may
// be an account ID or an anonymous device ID; the pipeline does not
// distinguish between the two.
type Interaction struct {
	UserID    string
	ArticleID string
	Action    Action
	CreatedAt time.Time
}
