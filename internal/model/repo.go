package model

import (
	"fmt"
	"time"
)

type Repository struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	Owner         Owner      `json:"owner"`
	Private       bool       `json:"private"`
	Description   string     `json:"description"`
	Language      string     `json:"language"`
	DefaultBranch string     `json:"default_branch"`
	HTMLURL       string     `json:"html_url"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PushedAt      *time.Time `json:"pushed_at"`
}

type Owner struct {
	Login string `json:"login"`
}

// LastActive reports when the repository last saw a push, falling back
// to the metadata update time when the API omits pushed_at.
func (r Repository) LastActive() string {
	at := r.UpdatedAt
	if r.PushedAt != nil && !r.PushedAt.IsZero() {
		at = *r.PushedAt
	}
	if at.IsZero() {
		return ""
	}
	return relativeAge(time.Since(at))
}

func relativeAge(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds ago", secs)
	case secs < 3600:
		return fmt.Sprintf("%dm ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh ago", secs/3600)
	default:
		return fmt.Sprintf("%dd ago", secs/86400)
	}
}
