package model

import (
	"errors"
	"strings"
	"time"
)

type Inspiration struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

func (i Inspiration) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("model: inspiration id is required")
	}
	if strings.TrimSpace(i.Content) == "" {
		return errors.New("model: inspiration content is required")
	}
	if i.CreatedAt.IsZero() {
		return errors.New("model: inspiration created_at is required")
	}
	return nil
}

type CreateInspirationRequest struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (r CreateInspirationRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("model: inspiration content is required")
	}
	return nil
}

// NormalizeTags trims, lowercases and de-duplicates tags, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#")))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
