package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"kindra-backend/domain/config"
	pkgerrors "kindra-backend/pkg/errors"
)

// MomentContent is the user-entered payload of a moment: the emoji, the
// ordered tag list and the free-text note.
type MomentContent struct {
	emoji string
	tags  []string
	note  string
}

// NewMomentContent creates content with validation using default configuration
func NewMomentContent(emoji string, tags []string, note string) (MomentContent, error) {
	return NewMomentContentWithConfig(emoji, tags, note, config.DefaultDomainConfig())
}

// NewMomentContentWithConfig creates content with validation and configuration.
// Tags keep their order and exact spelling; blank and duplicate tags are dropped.
func NewMomentContentWithConfig(emoji string, tags []string, note string, cfg *config.DomainConfig) (MomentContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	emoji = strings.TrimSpace(emoji)
	note = strings.TrimSpace(note)

	if emoji == "" {
		return MomentContent{}, pkgerrors.NewValidationError("emoji cannot be empty")
	}
	if utf8.RuneCountInString(emoji) > cfg.MaxEmojiLength {
		return MomentContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("emoji exceeds maximum length of %d characters", cfg.MaxEmojiLength))
	}
	if utf8.RuneCountInString(note) > cfg.MaxContentLength {
		return MomentContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("content exceeds maximum length of %d characters", cfg.MaxContentLength))
	}

	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		if utf8.RuneCountInString(tag) > cfg.MaxTagLength {
			return MomentContent{}, pkgerrors.NewValidationError(
				fmt.Sprintf("tag %q exceeds maximum length of %d characters", tag, cfg.MaxTagLength))
		}
		seen[tag] = struct{}{}
		cleaned = append(cleaned, tag)
	}
	if len(cleaned) > cfg.MaxTagsPerMoment {
		return MomentContent{}, pkgerrors.NewValidationError(
			fmt.Sprintf("a moment may carry at most %d tags", cfg.MaxTagsPerMoment))
	}

	return MomentContent{emoji: emoji, tags: cleaned, note: note}, nil
}

// Emoji returns the moment emoji
func (c MomentContent) Emoji() string {
	return c.emoji
}

// Tags returns a copy of the tag list
func (c MomentContent) Tags() []string {
	out := make([]string, len(c.tags))
	copy(out, c.tags)
	return out
}

// Note returns the free-text note
func (c MomentContent) Note() string {
	return c.note
}

// HasTag reports exact membership of tag
func (c MomentContent) HasTag(tag string) bool {
	for _, t := range c.tags {
		if t == tag {
			return true
		}
	}
	return false
}
