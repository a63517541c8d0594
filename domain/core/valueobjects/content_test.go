package valueobjects

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kindra-backend/domain/config"
)

func TestNewMomentContent(t *testing.T) {
	tests := []struct {
		name     string
		emoji    string
		tags     []string
		note     string
		wantErr  bool
		wantTags []string
	}{
		{
			name:     "valid content",
			emoji:    "😊",
			tags:     []string{"Deep Talk", "Green Flag"},
			note:     "dinner",
			wantTags: []string{"Deep Talk", "Green Flag"},
		},
		{
			name:     "drops blanks and duplicates keeping order",
			emoji:    "🔥",
			tags:     []string{"Support", " ", "Support", "Caring"},
			wantTags: []string{"Support", "Caring"},
		},
		{
			name:    "empty emoji",
			emoji:   "  ",
			wantErr: true,
		},
		{
			name:    "note too long",
			emoji:   "😊",
			note:    strings.Repeat("a", config.DefaultDomainConfig().MaxContentLength+1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewMomentContent(tt.emoji, tt.tags, tt.note)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTags, c.Tags())
			assert.Equal(t, strings.TrimSpace(tt.emoji), c.Emoji())
		})
	}
}

func TestMomentContent_TagLimit(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.MaxTagsPerMoment = 1

	_, err := NewMomentContentWithConfig("😊", []string{"a", "b"}, "", cfg)
	assert.Error(t, err)
}

func TestMomentContent_TagsAreCopied(t *testing.T) {
	c, err := NewMomentContent("😊", []string{"Advice"}, "")
	require.NoError(t, err)

	tags := c.Tags()
	tags[0] = "changed"
	assert.True(t, c.HasTag("Advice"))
	assert.False(t, c.HasTag("changed"))
}
