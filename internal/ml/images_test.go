package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitImageURLs(t *testing.T) {
	tests := []struct {
		name     string
		images   string
		expected []string
	}{
		{
			name:     "empty string",
			images:   "",
			expected: nil,
		},
		{
			name:     "single url",
			images:   "https://img.example.com/a.jpg",
			expected: []string{"https://img.example.com/a.jpg"},
		},
		{
			name:   "plain comma-joined list",
			images: "https://img.example.com/a.jpg, https://img.example.com/b.jpg",
			expected: []string{
				"https://img.example.com/a.jpg",
				"https://img.example.com/b.jpg",
			},
		},
		{
			name:   "url containing a comma survives",
			images: "https://img.example.com/a,large.jpg, https://img.example.com/b.jpg",
			expected: []string{
				"https://img.example.com/a,large.jpg",
				"https://img.example.com/b.jpg",
			},
		},
		{
			name:   "quoted urls are unwrapped",
			images: `"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"`,
			expected: []string{
				"https://img.example.com/a.jpg",
				"https://img.example.com/b.jpg",
			},
		},
		{
			name:   "mixed schemes",
			images: "http://img.example.com/a.jpg,https://img.example.com/b.jpg",
			expected: []string{
				"http://img.example.com/a.jpg",
				"https://img.example.com/b.jpg",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitImageURLs(tt.images))
		})
	}
}

func TestFirstImageURL(t *testing.T) {
	url := FirstImageURL("https://img.example.com/a,b.jpg, https://img.example.com/c.jpg")
	assert.NotNil(t, url)
	assert.Equal(t, "https://img.example.com/a,b.jpg", *url)

	assert.Nil(t, FirstImageURL(""))
	assert.Nil(t, FirstImageURL("character(0)"))
}

func TestRecipeFoodID(t *testing.T) {
	assert.Equal(t, "recipe_12345", RecipeFoodID("12345"))

	id, ok := ParseRecipeFoodID("recipe_12345")
	assert.True(t, ok)
	assert.Equal(t, "12345", id)

	_, ok = ParseRecipeFoodID("food-1")
	assert.False(t, ok)

	_, ok = ParseRecipeFoodID("recipe_")
	assert.False(t, ok)
}
