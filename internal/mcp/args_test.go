package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringArg(t *testing.T) {
	args := map[string]interface{}{"url": "https://example.com", "n": 3.0}
	assert.Equal(t, "https://example.com", StringArg(args, "url"))
	assert.Equal(t, "", StringArg(args, "missing"))
	assert.Equal(t, "", StringArg(args, "n"))
}

func TestBoolArg(t *testing.T) {
	args := map[string]interface{}{"full_page": true, "url": "x"}
	assert.True(t, BoolArg(args, "full_page", false))
	assert.True(t, BoolArg(args, "missing", true))
	assert.False(t, BoolArg(args, "url", false))
}

func TestIntArg(t *testing.T) {
	args := map[string]interface{}{"decoded": 5.0, "native": 7, "text": "9"}
	assert.Equal(t, 5, IntArg(args, "decoded", 1)) // JSON numbers arrive as float64
	assert.Equal(t, 7, IntArg(args, "native", 1))
	assert.Equal(t, 1, IntArg(args, "text", 1))
	assert.Equal(t, 1, IntArg(args, "missing", 1))
}

func TestStringSliceArg(t *testing.T) {
	args := map[string]interface{}{
		"categories": []interface{}{"performance", 42, "seo"},
		"url":        "x",
	}
	assert.Equal(t, []string{"performance", "seo"}, StringSliceArg(args, "categories"))
	assert.Nil(t, StringSliceArg(args, "missing"))
	assert.Nil(t, StringSliceArg(args, "url"))
}
