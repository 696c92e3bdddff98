package tools

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreenshotService struct {
	gotURL      string
	gotFullPage bool
	path        string
	data        []byte
	err         error
}

func (f *fakeScreenshotService) Capture(ctx context.Context, url string, fullPage bool) (string, []byte, error) {
	f.gotURL = url
	f.gotFullPage = fullPage
	return f.path, f.data, f.err
}

func TestTakeScreenshotRequiresURL(t *testing.T) {
	tool := NewTakeScreenshotTool(&fakeScreenshotService{}, nil)
	result, err := tool.Execute(context.Background(), map[string]interface{}{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "url is required")
}

func TestTakeScreenshotSuccess(t *testing.T) {
	img := []byte{0xFF, 0xD8, 0xFF, 0xE0} // JPEG magic
	fake := &fakeScreenshotService{path: "/tmp/screenshots/screenshot-1700000000000.jpg", data: img}
	tool := NewTakeScreenshotTool(fake, nil)

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"url":       "https://example.com",
		"full_page": true,
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "https://example.com", fake.gotURL)
	assert.True(t, fake.gotFullPage)

	require.Len(t, result.Content, 2)
	assert.Contains(t, result.Content[0].Text, fake.path)
	assert.Equal(t, "image", result.Content[1].Type)
	assert.Equal(t, "image/jpeg", result.Content[1].MimeType)

	decoded, decErr := base64.StdEncoding.DecodeString(result.Content[1].Data)
	require.NoError(t, decErr)
	assert.Equal(t, img, decoded)
}

func TestTakeScreenshotDefaultsToViewport(t *testing.T) {
	fake := &fakeScreenshotService{path: "/tmp/s.jpg", data: []byte{1}}
	tool := NewTakeScreenshotTool(fake, nil)

	_, err := tool.Execute(context.Background(), map[string]interface{}{
		"url": "https://example.com",
	})
	require.NoError(t, err)
	assert.False(t, fake.gotFullPage)
}

func TestTakeScreenshotCaptureError(t *testing.T) {
	fake := &fakeScreenshotService{err: errors.New("navigation timed out")}
	tool := NewTakeScreenshotTool(fake, nil)

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"url": "https://example.com",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "screenshot failed")
	assert.Contains(t, result.Content[0].Text, "navigation timed out")
}
