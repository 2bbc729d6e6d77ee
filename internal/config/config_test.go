package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadRootDir(t *testing.T) {
	cases := map[string]string{
		"uploads/announcements":        "uploads",
		"uploads/announcements/202608": "uploads",
		"uploads":                      "uploads",
		"media/images":                 "media",
	}
	for path, want := range cases {
		u := UploadConfig{AnnouncementImagePath: path}
		require.Equal(t, want, u.RootDir(), "path %q", path)
	}
}
