package notegrab_test

import (
	"testing"

	"github.com/fwojciec/notegrab"
	"github.com/stretchr/testify/assert"
)

func TestClassifyLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want notegrab.LinkKind
	}{
		{"https://xhslink.com/a/AbCdEf", notegrab.LinkShort},
		{"https://www.xiaohongshu.com/discovery/item/6911c27f?source=webshare&xsec_token=t", notegrab.LinkShare},
		{"https://www.xiaohongshu.com/explore/6911c27f?xsec_token=t&xsec_source=pc_user", notegrab.LinkExploreUser},
		{"https://www.xiaohongshu.com/explore/6911c27f?xsec_token=t", notegrab.LinkExplore},
		{"https://example.com/anything", notegrab.LinkShort},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, notegrab.ClassifyLink(tt.url))
		})
	}
}

func TestLinkKind_UsesDesktopProfile(t *testing.T) {
	t.Parallel()

	assert.True(t, notegrab.LinkShare.UsesDesktopProfile())
	assert.False(t, notegrab.LinkExplore.UsesDesktopProfile())
	assert.False(t, notegrab.LinkExploreUser.UsesDesktopProfile())
	assert.False(t, notegrab.LinkShort.UsesDesktopProfile())
}

func TestIsShortLink(t *testing.T) {
	t.Parallel()

	assert.True(t, notegrab.IsShortLink("http://xhslink.com/o/1"))
	assert.False(t, notegrab.IsShortLink("https://www.xiaohongshu.com/explore/1"))
}

func TestNormalizeInputURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://xhslink.com/a/1", notegrab.NormalizeInputURL("xhslink.com/a/1"))
	assert.Equal(t, "https://xhslink.com/a/1", notegrab.NormalizeInputURL("  xhslink.com/a/1\n"))
	assert.Equal(t, "http://xhslink.com/a/1", notegrab.NormalizeInputURL("http://xhslink.com/a/1"))
	assert.Equal(t, "https://a/b", notegrab.NormalizeInputURL("https://a/b"))
}

func TestCleanShareURL(t *testing.T) {
	t.Parallel()

	t.Run("drops tracking parameters from share links", func(t *testing.T) {
		t.Parallel()

		got := notegrab.CleanShareURL("https://www.xiaohongshu.com/discovery/item/abc?source=webshare&xhsshare=pc_web&xsec_token=T1&xsec_source=pc_share")

		assert.Equal(t, "https://www.xiaohongshu.com/discovery/item/abc?xsec_source=pc_share&xsec_token=T1", got)
	})

	t.Run("keeps the first value of repeated parameters", func(t *testing.T) {
		t.Parallel()

		got := notegrab.CleanShareURL("https://www.xiaohongshu.com/discovery/item/abc?a=1&a=2")

		assert.Equal(t, "https://www.xiaohongshu.com/discovery/item/abc?a=1", got)
	})

	t.Run("leaves other links unchanged", func(t *testing.T) {
		t.Parallel()

		in := "https://www.xiaohongshu.com/explore/abc?source=webshare"

		assert.Equal(t, in, notegrab.CleanShareURL(in))
	})
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	desktop := notegrab.DesktopProfile()
	mobile := notegrab.MobileProfile()

	assert.Equal(t, "desktop", desktop.Name)
	assert.Equal(t, notegrab.DesktopUserAgent, desktop.UserAgent())
	assert.Equal(t, "?0", desktop.Headers["sec-ch-ua-mobile"])
	assert.NotContains(t, desktop.Headers, "Accept-Encoding")
	assert.Equal(t, "mobile", mobile.Name)
	assert.Equal(t, notegrab.MobileUserAgent, mobile.UserAgent())
	assert.NotContains(t, mobile.Headers, "sec-ch-ua")
}

func TestNoteIDFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://www.xiaohongshu.com/explore/6911c27f0000000003018875?xsec_token=t", "6911c27f0000000003018875"},
		{"https://www.xiaohongshu.com/discovery/item/6911c27f0000000003018875", "6911c27f0000000003018875"},
		{"https://www.xiaohongshu.com/user/profile/5f0a", ""},
		{"https://xhslink.com/a/AbC", ""},
		{"://bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, notegrab.NoteIDFromURL(tt.url))
		})
	}
}
