package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/shopease-next/internal/constants"

	"github.com/gin-gonic/gin"
)

func TestTFallbackChain(t *testing.T) {
	if got := T(constants.LocaleZhCN, "error.not_found"); got != "资源不存在" {
		t.Fatalf("zh-CN lookup failed, got %q", got)
	}
	// 未知语言回退英文
	if got := T("fr-FR", "error.not_found"); got != "resource not found" {
		t.Fatalf("fallback to en-US failed, got %q", got)
	}
	// 未知 key 回退 key 本身
	if got := T(constants.LocaleEnUS, "error.some_unknown_key"); got != "error.some_unknown_key" {
		t.Fatalf("fallback to key failed, got %q", got)
	}
}

func TestSprintfWithArgs(t *testing.T) {
	got := Sprintf(constants.LocaleEnUS, "error.rate_limited", 30)
	if got != "too many requests, retry after 30 seconds" {
		t.Fatalf("unexpected formatted message: %q", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		query  string
		header string
		want   string
	}{
		{name: "query wins", query: "zh_CN", header: "en-US", want: constants.LocaleZhCN},
		{name: "accept language", header: "zh-CN,zh;q=0.9,en;q=0.8", want: constants.LocaleZhCN},
		{name: "language prefix", header: "en-GB", want: constants.LocaleEnUS},
		{name: "unsupported falls back", header: "fr-FR;q=0.9", want: constants.LocaleEnUS},
		{name: "empty falls back", want: constants.LocaleEnUS},
	}
	for _, item := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		target := "/api/v1/products"
		if item.query != "" {
			target += "?lang=" + item.query
		}
		c.Request = httptest.NewRequest("GET", target, nil)
		if item.header != "" {
			c.Request.Header.Set("Accept-Language", item.header)
		}
		if got := ResolveLocale(c); got != item.want {
			t.Fatalf("%s: want %s got %s", item.name, item.want, got)
		}
	}
}
