package payload

import (
	"errors"
	"testing"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func fixed(origin string) OriginResolver {
	return OriginFunc(func() (string, error) { return origin, nil })
}

func TestResolveDirectTypesIgnoreID(t *testing.T) {
	direct := map[entity.CodeType]string{
		entity.TypeVCard:    "BEGIN:VCARD\nVERSION:3.0\nFN:Jane\nEND:VCARD",
		entity.TypeWiFi:     "WIFI:T:WPA;S:home;P:secret;;",
		entity.TypePhone:    "tel:+15550100",
		entity.TypeSMS:      "SMSTO:+15550100:hi",
		entity.TypeEmail:    "mailto:jane@example.com",
		entity.TypeLocation: "geo:52.52,13.40",
		entity.TypeText:     "just text",
	}
	for codeType, content := range direct {
		t.Run(string(codeType), func(t *testing.T) {
			assert.Equal(t, content, Resolve(content, codeType, "abc", fixed("https://x")))
			assert.Equal(t, content, Resolve(content, codeType, "", fixed("https://x")))
		})
	}
}

func TestResolveRedirectWithID(t *testing.T) {
	assert.Equal(t, "https://x/r/abc", Resolve("https://y.com", entity.TypeURL, "abc", fixed("https://x")))
	assert.Equal(t, "https://x/r/abc", Resolve("insta", entity.TypeInstagram, "abc", fixed("https://x///")))
}

func TestResolveRedirectDraft(t *testing.T) {
	got := Resolve("https://y.com", entity.TypeURL, "", fixed("https://x"))
	assert.Equal(t, "https://x/r?u="+EncodeURIComponent("https://y.com"), got)
	assert.Equal(t, "https://x/r?u=https%3A%2F%2Fy.com", got)
}

func TestResolveFallsBackToContent(t *testing.T) {
	failing := OriginFunc(func() (string, error) { return "", errors.New("boom") })
	assert.Equal(t, "https://y.com", Resolve("https://y.com", entity.TypeURL, "abc", failing))

	panicking := OriginFunc(func() (string, error) { panic("boom") })
	assert.Equal(t, "https://y.com", Resolve("https://y.com", entity.TypeURL, "abc", panicking))

	assert.Equal(t, "https://y.com", Resolve("https://y.com", entity.TypeURL, "abc", nil))
	assert.Equal(t, "https://y.com", Resolve("https://y.com", entity.TypeURL, "abc", fixed("/")))
}

func TestOriginChain(t *testing.T) {
	tests := []struct {
		name  string
		chain OriginChain
		want  string
	}{
		{"configured wins", NewOriginChain("https://cfg.example/", "https://cur.example"), "https://cfg.example"},
		{"current when unconfigured", NewOriginChain("", "https://cur.example/"), "https://cur.example"},
		{"fallback last", NewOriginChain("", ""), FallbackOrigin},
		{"blank candidates skipped", NewOriginChain("  ", "/"), FallbackOrigin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.chain.Origin()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := OriginChain{}.Origin()
	assert.Error(t, err)
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "a%20b", EncodeURIComponent("a b"))
	assert.Equal(t, "it's(ok)!*", EncodeURIComponent("it's(ok)!*"))
	assert.Equal(t, "-_.~", EncodeURIComponent("-_.~"))
	assert.Equal(t, "%3Fq%3D1%26r%3D%2B", EncodeURIComponent("?q=1&r=+"))
	assert.Equal(t, "%D0%BF", EncodeURIComponent("п"))
}
