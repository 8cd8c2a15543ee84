package payload

import (
	"net/url"
	"strings"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

// Resolve returns the literal string embedded in the code.
//
// Direct-content types embed content as-is. Every other type goes through the
// tracking redirect: origin/r/<id> for saved records, origin/r?u=<content>
// for unsaved drafts. Resolve never fails; if the origin cannot be resolved
// the raw content is returned.
func Resolve(content string, codeType entity.CodeType, persistedID string, origins OriginResolver) (result string) {
	if codeType.IsDirect() {
		return content
	}

	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if origins == nil {
		return content
	}
	origin, err := origins.Origin()
	if err != nil {
		return content
	}
	origin = strings.TrimRight(origin, "/")
	if origin == "" {
		return content
	}

	if persistedID != "" {
		return origin + "/r/" + persistedID
	}
	return origin + "/r?u=" + EncodeURIComponent(content)
}

var componentFixer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers' encodeURIComponent does, so
// links built here match the ones produced by the web client.
func EncodeURIComponent(s string) string {
	return componentFixer.Replace(url.QueryEscape(s))
}
