package upstream

import (
	"net/url"
	"strings"
)

// QueryParam is a single key/value pair. Slices of QueryParam keep input
// order and duplicate keys, which url.Values cannot.
type QueryParam struct {
	Key   string
	Value string
}

// ParseQuery splits a raw query string into ordered parameters.
// Malformed escapes are kept verbatim.
func ParseQuery(rawQuery string) []QueryParam {
	if rawQuery == "" {
		return nil
	}

	var params []QueryParam
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		params = append(params, QueryParam{
			Key:   unescapeQuery(key),
			Value: unescapeQuery(value),
		})
	}
	return params
}

func unescapeQuery(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// EncodeQuery is the ordered counterpart of url.Values.Encode.
func EncodeQuery(params []QueryParam) string {
	var sb strings.Builder
	for i, p := range params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// SplitPath turns a wildcard route remainder into path segments, dropping
// empty ones. Segments are unescaped only when path is in escaped form.
func SplitPath(path string, escaped bool) []string {
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if escaped {
			if decoded, err := url.PathUnescape(seg); err == nil {
				seg = decoded
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

// BuildURL returns base[/seg1/seg2...][?query] with every parameter
// appended in order.
func BuildURL(base string, segments []string, params []QueryParam) string {
	target := strings.TrimRight(base, "/")
	for _, seg := range segments {
		target += "/" + url.PathEscape(seg)
	}
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + EncodeQuery(params)
	}
	return target
}
