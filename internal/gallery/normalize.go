package gallery

import (
	"encoding/json"
)

// DecodeListing accepts a bare array or an object wrapping the array under
// "files". Anything else yields an empty, non-nil slice.
func DecodeListing(body []byte) []FileDescriptor {
	var items []FileDescriptor
	if err := json.Unmarshal(body, &items); err == nil {
		if items == nil {
			return []FileDescriptor{}
		}
		return items
	}

	var wrapped struct {
		Files []FileDescriptor `json:"files"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Files != nil {
		return wrapped.Files
	}

	return []FileDescriptor{}
}

// ExtractUploadURL finds the stored object's URL in any of the accepted
// upload response shapes: {uri}, {url} or {data:{uri}}.
func ExtractUploadURL(body []byte) (string, bool) {
	var resp struct {
		URI  string `json:"uri"`
		URL  string `json:"url"`
		Data *struct {
			URI string `json:"uri"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", false
	}

	switch {
	case resp.URI != "":
		return resp.URI, true
	case resp.URL != "":
		return resp.URL, true
	case resp.Data != nil && resp.Data.URI != "":
		return resp.Data.URI, true
	}
	return "", false
}
