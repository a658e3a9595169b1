package gallery

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// FileDescriptor is one stored object as reported by the upstream.
type FileDescriptor struct {
	Name        string   `json:"name"`
	ContentType string   `json:"contentType"`
	Extension   string   `json:"extension"`
	URI         string   `json:"uri"`
	Size        int64    `json:"size"`
	Type        Category `json:"type,omitempty"`

	// Placeholder is a low resolution data URI computed client side.
	Placeholder string `json:"-"`
}

func (f FileDescriptor) IsVideo() bool {
	return IsVideo(f.ContentType)
}

func IsVideo(contentType string) bool {
	return strings.HasPrefix(contentType, "video/")
}

func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// FormatMB renders a byte count the way the gallery cards show it.
func FormatMB(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/1024/1024)
}

func HumanSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

type Category string

const (
	CategoryLogin    Category = "LOGIN"
	CategoryRegister Category = "REGISTER"
	CategoryOTP      Category = "OTP"
	CategoryProfile  Category = "PROFILE"
	CategoryBanner   Category = "BANNER"
	CategoryGeneral  Category = "GENERAL"
)

var Categories = []Category{
	CategoryLogin,
	CategoryRegister,
	CategoryOTP,
	CategoryProfile,
	CategoryBanner,
	CategoryGeneral,
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

type CompressionLevel string

const (
	LevelLow    CompressionLevel = "LOW"
	LevelMedium CompressionLevel = "MEDIUM"
	LevelHigh   CompressionLevel = "HIGH"
)

var CompressionLevels = []CompressionLevel{LevelLow, LevelMedium, LevelHigh}

func ParseCompressionLevel(s string) (CompressionLevel, error) {
	l := CompressionLevel(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range CompressionLevels {
		if l == known {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown compression level %q", s)
}

// UploadOptions travel as query parameters and are interpreted by the upstream only.
type UploadOptions struct {
	Category Category
	Compress bool
	Level    CompressionLevel
}

func (o UploadOptions) Validate() error {
	if o.Category != "" {
		if _, err := ParseCategory(string(o.Category)); err != nil {
			return err
		}
	}
	if o.Compress && o.Level != "" {
		if _, err := ParseCompressionLevel(string(o.Level)); err != nil {
			return err
		}
	}
	return nil
}
