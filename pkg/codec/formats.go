package codec

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FileFormat represents the supported document encodings
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatYAML               // human-authorable text documents
	FormatMsgpack            // binary snapshots
)

// FormatInfo contains metadata about a document format
type FormatInfo struct {
	Format      FileFormat
	Description string
	// Extensions accepted when saving or decoding an explicit path.
	Extensions []string
	// Patterns are the file name globs a model directory is scanned for.
	Patterns []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatYAML: {
		Format:      FormatYAML,
		Description: "YAML Dictionary Document",
		Extensions:  []string{".yaml", ".yml"},
		Patterns:    []string{"*.dict.yaml", "*.dict.yml"},
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Description: "MessagePack Dictionary Snapshot",
		Extensions:  []string{".msgpack", ".mpk"},
		Patterns:    []string{"*.dict.msgpack"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// DetectFormat picks the format from the file extension
func DetectFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, valid := range info.Extensions {
			if ext == valid {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}

// IsDictionaryFile reports whether a model directory scan should load name.
func IsDictionaryFile(name string) bool {
	base := strings.ToLower(filepath.Base(name))
	for _, info := range supportedFormats {
		for _, pattern := range info.Patterns {
			if ok, _ := filepath.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// ListSupportedFormats returns all supported formats
func ListSupportedFormats() []FormatInfo {
	var formats []FormatInfo
	for _, info := range supportedFormats {
		formats = append(formats, info)
	}
	sort.Slice(formats, func(i, j int) bool {
		return formats[i].Format < formats[j].Format
	})
	return formats
}
