package entities

import (
	"encoding/json"
	"strings"
)

// ImageKind classifies where an image reference points.
type ImageKind int

const (
	ImageNone ImageKind = iota
	ImageAbsolute
	ImageRootRelative
	ImageStoreObject
)

func (k ImageKind) String() string {
	switch k {
	case ImageAbsolute:
		return "absolute"
	case ImageRootRelative:
		return "root_relative"
	case ImageStoreObject:
		return "store_object"
	default:
		return "none"
	}
}

// Sentinels returned by image resolution instead of a URL.
const (
	ImagePlaceholder = "placeholder"
	ImageNotFound    = "not-found"
	ImageError       = "error"
	ImageNoStorage   = "no-storage"
)

// IsImageSentinel reports whether s is one of the resolution sentinels.
func IsImageSentinel(s string) bool {
	switch s {
	case ImagePlaceholder, ImageNotFound, ImageError, ImageNoStorage:
		return true
	}
	return false
}

// ImageRef is a parsed image reference. It is decoded once when a record is
// read and serializes back to the raw string.
type ImageRef struct {
	Kind  ImageKind
	Value string
}

// ParseImageRef classifies a raw stored reference.
func ParseImageRef(raw string) ImageRef {
	v := strings.TrimSpace(raw)
	switch {
	case v == "":
		return ImageRef{Kind: ImageNone}
	case strings.HasPrefix(v, "http://"), strings.HasPrefix(v, "https://"):
		return ImageRef{Kind: ImageAbsolute, Value: v}
	case strings.HasPrefix(v, "/"):
		return ImageRef{Kind: ImageRootRelative, Value: v}
	default:
		return ImageRef{Kind: ImageStoreObject, Value: v}
	}
}

// StoreObjectRef builds a reference to an object store path.
func StoreObjectRef(path string) ImageRef {
	if strings.TrimSpace(path) == "" {
		return ImageRef{Kind: ImageNone}
	}
	return ImageRef{Kind: ImageStoreObject, Value: path}
}

func (r ImageRef) IsZero() bool {
	return r.Kind == ImageNone
}

// String returns the raw stored form.
func (r ImageRef) String() string {
	if r.Kind == ImageNone {
		return ""
	}
	return r.Value
}

func (r ImageRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*r = ImageRef{}
		return nil
	}
	*r = ParseImageRef(*raw)
	return nil
}
