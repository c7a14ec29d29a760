package domain

import "errors"

// Domain errors.
var (
	ErrInvalidEncoding  = errors.New("text is not valid UTF-8")
	ErrTransliteration  = errors.New("transliteration failed")
	ErrFeatureNotFound  = errors.New("feature not found")
	ErrUnknownRegion    = errors.New("unknown region name")
	ErrMalformedFeature = errors.New("malformed feature record")
)

var codes = map[error]string{
	ErrInvalidEncoding:  "invalid_encoding",
	ErrTransliteration:  "transliteration_failed",
	ErrFeatureNotFound:  "feature_not_found",
	ErrUnknownRegion:    "unknown_region",
	ErrMalformedFeature: "malformed_feature",
}

// Code returns the stable code of the first domain error wrapped by err,
// or "" when err does not wrap one.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for target, code := range codes {
		if errors.Is(err, target) {
			return code
		}
	}
	return ""
}
