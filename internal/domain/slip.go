package domain

import (
	"encoding/base64"
	"regexp"
	"strings"
)

var dataURIPrefix = regexp.MustCompile(`^data:(image/\w+);base64,`)

// DecodeSlipImage validates and decodes a base64 proof-of-payment image.
// An optional data URI prefix supplies the content type; without one the
// payload is assumed to be a PNG.
func DecodeSlipImage(payload string) (contentType string, data []byte, err error) {
	if payload == "" {
		return "", nil, ErrInvalidSlipImage
	}
	contentType = "image/png"
	if m := dataURIPrefix.FindStringSubmatch(payload); m != nil {
		contentType = m[1]
		payload = strings.TrimPrefix(payload, m[0])
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return "", nil, ErrInvalidSlipImage
	}
	return contentType, data, nil
}
