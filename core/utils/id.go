package utils

import (
	"crypto/rand"
	"encoding/base64"

	"gameday-api/core/constants"

	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, constants.URLHashLength)
	if err != nil {
		return ""
	}
	return id
}

// GenerateURLHash builds the public event identifier: a slug of the title
// for readability plus a nanoid suffix for uniqueness. The hash is stable
// for the lifetime of the event and is the only identifier exposed.
func GenerateURLHash(title string) string {
	suffix := GenerateID()
	s := slug.Make(title)
	if len(s) > 40 {
		s = s[:40]
	}
	if s == "" {
		return suffix
	}
	return s + "-" + suffix
}

// GenerateResponseToken returns the opaque secret handed to anonymous
// joiners.
func GenerateResponseToken() string {
	token, err := gonanoid.Generate(idAlphabet, constants.ResponseTokenLength)
	if err != nil {
		return GenerateRandomString(constants.ResponseTokenLength)
	}
	return token
}

// GenerateRandomString generates a cryptographically secure random string
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate(idAlphabet, length)
		return id
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length]
}
