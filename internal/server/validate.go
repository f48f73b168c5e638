package server

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Inbound payload limits. Anything outside them is rejected before it
// reaches a table.
const (
	maxChatLength   = 200
	maxActionAmount = 1_000_000
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9_\- ]{2,20}$`)

var (
	errInvalidName   = errors.New("name must be 2-20 characters: letters, digits, underscore, hyphen, space")
	errInvalidChat   = errors.New("chat text must be 1-200 characters")
	errInvalidAmount = errors.New("amount must be between 1 and 1000000")
)

func validateName(name string) error {
	if !nameRe.MatchString(name) {
		return errInvalidName
	}
	return nil
}

func validateChat(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > maxChatLength {
		return "", errInvalidChat
	}
	return text, nil
}

func validateAmount(amount int) error {
	if amount < 1 || amount > maxActionAmount {
		return errInvalidAmount
	}
	return nil
}
