// Package prompt holds the fixed system instruction sent with every diagnosis.
package prompt

import (
	_ "embed"
	"strings"
)

//go:embed rubric.txt
var Rubric string

// UserTurn formats the user text for the conversation's second turn.
func UserTurn(message string) string {
	return "Message: " + message
}

// Title returns the rubric's name, used in startup logs.
func Title() string {
	line, _, _ := strings.Cut(strings.TrimSpace(Rubric), "\n")
	if name, _, ok := strings.Cut(line, " is a "); ok {
		return strings.TrimPrefix(name, "The ")
	}
	return line
}
