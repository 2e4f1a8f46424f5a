package application

// User-facing error messages.
//
// Technical errors from the loader and the materializer are mapped to a short
// message, a suggested action and a code the user can quote:
//
//	FILE001 - File not found
//	FILE002 - Permission denied reading or writing
//	FILE003 - The file could not be read as CSV
//	OUT001  - Output directory name already taken
//	OUT002  - Output could not be written
//	CFG001  - Unknown validation policy
//	CFG002  - Invalid validation policy
//	ERR000  - Anything else

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/JonMunkholm/movies/internal/materialize"
	"github.com/JonMunkholm/movies/internal/movie"
)

type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorMatcher struct {
	match func(error) bool
	msg   UserMessage
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

func asType[T error]() func(error) bool {
	return func(err error) bool {
		var t T
		return errors.As(err, &t)
	}
}

func contains(pattern string) func(error) bool {
	return func(err error) bool { return strings.Contains(strings.ToLower(err.Error()), pattern) }
}

// Order matters: the first match wins.
var errorMatchers = []errorMatcher{
	{
		match: is(materialize.ErrExists),
		msg: UserMessage{
			Message: "An output directory with the chosen name already exists",
			Action:  "Please try again",
			Code:    "OUT001",
		},
	},
	{
		match: is(os.ErrNotExist),
		msg: UserMessage{
			Message: "File not found",
			Action:  "Check the file name and the working directory",
			Code:    "FILE001",
		},
	},
	{
		match: is(os.ErrPermission),
		msg: UserMessage{
			Message: "Permission denied",
			Action:  "Check the permissions of the file and its directory",
			Code:    "FILE002",
		},
	},
	{
		match: asType[*movie.SourceError](),
		msg: UserMessage{
			Message: "The movie file could not be read",
			Action:  "Ensure the file is a readable, comma-separated CSV",
			Code:    "FILE003",
		},
	},
	{
		match: asType[*materialize.Error](),
		msg: UserMessage{
			Message: "The output files could not be written",
			Action:  "Check free space and permissions of the output directory",
			Code:    "OUT002",
		},
	},
	{
		match: is(movie.ErrUnknownPolicy),
		msg: UserMessage{
			Message: "Unknown validation policy",
			Action:  "Run `movies policies` to list the available policies",
			Code:    "CFG001",
		},
	},
	{
		match: contains("policy"),
		msg: UserMessage{
			Message: "The validation policy is invalid",
			Action:  "Fix the policy file and try again",
			Code:    "CFG002",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}
	for _, m := range errorMatchers {
		if m.match(err) {
			return m.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
