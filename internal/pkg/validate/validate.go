// Package validate holds the pure payload predicates used by the route
// layer. Each check returns pass/fail plus a human-readable reason; callers
// translate failure into a 400 and stop.
package validate

import (
	"net/mail"
	"strings"
)

type Result struct {
	Valid  bool
	Reason string
}

func ok() Result {
	return Result{Valid: true}
}

func fail(reason string) Result {
	return Result{Valid: false, Reason: reason}
}

// Name requires a non-empty string with trimmed length of at least 3.
func Name(name string) Result {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fail("name is required")
	}
	if len(trimmed) < 3 {
		return fail("name must be at least 3 characters")
	}
	return ok()
}

// Email requires a standard address per RFC 5322 grammar.
func Email(email string) Result {
	if strings.TrimSpace(email) == "" {
		return fail("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fail("email format is invalid")
	}
	return ok()
}

// NonBlank requires a string with non-whitespace content.
func NonBlank(value, field string) Result {
	if strings.TrimSpace(value) == "" {
		return fail(field + " is required")
	}
	return ok()
}

// JSONObject requires a decoded JSON value to be a non-null object. Used for
// CV documents.
func JSONObject(value any) Result {
	if value == nil {
		return fail("jsonCV must be a valid JSON object")
	}
	if _, isObject := value.(map[string]any); !isObject {
		return fail("jsonCV must be a valid JSON object")
	}
	return ok()
}
