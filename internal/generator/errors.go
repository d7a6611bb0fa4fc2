// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"errors"
	"fmt"
)

// ErrGeneration matches every *Error with errors.Is.
var ErrGeneration = errors.New("page generation failed")

// Reason classifies a generation failure.
type Reason string

const (
	ReasonPrompt   Reason = "prompt"   // empty or too long
	ReasonFlagged  Reason = "flagged"  // rejected by moderation
	ReasonProvider Reason = "provider" // LLM call failed or timed out
	ReasonSchema   Reason = "schema"   // reply was not a usable page
)

// Error is a generation failure. Message is safe to show to the user; Err
// holds the underlying cause for logs.
type Error struct {
	Reason  Reason
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generate page (%s): %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("generate page (%s): %s", e.Reason, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrGeneration }

func failure(reason Reason, msg string, err error) *Error {
	return &Error{Reason: reason, Message: msg, Err: err}
}
