package domain

import "errors"

// ErrSolutionNotFound is returned when no solution in a library matches a selection.
var ErrSolutionNotFound = errors.New("solution not found")

// ErrInvalidChoice is returned when a value is not one of the offered options.
var ErrInvalidChoice = errors.New("invalid choice")

// ErrCannotProceed is returned when the wizard step has no value yet.
var ErrCannotProceed = errors.New("cannot proceed: step is incomplete")

// ErrSkipNotAllowed is returned when skipping a step that is not optional.
var ErrSkipNotAllowed = errors.New("skip not allowed on this step")

// ErrInvalidSelection is returned when a paper selection is malformed.
var ErrInvalidSelection = errors.New("invalid paper selection")

// ErrWrongState is returned when an operation is not available on the current screen.
var ErrWrongState = errors.New("operation not allowed in current state")

// ErrEmptyMessage is returned when sending a message with no text and no attachments.
var ErrEmptyMessage = errors.New("empty message")

// ErrAttachmentNotFound is returned when an attachment ID cannot be found in the store.
var ErrAttachmentNotFound = errors.New("attachment not found")
