package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned by Storage.Get when the slot has never been written.
	ErrNotFound = errors.New("slot not found")

	// ErrCorruptSlot means the slot exists but does not hold a well-formed note collection.
	ErrCorruptSlot = errors.New("corrupt storage slot")

	// ErrStorageWrite wraps failures while replacing the slot (quota, permissions, I/O).
	ErrStorageWrite = errors.New("storage write failed")

	ErrReadOnly     = errors.New("storage is in read-only mode")
	ErrEmptyContent = errors.New("note content is empty")
	ErrNoteNotFound = errors.New("note not found")
)
