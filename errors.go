package prefs

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateBreadcrumb rejects trees where two elements resolve to the
	// same breadcrumb. Breadcrumbs are the persistence keys, so collisions
	// would silently share stored values.
	ErrDuplicateBreadcrumb = errors.New("prefs: duplicate breadcrumb")

	// ErrDelimiterInTitle rejects titles containing the breadcrumb delimiter.
	ErrDelimiterInTitle = errors.New("prefs: title contains breadcrumb delimiter")

	// ErrNoCategories is returned when a model is built without any category.
	ErrNoCategories = errors.New("prefs: at least one category is required")

	// ErrNilAdapter is returned when a model is built without a storage adapter.
	ErrNilAdapter = errors.New("prefs: storage adapter is required")

	// ErrModelClosed is returned by operations on a closed model.
	ErrModelClosed = errors.New("prefs: model is closed")

	// ErrUnknownCategory is returned when a displayed-category operation
	// names a category outside the model's tree.
	ErrUnknownCategory = errors.New("prefs: category not in model")
)

// ConfigurationError reports an invalid preferences tree. It is fatal:
// construction stops before any storage traffic.
type ConfigurationError struct {
	Breadcrumb string
	Err        error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Breadcrumb == "" {
		return fmt.Sprintf("prefs: configuration: %v", e.Err)
	}
	return fmt.Sprintf("prefs: configuration at %q: %v", e.Breadcrumb, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StorageError reports a failed persistence operation for one key. Loads and
// saves isolate these per setting, so one bad key never aborts the rest of
// the tree.
type StorageError struct {
	Op  string // "save" or "load"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("prefs: storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports a rejected value. The write does not happen and no
// change record is produced.
type ValidationError struct {
	Breadcrumb string
	Value      any
	Message    string
	Err        error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("prefs: validation at %q rejected %v: %s", e.Breadcrumb, e.Value, msg)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newStorageError(op, key string, err error) error {
	if err == nil {
		return nil
	}
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}
	return &StorageError{Op: op, Key: key, Err: err}
}
