package launch

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports that every lookup source was exhausted without
// producing a candidate binary. It carries the sources searched, in order,
// and the exact command that installs the missing binary.
type NotFoundError struct {
	Binary  string
	Sources []string
	Install string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("launch: %s not found after checking %s; install it with: %s",
		e.Binary, describeSources(e.Sources), e.Install)
}

func describeSources(sources []string) string {
	if len(sources) == 0 {
		return "<no sources>"
	}
	return strings.Join(sources, ", ")
}

// SettingsError wraps a host-level settings failure for one server
// identifier. The underlying error is propagated verbatim, never
// reinterpreted.
type SettingsError struct {
	ServerID string
	Err      error
}

func (e *SettingsError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("launch: settings for %q: %v", e.ServerID, e.Err)
}

func (e *SettingsError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func wrapSettingsError(serverID string, err error) error {
	if err == nil {
		return nil
	}
	var settingsErr *SettingsError
	if errors.As(err, &settingsErr) {
		return err
	}
	return &SettingsError{ServerID: serverID, Err: err}
}
