package tui

import "errors"

// ErrMissingPortalService is returned when the portal service is not provided.
var ErrMissingPortalService = errors.New("tui: portal service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

// errEditModeOff is shown when an add is attempted with the gate closed.
var errEditModeOff = errors.New("bearbeiten ist aus, e schaltet ein")
