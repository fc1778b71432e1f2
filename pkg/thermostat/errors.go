package thermostat

import (
	"errors"
	"fmt"

	"github.com/ensto-ble/ensto-go/pkg/model"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// UnsupportedModeError reports a heating mode the connected model does
// not offer, for example a floor-based mode on a radiator thermostat.
type UnsupportedModeError struct {
	// Model is the detected product family.
	Model model.Model

	// Mode is the rejected heating mode.
	Mode wire.HeatingMode
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("heating mode %s is not supported by %s", e.Mode, e.Model)
}

// IsUnsupportedMode reports whether err is an UnsupportedModeError.
func IsUnsupportedMode(err error) bool {
	var e *UnsupportedModeError
	return errors.As(err, &e)
}

// ErrNoFloorSensor reports a floor sensor operation on a model without
// a floor sensor input.
var ErrNoFloorSensor = errors.New("model has no floor sensor input")
