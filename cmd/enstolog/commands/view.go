// Package commands implements the enstolog CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/log"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
}

// characteristicNames maps characteristic UUIDs to display names.
var characteristicNames = map[string]string{
	wire.UUIDDeviceName:         "Device Name",
	wire.UUIDModelNumber:        "Model Number",
	wire.UUIDHardwareRevision:   "Hardware Revision",
	wire.UUIDSoftwareRevision:   "Software Revision",
	wire.UUIDManufacturerName:   "Manufacturer Name",
	wire.UUIDManufacturingDate:  "Manufacturing Date",
	wire.UUIDDateAndTime:        "Date And Time",
	wire.UUIDDaylightSaving:     "Daylight Saving",
	wire.UUIDHeatingMode:        "Heating Mode",
	wire.UUIDBoost:              "Boost",
	wire.UUIDPowerControlCycle:  "Power Control Cycle",
	wire.UUIDFloorLimits:        "Floor Limits",
	wire.UUIDChildLock:          "Child Lock",
	wire.UUIDAdaptiveControl:    "Adaptive Control",
	wire.UUIDFloorSensorType:    "Floor Sensor Type",
	wire.UUIDHeatingPower:       "Heating Power",
	wire.UUIDFloorArea:          "Floor Area",
	wire.UUIDRoomCalibration:    "Room Calibration",
	wire.UUIDLEDBrightness:      "LED Brightness",
	wire.UUIDEnergyUnit:         "Energy Unit",
	wire.UUIDAlarmCode:          "Alarm Code",
	wire.UUIDCalendarControl:    "Calendar Control",
	wire.UUIDCalendarDay:        "Calendar Day",
	wire.UUIDCalendarMode:       "Calendar Mode",
	wire.UUIDVacationTime:       "Vacation Time",
	wire.UUIDFactoryResetID:     "Factory Reset ID",
	wire.UUIDMonitoringData:     "Monitoring Data",
	wire.UUIDRealTimeIndication: "Real Time Indication",
	wire.UUIDPowerConsumption:   "Power Consumption",
	wire.UUIDForceControl:       "Force Control",
}

// characteristicName returns a display name for a characteristic UUID,
// falling back to the UUID itself.
func characteristicName(uuid string) string {
	if name, ok := characteristicNames[uuid]; ok {
		return name
	}
	return uuid
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	session := shortenSessionID(event.SessionID)
	dir := event.Direction.String()

	var typeLabel string
	switch {
	case event.Frame != nil:
		typeLabel = "Frame"
	case event.Operation != nil:
		typeLabel = event.Operation.Name
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [session:%s] %-3s %s %s\n", ts, session, dir, event.Layer, typeLabel)

	if event.Characteristic != "" {
		fmt.Fprintf(w, "  Characteristic: %s\n", characteristicName(event.Characteristic))
	}

	switch {
	case event.Frame != nil:
		formatFrameDetails(w, event.Frame)
	case event.Operation != nil:
		formatOperationDetails(w, event.Operation)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatFrameDetails(w io.Writer, frame *log.FrameEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", frame.Size)
	if len(frame.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s\n", hex.EncodeToString(frame.Data))
	}
	if frame.Final {
		fmt.Fprintln(w, "  Final: true")
	}
}

func formatOperationDetails(w io.Writer, op *log.OperationEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", op.Size)
	if op.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*op.Duration))
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer)
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer string from a command-line flag
// (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	return parseLayer(s)
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "wire":
		return log.LayerWire, nil
	case "session":
		return log.LayerSession, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport, wire, or session)", s)
	}
}

// ParseDirectionFlag parses a direction string from a command-line flag
// (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from a command-line flag
// (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "operation":
		return log.CategoryOperation, nil
	case "frame":
		return log.CategoryFrame, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be operation, frame, state, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read event: %w", err)
		}

		if filter.Layer != nil && event.Layer != *filter.Layer {
			continue
		}
		if filter.Direction != nil && event.Direction != *filter.Direction {
			continue
		}
		if filter.Category != nil && event.Category != *filter.Category {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}
