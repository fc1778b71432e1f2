package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/log"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

const testSessionID = "abc12345-6789-0123-4567-890abcdef012"

func writeLog(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.elog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func sampleEvents() []log.Event {
	ts := time.Date(2026, 8, 20, 10, 15, 32, 0, time.UTC)
	return []log.Event{
		{
			Timestamp:      ts,
			SessionID:      testSessionID,
			Direction:      log.DirectionIn,
			Layer:          log.LayerTransport,
			Category:       log.CategoryFrame,
			DeviceAddress:  "90:FD:9F:AA:BB:CC",
			Characteristic: wire.UUIDRealTimeIndication,
			Frame:          &log.FrameEvent{Size: 19, Data: []byte{0x40, 0x01, 0x02}, Final: true},
		},
		{
			Timestamp:      ts.Add(time.Second),
			SessionID:      testSessionID,
			Direction:      log.DirectionOut,
			Layer:          log.LayerWire,
			Category:       log.CategoryOperation,
			DeviceAddress:  "90:FD:9F:AA:BB:CC",
			Characteristic: wire.UUIDBoost,
			Operation:      &log.OperationEvent{Name: "write boost", Size: 8},
		},
		{
			Timestamp:   ts.Add(2 * time.Second),
			SessionID:   testSessionID,
			Direction:   log.DirectionIn,
			Layer:       log.LayerSession,
			Category:    log.CategoryState,
			StateChange: &log.StateChangeEvent{OldState: "CONNECTED", NewState: "READY"},
		},
		{
			Timestamp: ts.Add(3 * time.Second),
			SessionID: "ffff6666-0000-1111-2222-333344445555",
			Direction: log.DirectionIn,
			Layer:     log.LayerSession,
			Category:  log.CategoryError,
			Error:     &log.ErrorEventData{Layer: log.LayerTransport, Message: "link lost"},
		},
	}
}

func TestFormatFrameEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[0])
	output := buf.String()

	if !strings.Contains(output, "2026-08-20T10:15:32.000000Z") {
		t.Errorf("expected timestamp, got: %s", output)
	}
	if !strings.Contains(output, "[session:abc12345]") {
		t.Errorf("expected shortened session ID, got: %s", output)
	}
	if !strings.Contains(output, "IN") {
		t.Errorf("expected IN direction, got: %s", output)
	}
	if !strings.Contains(output, "Real Time Indication") {
		t.Errorf("expected characteristic name, got: %s", output)
	}
	if !strings.Contains(output, "19 bytes") {
		t.Errorf("expected frame size, got: %s", output)
	}
	if !strings.Contains(output, "400102") {
		t.Errorf("expected hex data, got: %s", output)
	}
	if !strings.Contains(output, "Final: true") {
		t.Errorf("expected final flag, got: %s", output)
	}
}

func TestFormatOperationEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[1])
	output := buf.String()

	if !strings.Contains(output, "write boost") {
		t.Errorf("expected operation name, got: %s", output)
	}
	if !strings.Contains(output, "OUT") {
		t.Errorf("expected OUT direction, got: %s", output)
	}
	if !strings.Contains(output, "Boost") {
		t.Errorf("expected characteristic name, got: %s", output)
	}
}

func TestFormatStateChangeEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[2])
	output := buf.String()

	if !strings.Contains(output, "CONNECTED -> READY") {
		t.Errorf("expected state transition, got: %s", output)
	}
}

func TestRunViewFilters(t *testing.T) {
	path := writeLog(t, sampleEvents())

	layer := log.LayerWire
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Layer: &layer}, &buf); err != nil {
		t.Fatalf("RunView: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "write boost") {
		t.Errorf("expected wire event in output, got: %s", output)
	}
	if strings.Contains(output, "READY") {
		t.Errorf("session event should be filtered out, got: %s", output)
	}
}

func TestRunFilterWritesNewFile(t *testing.T) {
	path := writeLog(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.elog")

	opts := FilterOptions{Output: out, SessionID: testSessionID}
	if err := RunFilter(path, opts); err != nil {
		t.Fatalf("RunFilter: %v", err)
	}

	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer reader.Close()
	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("filtered events = %d, want 3", len(events))
	}
	for _, e := range events {
		if e.SessionID != testSessionID {
			t.Errorf("unexpected session %s in filtered output", e.SessionID)
		}
	}
}

func TestRunFilterInvalidTime(t *testing.T) {
	path := writeLog(t, sampleEvents())
	opts := FilterOptions{Output: filepath.Join(t.TempDir(), "out.elog"), TimeStart: "not-a-time"}
	if err := RunFilter(path, opts); err == nil {
		t.Fatal("RunFilter with bad time-start should fail")
	}
}

func TestRunStats(t *testing.T) {
	path := writeLog(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "Total events: 4") {
		t.Errorf("expected total count, got: %s", output)
	}
	if !strings.Contains(output, "Sessions: 2") {
		t.Errorf("expected session count, got: %s", output)
	}
	if !strings.Contains(output, "Errors: 1") {
		t.Errorf("expected error count, got: %s", output)
	}
	if !strings.Contains(output, "Real Time Indication") {
		t.Errorf("expected characteristic breakdown, got: %s", output)
	}
}

func TestRunExportJSONL(t *testing.T) {
	path := writeLog(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "events.jsonl")

	if err := RunExport(path, out); err != nil {
		t.Fatalf("RunExport: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("exported lines = %d, want 4", len(lines))
	}
	if !strings.Contains(lines[0], testSessionID) {
		t.Errorf("expected session ID in first line, got: %s", lines[0])
	}
}

func TestParseFlags(t *testing.T) {
	if _, err := ParseLayerFlag("bogus"); err == nil {
		t.Error("ParseLayerFlag should reject bogus")
	}
	if l, err := ParseLayerFlag("SESSION"); err != nil || l != log.LayerSession {
		t.Errorf("ParseLayerFlag(SESSION) = %v, %v", l, err)
	}
	if d, err := ParseDirectionFlag("out"); err != nil || d != log.DirectionOut {
		t.Errorf("ParseDirectionFlag(out) = %v, %v", d, err)
	}
	if c, err := ParseCategoryFlag("frame"); err != nil || c != log.CategoryFrame {
		t.Errorf("ParseCategoryFlag(frame) = %v, %v", c, err)
	}
}
