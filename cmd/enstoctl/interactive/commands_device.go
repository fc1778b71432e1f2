package interactive

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/discovery"
	"github.com/ensto-ble/ensto-go/pkg/wire"
)

func (s *Shell) cmdScan(ctx context.Context, args []string) {
	timeout := s.cfg.ScanTimeout
	if len(args) > 0 {
		secs, err := strconv.Atoi(args[0])
		if err != nil || secs <= 0 {
			fmt.Fprintf(s.out(), "Invalid scan duration: %s\n", args[0])
			return
		}
		timeout = time.Duration(secs) * time.Second
	}

	fmt.Fprintf(s.out(), "Scanning for %s...\n", timeout)
	scanCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	finder := discovery.NewFinder(s.cfg.Adapter)
	devices, err := finder.FindAll(scanCtx)
	if err != nil {
		fmt.Fprintf(s.out(), "Scan failed: %v\n", err)
		return
	}
	if len(devices) == 0 {
		fmt.Fprintln(s.out(), "No Ensto devices found")
		return
	}

	for _, d := range devices {
		pairing := ""
		if d.InPairingMode {
			pairing = "  [pairing mode]"
		}
		name := d.Name
		if name == "" {
			name = "(no name)"
		}
		fmt.Fprintf(s.out(), "  %s  %-20s  %d dBm%s\n", d.Address, name, d.RSSI, pairing)
	}
}

func (s *Shell) cmdConnect(ctx context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out(), "Usage: pair <address>")
		return
	}
	if s.device != nil {
		fmt.Fprintln(s.out(), "Already connected; 'disconnect' first")
		return
	}

	device, err := s.newDevice(args[0])
	if err != nil {
		fmt.Fprintf(s.out(), "Setup failed: %v\n", err)
		return
	}

	fmt.Fprintf(s.out(), "Connecting to %s...\n", args[0])
	if err := device.Connect(ctx); err != nil {
		fmt.Fprintf(s.out(), "Connect failed: %v\n", err)
		_ = device.Close()
		return
	}
	s.device = device

	identity := device.Session().Identity()
	if identity.FirstPairing {
		fmt.Fprintln(s.out(), "Paired for the first time; credentials stored")
	}
	fmt.Fprintf(s.out(), "Connected to %s (%s)\n", identity.Address, identity.Model)
}

func (s *Shell) cmdDisconnect() {
	if s.device == nil {
		fmt.Fprintln(s.out(), "Not connected")
		return
	}
	if err := s.device.Close(); err != nil {
		fmt.Fprintf(s.out(), "Disconnect: %v\n", err)
	}
	s.device = nil
	fmt.Fprintln(s.out(), "Disconnected")
}

func (s *Shell) cmdForget(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out(), "Usage: forget <address>")
		return
	}
	if err := s.cfg.Credentials.Remove(args[0]); err != nil {
		fmt.Fprintf(s.out(), "Forget failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Removed credentials for %s\n", args[0])
}

func (s *Shell) cmdInfo(ctx context.Context) {
	d := s.connected()
	if d == nil {
		return
	}

	identity := d.Session().Identity()
	fmt.Fprintf(s.out(), "Address:           %s\n", identity.Address)
	fmt.Fprintf(s.out(), "Model:             %s\n", identity.Model)
	fmt.Fprintf(s.out(), "Name:              %s\n", identity.DeviceName)

	rev, err := d.SoftwareRevision(ctx)
	if err == nil {
		fmt.Fprintf(s.out(), "Software:          %s\n", rev)
		fmt.Fprintf(s.out(), "External control:  %v\n", rev.SupportsExternalControl())
	}
	if hw, err := d.HardwareRevision(ctx); err == nil {
		fmt.Fprintf(s.out(), "Hardware revision: %d\n", hw)
	}
	if date, err := d.ManufacturingDate(ctx); err == nil {
		fmt.Fprintf(s.out(), "Manufactured:      %s\n", date)
	}
	if m, err := d.Model(ctx); err == nil {
		fmt.Fprintf(s.out(), "Heating modes:     ")
		for i, mode := range m.HeatingModes() {
			if i > 0 {
				fmt.Fprint(s.out(), ", ")
			}
			fmt.Fprint(s.out(), mode)
		}
		fmt.Fprintln(s.out())
	}
}

func (s *Shell) cmdStatus(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	var (
		rt  *wire.RealTimeStatus
		err error
	)
	if len(args) > 0 && args[0] == "fresh" {
		rt, err = d.RealTimeMaxAge(ctx, 0)
	} else {
		rt, err = d.RealTime(ctx)
	}
	if err != nil {
		fmt.Fprintf(s.out(), "Status read failed: %v\n", err)
		return
	}

	relay := "off"
	if rt.RelayActive {
		relay = "ON"
	}
	fmt.Fprintf(s.out(), "Target:       %.1f °C (%d %%)\n", rt.TargetTemperature, rt.TemperatureSettingPercent)
	fmt.Fprintf(s.out(), "Room:         %.1f °C\n", rt.RoomTemperature)
	fmt.Fprintf(s.out(), "Floor:        %.1f °C\n", rt.FloorTemperature)
	fmt.Fprintf(s.out(), "Relay:        %s\n", relay)
	fmt.Fprintf(s.out(), "Heating mode: %s\n", rt.HeatingMode)
	fmt.Fprintf(s.out(), "Active mode:  %s\n", rt.ActiveMode)
	if rt.BoostEnabled {
		fmt.Fprintf(s.out(), "Boost:        %d of %d minutes remaining\n",
			rt.BoostRemainingMinutes, rt.BoostSetpointMinutes)
	}
	if rt.Alarms != 0 {
		fmt.Fprintf(s.out(), "Alarms:       %s\n", rt.Alarms)
	}
}

func (s *Shell) cmdAlarms(ctx context.Context) {
	d := s.connected()
	if d == nil {
		return
	}

	alarms, err := d.Alarms(ctx)
	if err != nil {
		fmt.Fprintf(s.out(), "Alarm read failed: %v\n", err)
		return
	}
	if alarms == 0 {
		fmt.Fprintln(s.out(), "No active alarms")
		return
	}
	fmt.Fprintf(s.out(), "Active alarms: %s\n", alarms)
}

func (s *Shell) cmdName(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) == 0 {
		name, err := d.DeviceName(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Name read failed: %v\n", err)
			return
		}
		fmt.Fprintf(s.out(), "Device name: %s\n", name)
		return
	}

	name := joinArgs(args)
	if err := d.WriteDeviceName(ctx, name); err != nil {
		fmt.Fprintf(s.out(), "Name write failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Device name set to %q\n", name)
}

func (s *Shell) cmdTime(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) > 0 && args[0] == "sync" {
		now := time.Now()
		if err := d.WriteDeviceTime(ctx, now); err != nil {
			fmt.Fprintf(s.out(), "Time write failed: %v\n", err)
			return
		}
		fmt.Fprintf(s.out(), "Device clock set to %s\n", now.UTC().Format(time.RFC3339))
		return
	}

	devTime, err := d.DeviceTime(ctx)
	if err != nil {
		fmt.Fprintf(s.out(), "Time read failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Device clock: %s (host: %s)\n",
		devTime.Format(time.RFC3339), time.Now().UTC().Format(time.RFC3339))
}

// joinArgs rejoins whitespace-split arguments into one name.
func joinArgs(args []string) string {
	out := args[0]
	for _, a := range args[1:] {
		out += " " + a
	}
	return out
}
