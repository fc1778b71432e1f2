// Package interactive provides the interactive shell for enstoctl.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/ensto-ble/ensto-go/pkg/log"
	"github.com/ensto-ble/ensto-go/pkg/persistence"
	"github.com/ensto-ble/ensto-go/pkg/session"
	"github.com/ensto-ble/ensto-go/pkg/thermostat"
	"github.com/ensto-ble/ensto-go/pkg/transport"
)

// Config configures the shell.
type Config struct {
	Adapter        transport.Adapter
	Credentials    persistence.CredentialStore
	Logger         *slog.Logger
	ProtocolLogger log.Logger
	ScanTimeout    time.Duration

	// InitialAddress, when set, is connected to before the first
	// prompt.
	InitialAddress string
}

// Shell is the interactive command loop.
type Shell struct {
	cfg    Config
	rl     *readline.Instance
	device *thermostat.Device
}

// New creates the shell and its readline instance.
func New(cfg Config) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "ensto> ",
		HistoryLimit:    200,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline: %w", err)
	}
	return &Shell{cfg: cfg, rl: rl}, nil
}

// Close releases the readline instance and any open device.
func (s *Shell) Close() error {
	if s.device != nil {
		_ = s.device.Close()
	}
	return s.rl.Close()
}

// out returns the writer coordinated with the readline prompt.
func (s *Shell) out() io.Writer {
	return s.rl.Stdout()
}

// Run executes the command loop until quit, EOF or ctx cancellation.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) error {
	if s.cfg.InitialAddress != "" {
		s.cmdConnect(ctx, []string{s.cfg.InitialAddress})
	} else {
		s.printHelp()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := s.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil { // io.EOF
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "scan":
			s.cmdScan(ctx, args)

		case "pair", "connect":
			s.cmdConnect(ctx, args)

		case "disconnect":
			s.cmdDisconnect()

		case "forget":
			s.cmdForget(args)

		case "info", "i":
			s.cmdInfo(ctx)

		case "status", "st":
			s.cmdStatus(ctx, args)

		case "alarms":
			s.cmdAlarms(ctx)

		case "mode":
			s.cmdMode(ctx, args)

		case "boost":
			s.cmdBoost(ctx, args)

		case "name":
			s.cmdName(ctx, args)

		case "time":
			s.cmdTime(ctx, args)

		case "limits":
			s.cmdLimits(ctx, args)

		case "calibration":
			s.cmdCalibration(ctx, args)

		case "sensor":
			s.cmdSensor(ctx, args)

		case "unit":
			s.cmdUnit(ctx, args)

		case "calendar", "cal":
			s.cmdCalendar(ctx, args)

		case "vacation":
			s.cmdVacation(ctx, args)

		case "force":
			s.cmdForce(ctx, args)

		case "history":
			s.cmdHistory(ctx)

		case "monitor":
			s.cmdMonitor(ctx)

		case "quit", "exit", "q":
			fmt.Fprintln(s.out(), "Exiting...")
			cancel()
			return nil

		default:
			fmt.Fprintf(s.out(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out(), `
Ensto Thermostat Commands:
  Discovery & Connection:
    scan [seconds]             - Scan for Ensto thermostats
    pair <address>             - Connect and pair with a device
    disconnect                 - Drop the current connection
    forget <address>           - Remove stored pairing credentials

  Device:
    info                       - Show device identity
    status [fresh]             - Show live status (fresh forces a read)
    alarms                     - Show active alarms
    name [new-name]            - Show or set the device name
    time [sync]                - Show the device clock, or sync to this host

  Regulation:
    mode [floor|room|combination|power|force]
                               - Show or set the heating mode
    boost [minutes offset-deg] - Show or arm a boost (0 0 disarms)
    limits [low high]          - Show or set floor temperature limits
    calibration [offset]       - Show or set room sensor calibration
    sensor [preset]            - Show floor sensor config or apply a preset
    unit [currency price]      - Show or set the billing unit

  Scheduling:
    calendar <mon..sun>        - Show one weekday's programs
    calendar mode [on|off]     - Show or set calendar mode
    calendar name [new-name]   - Show or set the calendar name
    vacation                   - Show the vacation window
    vacation <from> <to> <offset-deg> [on|off]
                               - Set the window (times as 2006-01-02T15:04)

  External control:
    force                      - Show the force control state
    force temp <deg>           - Engage with an absolute target
    force offset <deg>         - Engage with an offset
    force off                  - Release external control

  History:
    history                    - Show the 25-hour relay ratio history
    monitor                    - Show long-term consumption history

    quit                       - Exit`)
}

// connected returns the open device, or prints a hint.
func (s *Shell) connected() *thermostat.Device {
	if s.device == nil {
		fmt.Fprintln(s.out(), "Not connected (use 'pair <address>' first)")
		return nil
	}
	return s.device
}

// newDevice builds the session and device for one address.
func (s *Shell) newDevice(address string) (*thermostat.Device, error) {
	sess, err := session.New(session.Config{
		Address:        address,
		Adapter:        s.cfg.Adapter,
		Credentials:    s.cfg.Credentials,
		Logger:         s.cfg.Logger,
		ProtocolLogger: s.cfg.ProtocolLogger,
		ScanTimeout:    s.cfg.ScanTimeout,
	})
	if err != nil {
		return nil, err
	}
	device, err := thermostat.New(thermostat.Config{Session: sess})
	if err != nil {
		return nil, err
	}
	device.OnStateChange(func(old, new session.State) {
		if s.cfg.Logger != nil {
			s.cfg.Logger.Debug("session state", "old", old.String(), "new", new.String())
		}
	})
	return device, nil
}
