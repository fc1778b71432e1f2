package interactive

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ensto-ble/ensto-go/pkg/wire"
)

// weekdayNumbers maps command arguments to calendar day numbers.
var weekdayNumbers = map[string]uint8{
	"mon": 1, "monday": 1,
	"tue": 2, "tuesday": 2,
	"wed": 3, "wednesday": 3,
	"thu": 4, "thursday": 4,
	"fri": 5, "friday": 5,
	"sat": 6, "saturday": 6,
	"sun": 7, "sunday": 7,
}

var weekdayLabels = [...]string{1: "Monday", 2: "Tuesday", 3: "Wednesday",
	4: "Thursday", 5: "Friday", 6: "Saturday", 7: "Sunday"}

func (s *Shell) cmdCalendar(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) == 0 {
		fmt.Fprintln(s.out(), "Usage: calendar <mon..sun> | calendar mode [on|off] | calendar name [new-name]")
		return
	}

	switch strings.ToLower(args[0]) {
	case "mode":
		s.cmdCalendarMode(ctx, args[1:])
		return
	case "name":
		s.cmdCalendarName(ctx, args[1:])
		return
	}

	day, ok := weekdayNumbers[strings.ToLower(args[0])]
	if !ok {
		if n, err := strconv.Atoi(args[0]); err == nil && n >= 1 && n <= 7 {
			day = uint8(n)
		} else {
			fmt.Fprintf(s.out(), "Unknown weekday %q\n", args[0])
			return
		}
	}

	cal, err := d.ReadCalendarDay(ctx, day)
	if err != nil {
		fmt.Fprintf(s.out(), "Calendar read failed: %v\n", err)
		return
	}

	fmt.Fprintf(s.out(), "%s:\n", weekdayLabels[day])
	if len(cal.Programs) == 0 {
		fmt.Fprintln(s.out(), "  no programs")
		return
	}
	for i, p := range cal.Programs {
		state := "off"
		if p.Enabled {
			state = "on"
		}
		fmt.Fprintf(s.out(), "  %d: %02d:%02d-%02d:%02d  %+.1f °C  [%s]\n",
			i+1, p.StartHour, p.StartMinute, p.EndHour, p.EndMinute, p.OffsetDegrees, state)
	}
}

func (s *Shell) cmdCalendarMode(ctx context.Context, args []string) {
	d := s.device

	if len(args) == 0 {
		enabled, err := d.CalendarMode(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Calendar mode read failed: %v\n", err)
			return
		}
		fmt.Fprintf(s.out(), "Calendar mode: %s\n", onOff(enabled))
		return
	}

	enabled, ok := parseOnOff(args[0])
	if !ok {
		fmt.Fprintln(s.out(), "Usage: calendar mode [on|off]")
		return
	}
	if err := d.WriteCalendarMode(ctx, enabled); err != nil {
		fmt.Fprintf(s.out(), "Calendar mode write failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Calendar mode %s\n", onOff(enabled))
}

func (s *Shell) cmdCalendarName(ctx context.Context, args []string) {
	d := s.device

	if len(args) == 0 {
		name, err := d.ReadCalendarName(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Calendar name read failed: %v\n", err)
			return
		}
		fmt.Fprintf(s.out(), "Calendar name: %s\n", name)
		return
	}

	name := joinArgs(args)
	if err := d.WriteCalendarName(ctx, name); err != nil {
		fmt.Fprintf(s.out(), "Calendar name write failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Calendar name set to %q\n", name)
}

// vacationTimeLayout is the wall-clock format the vacation command
// accepts on the command line.
const vacationTimeLayout = "2006-01-02T15:04"

func (s *Shell) cmdVacation(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) == 0 {
		v, err := d.Vacation(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Vacation read failed: %v\n", err)
			return
		}
		fmt.Fprintf(s.out(), "Vacation: %s to %s  %+.1f °C  enabled=%v active=%v\n",
			v.From.Format(vacationTimeLayout), v.To.Format(vacationTimeLayout),
			v.OffsetDegrees, v.Enabled, v.Active)
		return
	}

	if len(args) < 3 {
		fmt.Fprintln(s.out(), "Usage: vacation <from> <to> <offset-deg> [on|off]  (times as 2006-01-02T15:04)")
		return
	}
	from, err := time.ParseInLocation(vacationTimeLayout, args[0], time.Local)
	if err != nil {
		fmt.Fprintf(s.out(), "Invalid from time: %s\n", args[0])
		return
	}
	to, err := time.ParseInLocation(vacationTimeLayout, args[1], time.Local)
	if err != nil {
		fmt.Fprintf(s.out(), "Invalid to time: %s\n", args[1])
		return
	}
	offset, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintf(s.out(), "Invalid offset: %s\n", args[2])
		return
	}
	enabled := true
	if len(args) > 3 {
		v, ok := parseOnOff(args[3])
		if !ok {
			fmt.Fprintln(s.out(), "Last argument must be on or off")
			return
		}
		enabled = v
	}

	v := &wire.VacationWindow{From: from, To: to, OffsetDegrees: offset, Enabled: enabled}
	if err := d.WriteVacation(ctx, v); err != nil {
		fmt.Fprintf(s.out(), "Vacation write failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out(), "Vacation window set, %s\n", onOff(enabled))
}

func (s *Shell) cmdForce(ctx context.Context, args []string) {
	d := s.connected()
	if d == nil {
		return
	}

	if len(args) == 0 {
		fc, err := d.ForceControl(ctx)
		if err != nil {
			fmt.Fprintf(s.out(), "Force control read failed: %v\n", err)
			return
		}
		if fc.Legacy {
			fmt.Fprintln(s.out(), "Force control: not supported by this firmware")
			return
		}
		fmt.Fprintf(s.out(), "Force control: %s", fc.Mode)
		switch fc.Mode {
		case wire.ForceControlTemperature:
			fmt.Fprintf(s.out(), " (%.1f °C)", fc.Temperature)
		case wire.ForceControlOffset:
			fmt.Fprintf(s.out(), " (%+.1f °C)", fc.TemperatureOffset)
		}
		fmt.Fprintln(s.out())
		return
	}

	switch strings.ToLower(args[0]) {
	case "off":
		if err := d.ReleaseForceControl(ctx); err != nil {
			s.reportForceError(err)
			return
		}
		fmt.Fprintln(s.out(), "External control released")

	case "temp":
		if len(args) < 2 {
			fmt.Fprintln(s.out(), "Usage: force temp <deg>")
			return
		}
		deg, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			fmt.Fprintf(s.out(), "Invalid temperature: %s\n", args[1])
			return
		}
		if err := d.WriteForceControl(ctx, wire.ForceControlTemperature, deg, 0); err != nil {
			s.reportForceError(err)
			return
		}
		fmt.Fprintf(s.out(), "External control engaged at %.1f °C\n", deg)

	case "offset":
		if len(args) < 2 {
			fmt.Fprintln(s.out(), "Usage: force offset <deg>")
			return
		}
		deg, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			fmt.Fprintf(s.out(), "Invalid offset: %s\n", args[1])
			return
		}
		if err := d.WriteForceControl(ctx, wire.ForceControlOffset, 20, deg); err != nil {
			s.reportForceError(err)
			return
		}
		fmt.Fprintf(s.out(), "External control engaged with %+.1f °C offset\n", deg)

	default:
		fmt.Fprintln(s.out(), "Usage: force [temp <deg> | offset <deg> | off]")
	}
}

func (s *Shell) reportForceError(err error) {
	if errors.Is(err, wire.ErrLegacyForceControl) {
		fmt.Fprintln(s.out(), "This firmware does not support external control")
		return
	}
	fmt.Fprintf(s.out(), "Force control write failed: %v\n", err)
}

func (s *Shell) cmdHistory(ctx context.Context) {
	d := s.connected()
	if d == nil {
		return
	}

	pc, err := d.PowerConsumption(ctx)
	if err != nil {
		fmt.Fprintf(s.out(), "History read failed: %v\n", err)
		return
	}
	if len(pc.Samples) == 0 {
		fmt.Fprintln(s.out(), "No hourly history recorded yet")
		return
	}
	fmt.Fprintf(s.out(), "Relay ratio per hour (device clock, header %s):\n",
		pc.Time.Format("2006-01-02 15:04"))
	for _, sample := range pc.Samples {
		fmt.Fprintf(s.out(), "  %s  %3d %%\n", sample.Time.Format("01-02 15:04"), *sample.Ratio)
	}
}

func (s *Shell) cmdMonitor(ctx context.Context) {
	d := s.connected()
	if d == nil {
		return
	}

	md, err := d.MonitoringData(ctx)
	if err != nil {
		fmt.Fprintf(s.out(), "Monitoring read failed: %v\n", err)
		return
	}

	fmt.Fprintln(s.out(), "Daily relay ratios:")
	printRatios(s, md.Daily, "2006-01-02")
	fmt.Fprintln(s.out(), "Monthly relay ratios:")
	printRatios(s, md.Monthly, "2006-01")

	recorded := 0
	for _, t := range md.Temperatures {
		if t.Room != nil || t.Floor != nil {
			recorded++
		}
	}
	fmt.Fprintf(s.out(), "Hourly temperature samples recorded: %d of %d\n",
		recorded, len(md.Temperatures))
}

func printRatios(s *Shell, samples []wire.RatioSample, layout string) {
	any := false
	for _, sample := range samples {
		if sample.Ratio == nil {
			continue
		}
		any = true
		fmt.Fprintf(s.out(), "  %s  %3d %%\n", sample.Time.Format(layout), *sample.Ratio)
	}
	if !any {
		fmt.Fprintln(s.out(), "  no samples")
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func parseOnOff(arg string) (bool, bool) {
	switch strings.ToLower(arg) {
	case "on", "true", "1":
		return true, true
	case "off", "false", "0":
		return false, true
	}
	return false, false
}
