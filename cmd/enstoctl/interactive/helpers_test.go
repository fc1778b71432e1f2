package interactive

import "testing"

func TestParseOnOff(t *testing.T) {
	cases := []struct {
		arg    string
		want   bool
		wantOK bool
	}{
		{"on", true, true},
		{"ON", true, true},
		{"1", true, true},
		{"off", false, true},
		{"false", false, true},
		{"maybe", false, false},
	}
	for _, tc := range cases {
		got, ok := parseOnOff(tc.arg)
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("parseOnOff(%q) = %v, %v, want %v, %v", tc.arg, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestWeekdayNumbers(t *testing.T) {
	if weekdayNumbers["mon"] != 1 || weekdayNumbers["sunday"] != 7 {
		t.Errorf("weekday mapping wrong: mon=%d sunday=%d", weekdayNumbers["mon"], weekdayNumbers["sunday"])
	}
	for name, day := range weekdayNumbers {
		if day < 1 || day > 7 {
			t.Errorf("weekday %q maps to %d, out of range", name, day)
		}
	}
}

func TestJoinArgs(t *testing.T) {
	if got := joinArgs([]string{"Living", "room"}); got != "Living room" {
		t.Errorf("joinArgs = %q, want %q", got, "Living room")
	}
	if got := joinArgs([]string{"single"}); got != "single" {
		t.Errorf("joinArgs = %q, want %q", got, "single")
	}
}
