package todotxt

import "testing"

func TestParseDate(t *testing.T) {
	t.Parallel()

	got, err := ParseDate("2018-04-08")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}

	if got != NewDate(2018, 4, 8) {
		t.Errorf("ParseDate(2018-04-08) = %v", got)
	}

	for _, bad := range []string{"2018-13-01", "2018-02-30", "18-04-08", "2018/04/08", "nope"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", bad)
		}
	}
}

func TestDateCompare(t *testing.T) {
	t.Parallel()

	earlier := NewDate(2018, 4, 8)
	later := NewDate(2018, 4, 9)

	if earlier.Compare(later) >= 0 {
		t.Error("earlier date must sort before later date")
	}

	if later.Compare(earlier) <= 0 {
		t.Error("later date must sort after earlier date")
	}

	if earlier.Compare(earlier) != 0 {
		t.Error("date must compare equal to itself")
	}

	// Absent dates sort before any present date.
	if (Date{}).Compare(earlier) >= 0 {
		t.Error("absent date must sort first")
	}
}

func TestDateAddDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start Date
		days  int
		want  Date
	}{
		{NewDate(2018, 4, 8), 1, NewDate(2018, 4, 9)},
		{NewDate(2018, 4, 30), 1, NewDate(2018, 5, 1)},
		{NewDate(2018, 12, 31), 1, NewDate(2019, 1, 1)},
		{NewDate(2020, 2, 28), 1, NewDate(2020, 2, 29)},
		{NewDate(2019, 2, 28), 1, NewDate(2019, 3, 1)},
		{NewDate(2018, 4, 8), -8, NewDate(2018, 3, 31)},
	}

	for _, testCase := range tests {
		got := testCase.start.AddDays(testCase.days)
		if got != testCase.want {
			t.Errorf("%v.AddDays(%d) = %v, want %v", testCase.start, testCase.days, got, testCase.want)
		}
	}
}

func TestDaysUntil(t *testing.T) {
	t.Parallel()

	from := NewDate(2018, 6, 20)
	to := NewDate(2018, 7, 15)

	if got := from.DaysUntil(to); got != 25 {
		t.Errorf("DaysUntil = %d, want 25", got)
	}

	if got := to.DaysUntil(from); got != -25 {
		t.Errorf("reverse DaysUntil = %d, want -25", got)
	}
}
