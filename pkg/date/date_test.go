package date

import (
	"encoding/json"
	"strconv"
	"testing"
	"time"
)

func TestParseISODay(t *testing.T) {
	got, err := Parse("2024-10-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != New(2024, time.October, 10) {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseRFC3339DropsTime(t *testing.T) {
	got, err := Parse("2024-10-10T23:10:10Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "2024-10-10" {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParsePandasTimestamp(t *testing.T) {
	got, err := Parse("2024-03-01 00:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "2024-03-01" {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, err := Parse(strconv.FormatInt(ts, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "2024-10-10" {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("yesterday"); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := Parse(""); err == nil {
		t.Fatalf("expected error on empty")
	}
}

func TestAddCrossesMonthAndYear(t *testing.T) {
	d := New(2023, time.December, 30)
	if got := d.Add(3).String(); got != "2024-01-02" {
		t.Fatalf("unexpected %s", got)
	}
	if got := New(2024, time.February, 28).Add(1).String(); got != "2024-02-29" {
		t.Fatalf("leap day: unexpected %s", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var v struct {
		D Date `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"d":"2024-05-06"}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"d":"2024-05-06"}` {
		t.Fatalf("unexpected json %s", b)
	}
	var zero struct {
		D Date `json:"d"`
	}
	b, _ = json.Marshal(zero)
	if string(b) != `{"d":null}` {
		t.Fatalf("zero date should marshal as null, got %s", b)
	}
}
