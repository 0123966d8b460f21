package rules

import (
	"strings"
	"testing"
	"time"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
)

func TestScheduleOpen(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"tuesday mid morning", time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC), true},
		{"tuesday before open", time.Date(2025, 6, 10, 7, 59, 0, 0, time.UTC), false},
		{"tuesday at close", time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC), false},
		{"thursday last minute", time.Date(2025, 6, 12, 16, 59, 0, 0, time.UTC), true},
		{"friday afternoon closed", time.Date(2025, 6, 13, 16, 15, 0, 0, time.UTC), false},
		{"friday before close", time.Date(2025, 6, 13, 15, 59, 0, 0, time.UTC), true},
		{"saturday morning", time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC), true},
		{"saturday afternoon", time.Date(2025, 6, 14, 12, 30, 0, 0, time.UTC), false},
		{"sunday", time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), false},
		{"tuesday late evening", time.Date(2025, 6, 10, 22, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DefaultSchedule.Open(tc.at); got != tc.want {
				t.Fatalf("Open(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestTableMatchDirectorAlwaysTakesDetails(t *testing.T) {
	for _, officeHours := range []bool{true, false} {
		out, ok := DefaultTable.Match("I need to speak to Glenn Currie please", officeHours)
		if !ok {
			t.Fatalf("director trigger did not match (officeHours=%v)", officeHours)
		}
		if out.Category != "director_request" {
			t.Fatalf("category = %q, want director_request", out.Category)
		}
		if out.Action != ActionTakeDetails {
			t.Fatalf("action = %q, want take_details (officeHours=%v)", out.Action, officeHours)
		}
	}
}

func TestTableMatchComplaintActionDependsOnHours(t *testing.T) {
	out, ok := DefaultTable.Match("I am very unhappy with the service", true)
	if !ok || out.Action != ActionTransferNow {
		t.Fatalf("office-hours complaint: got %+v ok=%v, want transfer_now", out, ok)
	}
	out, ok = DefaultTable.Match("this is a complaint", false)
	if !ok || out.Action != ActionTakeDetails {
		t.Fatalf("out-of-hours complaint: got %+v ok=%v, want take_details", out, ok)
	}
	if !strings.Contains(out.Message, "first thing tomorrow") {
		t.Fatalf("out-of-hours message = %q, want callback copy", out.Message)
	}
}

func TestTableMatchOrderDirectorBeforeComplaint(t *testing.T) {
	out, ok := DefaultTable.Match("I'm angry, get me the director", true)
	if !ok {
		t.Fatal("expected a match")
	}
	if out.Category != "director_request" {
		t.Fatalf("category = %q, want director_request to win over complaint", out.Category)
	}
}

func TestTableMatchSpecialist(t *testing.T) {
	out, ok := DefaultTable.Match("do you handle asbestos removal?", true)
	if !ok || out.Category != "specialist_service" || out.Action != ActionTransferNow {
		t.Fatalf("got %+v ok=%v, want specialist transfer", out, ok)
	}
}

func TestTableNoMatch(t *testing.T) {
	if _, ok := DefaultTable.Match("I need a skip for garden waste", true); ok {
		t.Fatal("plain skip enquiry should not escalate")
	}
}

func TestThresholds(t *testing.T) {
	if _, ok := Threshold(contractx.ServiceSkip); ok {
		t.Fatal("skip hire must have no price threshold")
	}
	if limit, ok := Threshold(contractx.ServiceManAndVan); !ok || limit != 500 {
		t.Fatalf("mav threshold = %v, %v; want 500, true", limit, ok)
	}
	if limit, ok := Threshold(contractx.ServiceGrab); !ok || limit != 300 {
		t.Fatalf("grab threshold = %v, %v; want 300, true", limit, ok)
	}
}

func TestBreachesThreshold(t *testing.T) {
	cases := []struct {
		name        string
		service     contractx.ServiceType
		amount      float64
		officeHours bool
		want        bool
	}{
		{"skip never escalates", contractx.ServiceSkip, 10000, true, false},
		{"mav under limit", contractx.ServiceManAndVan, 480, true, false},
		{"mav at limit", contractx.ServiceManAndVan, 500, true, true},
		{"mav over limit", contractx.ServiceManAndVan, 520, true, true},
		{"mav over limit out of hours", contractx.ServiceManAndVan, 520, false, false},
		{"grab at limit", contractx.ServiceGrab, 300, true, true},
		{"grab under limit", contractx.ServiceGrab, 299, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BreachesThreshold(tc.service, tc.amount, tc.officeHours); got != tc.want {
				t.Fatalf("BreachesThreshold(%v, %v, %v) = %v, want %v", tc.service, tc.amount, tc.officeHours, got, tc.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"£495.00", 495},
		{"£1,250", 1250},
		{"320", 320},
		{"call", 0},
		{"£0.00", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := ParsePrice(tc.in); got != tc.want {
			t.Fatalf("ParsePrice(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestBookingIntent(t *testing.T) {
	for _, msg := range []string{
		"yes please", "go ahead", "send me the payment link", "sounds good", "OK", "lets do it",
	} {
		if !BookingIntent(msg) {
			t.Fatalf("BookingIntent(%q) = false, want true", msg)
		}
	}
	for _, msg := range []string{"how much is it?", "what sizes do you have"} {
		if BookingIntent(msg) {
			t.Fatalf("BookingIntent(%q) = true, want false", msg)
		}
	}
}

func TestReconfirmPostcode(t *testing.T) {
	if got := ReconfirmPostcode(""); !strings.Contains(got, "What's your postcode?") {
		t.Fatalf("empty postcode copy = %q", got)
	}
	if got := ReconfirmPostcode("LS14ED"); !strings.Contains(got, "LS14ED") {
		t.Fatalf("postcode copy = %q, want postcode echoed", got)
	}
}

func TestConfirmBooking(t *testing.T) {
	got := ConfirmBooking("WK123", "£150", "https://pay.example/abc", "07911123456", true)
	for _, want := range []string{"WK123", "£150", "https://pay.example/abc", "sent to 07911123456 via SMS"} {
		if !strings.Contains(got, want) {
			t.Fatalf("confirmation %q missing %q", got, want)
		}
	}
	got = ConfirmBooking("WK123", "£150", "", "", false)
	if !strings.Contains(got, "Payment processing in progress") {
		t.Fatalf("no-link confirmation = %q", got)
	}
}
