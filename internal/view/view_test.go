package view

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"ridebook/internal/domain"
)

func TestNewTimestamp_ZeroIsNil(t *testing.T) {
	t.Parallel()

	if ts := NewTimestamp(time.Time{}); ts != nil {
		t.Errorf("expected nil for zero time, got %+v", ts)
	}
}

func TestTimestamp_WireForm(t *testing.T) {
	t.Parallel()

	at := time.Unix(1700000000, 250).UTC()
	data, err := json.Marshal(NewTimestamp(at))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"_seconds":1700000000,"_nanoseconds":250}` {
		t.Errorf("unexpected wire form: %s", data)
	}
	if !NewTimestamp(at).Time().Equal(at) {
		t.Errorf("expected %v after conversion", at)
	}
}

func TestNewBooking_OmitsUnsetArrivalFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewBooking(&domain.Booking{ID: "b1", Status: domain.BookingStatusPending}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(data), "notifiedPassengerArrivalTimestamp") {
		t.Errorf("expected arrival timestamp to be omitted: %s", data)
	}

	data, err = json.Marshal(NewBooking(&domain.Booking{
		ID:                         "b1",
		Status:                     domain.BookingStatusArrivedAtPickup,
		NotifiedPassengerArrivalAt: time.Unix(10, 0),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"notifiedPassengerArrivalTimestamp":{"_seconds":10,"_nanoseconds":0}`) {
		t.Errorf("expected arrival timestamp in output: %s", data)
	}
}

func TestFavoriteLocation_FlattensData(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewFavoriteLocation(&domain.FavoriteLocation{ID: "f1", UserID: "u1", Label: "Home"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded["id"] != "f1" || decoded["userId"] != "u1" || decoded["label"] != "Home" {
		t.Errorf("unexpected document: %s", data)
	}
}
