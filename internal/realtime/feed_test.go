package realtime

import (
	"strings"
	"testing"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"kmbeta/internal/kmb"
)

func strPtr(s string) *string { return &s }

func TestTripUpdates(t *testing.T) {
	now := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	records := []kmb.ETA{
		{Route: "1A", Dir: "O", Seq: 3, EtaSeq: 1, ETA: strPtr("2024-03-01T15:01:30+08:00")},
		{Route: "1A", Dir: "O", Seq: 3, EtaSeq: 2, RmkEN: "Last bus departed"},
	}

	feed := TripUpdates("1A", "abc123", kmb.Outbound, records, now)

	if feed.GetHeader().GetGtfsRealtimeVersion() != "2.0" {
		t.Errorf("version = %q", feed.GetHeader().GetGtfsRealtimeVersion())
	}
	if feed.GetHeader().GetIncrementality() != gtfs.FeedHeader_FULL_DATASET {
		t.Errorf("incrementality = %v", feed.GetHeader().GetIncrementality())
	}
	if feed.GetHeader().GetTimestamp() != uint64(now.Unix()) {
		t.Errorf("timestamp = %d", feed.GetHeader().GetTimestamp())
	}
	if len(feed.GetEntity()) != 2 {
		t.Fatalf("got %d entities, want 2", len(feed.GetEntity()))
	}

	first := feed.GetEntity()[0]
	if first.GetId() != "1A-O-abc123-1" {
		t.Errorf("id = %q", first.GetId())
	}
	trip := first.GetTripUpdate().GetTrip()
	if trip.GetRouteId() != "1A" || trip.GetDirectionId() != 0 {
		t.Errorf("trip = %v", trip)
	}
	stu := first.GetTripUpdate().GetStopTimeUpdate()[0]
	if stu.GetStopId() != "abc123" || stu.GetStopSequence() != 3 {
		t.Errorf("stop time update = %v", stu)
	}
	if got := stu.GetArrival().GetTime(); got != now.Add(90*time.Second).Unix() {
		t.Errorf("arrival = %d", got)
	}

	second := feed.GetEntity()[1].GetTripUpdate().GetStopTimeUpdate()[0]
	if second.GetScheduleRelationship() != gtfs.TripUpdate_StopTimeUpdate_NO_DATA {
		t.Errorf("relationship = %v, want NO_DATA", second.GetScheduleRelationship())
	}
	if second.GetArrival() != nil {
		t.Error("NO_DATA update should carry no arrival")
	}
}

func TestTripUpdates_InboundDirectionID(t *testing.T) {
	feed := TripUpdates("1A", "abc123", kmb.Inbound, []kmb.ETA{{Dir: "I", EtaSeq: 1}}, time.Now())
	if got := feed.GetEntity()[0].GetTripUpdate().GetTrip().GetDirectionId(); got != 1 {
		t.Errorf("direction id = %d, want 1", got)
	}
}

func TestMarshal(t *testing.T) {
	feed := TripUpdates("1A", "abc123", kmb.Outbound, []kmb.ETA{{Dir: "O", EtaSeq: 1}}, time.Now())

	bin, err := Marshal(feed, false)
	if err != nil {
		t.Fatalf("Marshal binary: %v", err)
	}
	var decoded gtfs.FeedMessage
	if err := proto.Unmarshal(bin, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded.GetEntity()) != 1 {
		t.Errorf("decoded %d entities", len(decoded.GetEntity()))
	}

	text, err := Marshal(feed, true)
	if err != nil {
		t.Fatalf("Marshal text: %v", err)
	}
	if !strings.Contains(string(text), "gtfs_realtime_version") {
		t.Errorf("text output missing header: %s", text)
	}
}
