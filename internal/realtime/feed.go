// Package realtime encodes live KMB arrival predictions as a GTFS-Realtime
// TripUpdates feed.
package realtime

import (
	"fmt"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"

	"kmbeta/internal/eta"
	"kmbeta/internal/kmb"
)

// TripUpdates builds a full-dataset feed with one entity per ETA record.
// Records without a usable timestamp are reported with NO_DATA.
func TripUpdates(route, stopID string, dir kmb.Direction, records []kmb.ETA, now time.Time) *gtfs.FeedMessage {
	entities := make([]*gtfs.FeedEntity, 0, len(records))
	for _, r := range records {
		stu := &gtfs.TripUpdate_StopTimeUpdate{
			StopId: proto.String(stopID),
		}
		if r.Seq > 0 {
			stu.StopSequence = proto.Uint32(uint32(r.Seq))
		}

		var (
			at time.Time
			ok bool
		)
		if r.ETA != nil {
			at, ok = eta.ParseTimestamp(*r.ETA)
		}
		if ok {
			stu.Arrival = &gtfs.TripUpdate_StopTimeEvent{Time: proto.Int64(at.Unix())}
			stu.ScheduleRelationship = gtfs.TripUpdate_StopTimeUpdate_SCHEDULED.Enum()
		} else {
			stu.ScheduleRelationship = gtfs.TripUpdate_StopTimeUpdate_NO_DATA.Enum()
		}

		entities = append(entities, &gtfs.FeedEntity{
			Id: proto.String(fmt.Sprintf("%s-%s-%s-%d", route, dir.Bound(), stopID, r.EtaSeq)),
			TripUpdate: &gtfs.TripUpdate{
				Trip: &gtfs.TripDescriptor{
					RouteId:     proto.String(route),
					DirectionId: proto.Uint32(dir.GTFSDirectionID()),
				},
				StopTimeUpdate: []*gtfs.TripUpdate_StopTimeUpdate{stu},
				Timestamp:      proto.Uint64(uint64(now.Unix())),
			},
		})
	}

	return &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      gtfs.FeedHeader_FULL_DATASET.Enum(),
			Timestamp:           proto.Uint64(uint64(now.Unix())),
		},
		Entity: entities,
	}
}

// Marshal encodes a feed as binary protobuf, or as prototext when text is
// set.
func Marshal(msg *gtfs.FeedMessage, text bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if text {
		data, err = prototext.MarshalOptions{Multiline: true}.Marshal(msg)
	} else {
		data, err = proto.Marshal(msg)
	}
	if err != nil {
		return nil, fmt.Errorf("marshal feed: %w", err)
	}
	return data, nil
}
