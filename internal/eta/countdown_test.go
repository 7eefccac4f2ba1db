package eta

import (
	"testing"
	"time"

	"kmbeta/internal/i18n"
	"kmbeta/internal/kmb"
)

func strPtr(s string) *string { return &s }

var en = i18n.For(i18n.EN)

func TestCountdown(t *testing.T) {
	now := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		offset time.Duration
		want   string
	}{
		{"exactly now", 0, "1 min"},
		{"59 seconds", 59 * time.Second, "1 min"},
		{"60 seconds", 60 * time.Second, "2 mins"},
		{"61 seconds", 61 * time.Second, "2 mins"},
		{"90 seconds", 90 * time.Second, "2 mins"},
		{"sub-second truncated", 59*time.Second + 900*time.Millisecond, "1 min"},
		{"ten minutes", 10 * time.Minute, "11 mins"},
		{"half a second overdue", -500 * time.Millisecond, "1 min"},
		{"30 seconds overdue", -30 * time.Second, "Due"},
		{"one minute overdue", -time.Minute, "Due"},
		{"five minutes overdue", -5 * time.Minute, "Due"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Countdown(now.Add(tt.offset), now, en)
			if got != tt.want {
				t.Errorf("Countdown(now%+v) = %q, want %q", tt.offset, got, tt.want)
			}
		})
	}
}

func TestMinutes_TimezoneIndependent(t *testing.T) {
	hk := time.FixedZone("HKT", 8*60*60)
	at := time.Date(2024, 3, 1, 15, 1, 1, 0, hk)
	now := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	if got := Minutes(at, now); got != 2 {
		t.Errorf("Minutes = %d, want 2", got)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		lang    i18n.Language
		minutes int
		want    string
	}{
		{i18n.EN, -3, "Due"},
		{i18n.EN, 0, "Due"},
		{i18n.EN, 1, "1 min"},
		{i18n.EN, 2, "2 mins"},
		{i18n.EN, 45, "45 mins"},
		{i18n.TC, 0, "即將抵達"},
		{i18n.TC, 1, "1 分鐘"},
		{i18n.TC, 12, "12 分鐘"},
		{i18n.SC, -1, "即将抵达"},
		{i18n.SC, 3, "3 分钟"},
	}
	for _, tt := range tests {
		if got := Format(tt.minutes, i18n.For(tt.lang)); got != tt.want {
			t.Errorf("Format(%d, %s) = %q, want %q", tt.minutes, tt.lang, got, tt.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	got, ok := ParseTimestamp("2024-03-01T15:48:00+08:00")
	if !ok {
		t.Fatal("ParseTimestamp should accept an offset timestamp")
	}
	want := time.Date(2024, 3, 1, 7, 48, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp = %s, want %s", got, want)
	}

	for _, bad := range []string{"", "15:48", "2024-03-01 15:48:00"} {
		if _, ok := ParseTimestamp(bad); ok {
			t.Errorf("ParseTimestamp(%q) should fail", bad)
		}
	}
}

func TestForDirection(t *testing.T) {
	records := []kmb.ETA{
		{Dir: "I", EtaSeq: 1},
		{Dir: "O", EtaSeq: 2},
		{Dir: "I", EtaSeq: 3},
	}

	out := ForDirection(records, kmb.Outbound)
	if len(out) != 1 || out[0].EtaSeq != 2 {
		t.Errorf("ForDirection(O) = %+v, want the single outbound record", out)
	}

	in := ForDirection(records, kmb.Inbound)
	if len(in) != 2 || in[0].EtaSeq != 1 || in[1].EtaSeq != 3 {
		t.Errorf("ForDirection(I) = %+v", in)
	}

	if got := ForDirection(nil, kmb.Outbound); len(got) != 0 {
		t.Errorf("ForDirection(nil) = %+v", got)
	}
}

func TestSlotFor(t *testing.T) {
	now := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		record     kmb.ETA
		lang       i18n.Language
		want       string
		wantRemark bool
	}{
		{
			name:   "countdown",
			record: kmb.ETA{ETA: strPtr("2024-03-01T15:01:30+08:00")},
			lang:   i18n.EN,
			want:   "2 mins",
		},
		{
			name:   "countdown is localized",
			record: kmb.ETA{ETA: strPtr("2024-03-01T15:01:30+08:00")},
			lang:   i18n.TC,
			want:   "2 分鐘",
		},
		{
			name:       "null timestamp shows remark",
			record:     kmb.ETA{RmkEN: "Last bus departed", RmkTC: "已過尾班車"},
			lang:       i18n.EN,
			want:       "Last bus departed",
			wantRemark: true,
		},
		{
			name:       "remark is localized",
			record:     kmb.ETA{RmkEN: "Last bus departed", RmkTC: "已過尾班車"},
			lang:       i18n.TC,
			want:       "已過尾班車",
			wantRemark: true,
		},
		{
			name:       "blank remark falls back",
			record:     kmb.ETA{ETA: strPtr("")},
			lang:       i18n.EN,
			want:       "No ETA information",
			wantRemark: true,
		},
		{
			name:       "unparseable timestamp treated as absent",
			record:     kmb.ETA{ETA: strPtr("soon"), RmkEN: "Scheduled Bus"},
			lang:       i18n.EN,
			want:       "Scheduled Bus",
			wantRemark: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotFor(tt.record, tt.lang, now)
			if got.Text != tt.want || got.IsRemark != tt.wantRemark {
				t.Errorf("SlotFor = %+v, want text %q remark %v", got, tt.want, tt.wantRemark)
			}
		})
	}
}

func TestSlotFor_DestinationAndArrival(t *testing.T) {
	now := time.Date(2024, 3, 1, 7, 0, 0, 0, time.UTC)
	r := kmb.ETA{
		ETA:    strPtr("2024-03-01T15:01:30+08:00"),
		DestEN: "SAU MAU PING (CENTRAL)",
		DestTC: "秀茂坪(中)",
	}

	got := SlotFor(r, i18n.TC, now)
	if got.Dest != "秀茂坪(中)" {
		t.Errorf("Dest = %q", got.Dest)
	}
	if want := time.Date(2024, 3, 1, 7, 1, 30, 0, time.UTC); !got.At.Equal(want) {
		t.Errorf("At = %s, want %s", got.At, want)
	}

	rmk := SlotFor(kmb.ETA{RmkEN: "Last bus departed", DestEN: "STAR FERRY"}, i18n.EN, now)
	if !rmk.At.IsZero() || rmk.Dest != "STAR FERRY" {
		t.Errorf("remark slot = %+v", rmk)
	}
}

func TestSlots_OnePerRecord(t *testing.T) {
	now := time.Now()
	slots := Slots([]kmb.ETA{{}, {}, {}}, i18n.EN, now)
	if len(slots) != 3 {
		t.Errorf("len(Slots) = %d, want 3", len(slots))
	}
}
