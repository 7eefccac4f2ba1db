package kmb

// Direction is the traversal of a route as named in the upstream URLs.
type Direction string

const (
	Outbound Direction = "outbound"
	Inbound  Direction = "inbound"
)

// ParseDirection maps "inbound"/"I" to Inbound and everything else to Outbound.
func ParseDirection(s string) Direction {
	switch s {
	case "inbound", "I", "i":
		return Inbound
	default:
		return Outbound
	}
}

// Bound returns the single-letter form used in record payloads ("I" or "O").
func (d Direction) Bound() string {
	if d == Inbound {
		return "I"
	}
	return "O"
}

// GTFSDirectionID maps outbound to 0 and inbound to 1.
func (d Direction) GTFSDirectionID() uint32 {
	if d == Inbound {
		return 1
	}
	return 0
}

// Route is a route record from the route list and route detail endpoints.
type Route struct {
	Route       string `json:"route"`
	Bound       string `json:"bound"`
	ServiceType string `json:"service_type"`
	OrigEN      string `json:"orig_en"`
	OrigTC      string `json:"orig_tc"`
	OrigSC      string `json:"orig_sc"`
	DestEN      string `json:"dest_en"`
	DestTC      string `json:"dest_tc"`
	DestSC      string `json:"dest_sc"`
}

// Orig returns the origin name for a language code ("en", "tc", "sc").
func (r Route) Orig(lang string) string {
	return pick(lang, r.OrigEN, r.OrigTC, r.OrigSC)
}

// Dest returns the destination name for a language code.
func (r Route) Dest(lang string) string {
	return pick(lang, r.DestEN, r.DestTC, r.DestSC)
}

// RouteStop is one entry of the ordered stop list for a route+direction.
type RouteStop struct {
	Route       string `json:"route"`
	Bound       string `json:"bound"`
	ServiceType string `json:"service_type"`
	Seq         string `json:"seq"`
	Stop        string `json:"stop"`
}

// Stop is a stop detail record.
type Stop struct {
	Stop   string `json:"stop"`
	NameEN string `json:"name_en"`
	NameTC string `json:"name_tc"`
	NameSC string `json:"name_sc"`
	Lat    string `json:"lat"`
	Long   string `json:"long"`
}

// Name returns the stop name for a language code.
func (s Stop) Name(lang string) string {
	return pick(lang, s.NameEN, s.NameTC, s.NameSC)
}

// ETA is a live arrival prediction. ETA is nil when the upstream has no
// timestamp, in which case the remark explains why.
type ETA struct {
	Route         string  `json:"route"`
	Dir           string  `json:"dir"`
	Seq           int     `json:"seq"`
	EtaSeq        int     `json:"eta_seq"`
	ETA           *string `json:"eta"`
	DestEN        string  `json:"dest_en"`
	DestTC        string  `json:"dest_tc"`
	DestSC        string  `json:"dest_sc"`
	RmkEN         string  `json:"rmk_en"`
	RmkTC         string  `json:"rmk_tc"`
	RmkSC         string  `json:"rmk_sc"`
	DataTimestamp string  `json:"data_timestamp"`
}

// Remark returns the remark text for a language code.
func (e ETA) Remark(lang string) string {
	return pick(lang, e.RmkEN, e.RmkTC, e.RmkSC)
}

// Dest returns the destination name for a language code.
func (e ETA) Dest(lang string) string {
	return pick(lang, e.DestEN, e.DestTC, e.DestSC)
}

func pick(lang, en, tc, sc string) string {
	switch lang {
	case "tc":
		return tc
	case "sc":
		return sc
	default:
		return en
	}
}
