// Package i18n holds the supported display languages and the UI strings
// for each of them.
package i18n

// Language is a supported display language. Its value is the suffix used
// by upstream field names (orig_en, name_tc, rmk_sc, ...).
type Language string

const (
	EN Language = "en"
	TC Language = "tc"
	SC Language = "sc"
)

// Default is used when no language, or an unsupported one, is selected.
const Default = EN

// Supported lists the languages in selector order.
var Supported = []Language{EN, TC, SC}

// Parse returns the language for code, or Default when code is empty or
// not supported.
func Parse(code string) Language {
	for _, l := range Supported {
		if string(l) == code {
			return l
		}
	}
	return Default
}

// Label is the short selector label.
func (l Language) Label() string {
	switch l {
	case TC:
		return "繁"
	case SC:
		return "简"
	default:
		return "En"
	}
}

// Strings are the UI labels of one language.
type Strings struct {
	Language      string
	SearchRoute   string
	ReverseRoute  string
	SelectStop    string
	EstimatedTime string
	NotFound      string // route, bound
	NoETA         string
	NoStops       string
	Update        string

	// Countdown words. Mins takes the minute count.
	Min  string
	Mins string
	Due  string
}

var table = map[Language]Strings{
	EN: {
		Language:      "Language",
		SearchRoute:   "Search Bus Route",
		ReverseRoute:  "Reverse Route",
		SelectStop:    "Select a stop",
		EstimatedTime: "Estimated Time",
		NotFound:      "Cannot find this route %s (%s)",
		NoETA:         "No ETA information",
		NoStops:       "No stops found for this route",
		Update:        "Update",
		Min:           "1 min",
		Mins:          "%d mins",
		Due:           "Due",
	},
	TC: {
		Language:      "語言",
		SearchRoute:   "搜尋巴士路線",
		ReverseRoute:  "回程",
		SelectStop:    "選擇車站",
		EstimatedTime: "預計到達時間",
		NotFound:      "找不到路線 %s (%s)",
		NoETA:         "沒有預計到達時間",
		NoStops:       "此路線沒有車站資料",
		Update:        "更新",
		Min:           "1 分鐘",
		Mins:          "%d 分鐘",
		Due:           "即將抵達",
	},
	SC: {
		Language:      "语言",
		SearchRoute:   "搜寻巴士路线",
		ReverseRoute:  "回程",
		SelectStop:    "选择车站",
		EstimatedTime: "预计到达时间",
		NotFound:      "找不到路线 %s (%s)",
		NoETA:         "没有预计到达时间",
		NoStops:       "此路线没有车站资料",
		Update:        "更新",
		Min:           "1 分钟",
		Mins:          "%d 分钟",
		Due:           "即将抵达",
	},
}

// For returns the UI strings of l, or of Default for an unknown language.
func For(l Language) Strings {
	if s, ok := table[l]; ok {
		return s
	}
	return table[Default]
}
