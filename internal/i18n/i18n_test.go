package i18n

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Language
	}{
		{"en", EN},
		{"tc", TC},
		{"sc", SC},
		{"", EN},
		{"fr", EN},
		{"TC", EN},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Parse(tt.input); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	want := map[Language]string{EN: "En", TC: "繁", SC: "简"}
	for l, label := range want {
		if got := l.Label(); got != label {
			t.Errorf("%s.Label() = %q, want %q", l, got, label)
		}
	}
}

func TestFor_EveryLanguageComplete(t *testing.T) {
	for _, l := range Supported {
		s := For(l)
		if s.Language == "" || s.SearchRoute == "" || s.ReverseRoute == "" ||
			s.SelectStop == "" || s.EstimatedTime == "" || s.NotFound == "" || s.NoETA == "" ||
			s.Min == "" || s.Mins == "" || s.Due == "" {
			t.Errorf("strings for %s are incomplete: %+v", l, s)
		}
	}
	if For("xx") != For(EN) {
		t.Error("unknown language should use the default strings")
	}
}

func TestFor_CountdownWords(t *testing.T) {
	tests := []struct {
		lang           Language
		min, mins, due string
	}{
		{EN, "1 min", "%d mins", "Due"},
		{TC, "1 分鐘", "%d 分鐘", "即將抵達"},
		{SC, "1 分钟", "%d 分钟", "即将抵达"},
	}
	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			s := For(tt.lang)
			if s.Min != tt.min || s.Mins != tt.mins || s.Due != tt.due {
				t.Errorf("countdown words = %q %q %q", s.Min, s.Mins, s.Due)
			}
		})
	}
}
