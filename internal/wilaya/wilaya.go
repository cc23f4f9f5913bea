// Package wilaya is the shared reference list of Algeria's 58 delivery
// provinces. The canonical stored value is the "NN - name" form shown to
// customers.
package wilaya

import "strings"

var names = []string{
	"01 - أدرار",
	"02 - الشلف",
	"03 - الأغواط",
	"04 - أم البواقي",
	"05 - باتنة",
	"06 - بجاية",
	"07 - بسكرة",
	"08 - بشار",
	"09 - البليدة",
	"10 - البويرة",
	"11 - تمنراست",
	"12 - تبسة",
	"13 - تلمسان",
	"14 - تيارت",
	"15 - تيزي وزو",
	"16 - الجزائر",
	"17 - الجلفة",
	"18 - جيجل",
	"19 - سطيف",
	"20 - سعيدة",
	"21 - سكيكدة",
	"22 - سيدي بلعباس",
	"23 - عنابة",
	"24 - قالمة",
	"25 - قسنطينة",
	"26 - المدية",
	"27 - مستغانم",
	"28 - المسيلة",
	"29 - معسكر",
	"30 - ورقلة",
	"31 - وهران",
	"32 - البيض",
	"33 - إليزي",
	"34 - برج بوعريريج",
	"35 - بومرداس",
	"36 - الطارف",
	"37 - تندوف",
	"38 - تيسمسيلت",
	"39 - الوادي",
	"40 - خنشلة",
	"41 - سوق أهراس",
	"42 - تيبازة",
	"43 - ميلة",
	"44 - عين الدفلى",
	"45 - النعامة",
	"46 - عين تموشنت",
	"47 - غرداية",
	"48 - غليزان",
	"49 - المغير",
	"50 - المنيعة",
	"51 - أولاد جلال",
	"52 - برج باجي مختار",
	"53 - بني عباس",
	"54 - تيميمون",
	"55 - تقرت",
	"56 - جانت",
	"57 - عين صالح",
	"58 - عين قزام",
}

var index = func() map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}()

// List returns the provinces in code order. Callers must not mutate it.
func List() []string { return names }

// Valid reports whether s is one of the 58 canonical province values.
func Valid(s string) bool {
	_, ok := index[strings.TrimSpace(s)]
	return ok
}

// Code extracts the two-digit province code, or "" if s is not canonical.
func Code(s string) string {
	if !Valid(s) {
		return ""
	}
	return strings.TrimSpace(s)[:2]
}
