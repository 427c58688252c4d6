package formatter

import "strings"

// DefaultUnitCode is used for unit strings with no mapping in the UQC table.
const DefaultUnitCode = "PCS"

// unitCodes maps free-text unit strings to the portal's fixed UQC codes.
var unitCodes = map[string]string{
	"bag":       "BAG",
	"bags":      "BAG",
	"box":       "BOX",
	"boxes":     "BOX",
	"bottle":    "BTL",
	"bottles":   "BTL",
	"bundle":    "BDL",
	"can":       "CAN",
	"carton":    "CTN",
	"dozen":     "DOZ",
	"gram":      "GMS",
	"grams":     "GMS",
	"g":         "GMS",
	"kg":        "KGS",
	"kgs":       "KGS",
	"kilogram":  "KGS",
	"kilograms": "KGS",
	"litre":     "LTR",
	"litres":    "LTR",
	"liter":     "LTR",
	"l":         "LTR",
	"meter":     "MTR",
	"meters":    "MTR",
	"metre":     "MTR",
	"m":         "MTR",
	"ml":        "MLT",
	"nos":       "NOS",
	"number":    "NOS",
	"numbers":   "NOS",
	"pack":      "PAC",
	"packs":     "PAC",
	"pair":      "PRS",
	"pairs":     "PRS",
	"pcs":       "PCS",
	"piece":     "PCS",
	"pieces":    "PCS",
	"quintal":   "QTL",
	"roll":      "ROL",
	"rolls":     "ROL",
	"set":       "SET",
	"sets":      "SET",
	"sqft":      "SQF",
	"sqm":       "SQM",
	"tablet":    "TBS",
	"ton":       "TON",
	"tonne":     "TON",
	"unit":      "UNT",
	"units":     "UNT",
}

// UnitCode maps a free-text unit string to its UQC code, defaulting to PCS.
func UnitCode(unit string) string {
	normalized := strings.ToLower(strings.TrimSpace(unit))
	if code, ok := unitCodes[normalized]; ok {
		return code
	}
	// Already a UQC code
	upper := strings.ToUpper(normalized)
	for _, code := range unitCodes {
		if code == upper {
			return code
		}
	}
	return DefaultUnitCode
}
