// Package poststyle maps US state and territory names to their Washington
// Post style abbreviations, e.g. "California" -> "Calif.".
package poststyle

import (
	"maps"
	"slices"
)

var abbreviations map[string]string

func init() {
	abbreviations = map[string]string{
		"Alabama":                  "Ala.",
		"Alaska":                   "Alaska",
		"Arizona":                  "Ariz.",
		"Arkansas":                 "Ark.",
		"American Samoa":           "A.S.",
		"California":               "Calif.",
		"Colorado":                 "Colo.",
		"Connecticut":              "Conn.",
		"District of Columbia":     "D.C.",
		"Delaware":                 "Del.",
		"Florida":                  "Fla.",
		"Georgia":                  "Ga.",
		"Guam":                     "Guam",
		"Hawaii":                   "Hawaii",
		"Idaho":                    "Idaho",
		"Illinois":                 "Ill.",
		"Indiana":                  "Ind.",
		"Iowa":                     "Iowa",
		"Kansas":                   "Kan.",
		"Kentucky":                 "Ky.",
		"Louisiana":                "La.",
		"Maine":                    "Maine",
		"Maryland":                 "Md.",
		"Marshall Islands":         "M.H.",
		"Massachusetts":            "Mass.",
		"Michigan":                 "Mich.",
		"Minnesota":                "Minn.",
		"Mississippi":              "Miss.",
		"Missouri":                 "Mo.",
		"Montana":                  "Mont.",
		"Nebraska":                 "Neb.",
		"Nevada":                   "Nev.",
		"New Hampshire":            "N.H.",
		"New Jersey":               "N.J.",
		"New Mexico":               "N.M.",
		"New York":                 "N.Y.",
		"North Carolina":           "N.C.",
		"North Dakota":             "N.D.",
		"Northern Mariana Islands": "M.P.",
		"Ohio":                     "Ohio",
		"Oklahoma":                 "Okla.",
		"Oregon":                   "Ore.",
		"Pennsylvania":             "Pa.",
		"Puerto Rico":              "P.R.",
		"Rhode Island":             "R.I.",
		"South Carolina":           "S.C.",
		"South Dakota":             "S.D.",
		"Tennessee":                "Tenn.",
		"Texas":                    "Tex.",
		"Utah":                     "Utah",
		"Vermont":                  "Vt.",
		"Virginia":                 "Va.",
		"Virgin Islands":           "V.I.",
		"Washington":               "Wash.",
		"West Virginia":            "W.Va.",
		"Wisconsin":                "Wis.",
		"Wyoming":                  "Wyo.",
	}
}

// Lookup returns the abbreviation for an exact region name.
func Lookup(name string) (string, bool) {
	abbr, ok := abbreviations[name]
	return abbr, ok
}

// Names returns the known region names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(abbreviations))
}
