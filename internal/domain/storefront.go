package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Storefronts is the closed set of official App Store storefronts,
// keyed by ISO-3166-1 alpha-2 code. A code never reaches the network
// unless it is present here.
var Storefronts = map[string]string{
	"DZ": "Algeria", "AO": "Angola", "AI": "Anguilla", "AR": "Argentina",
	"AM": "Armenia", "AU": "Australia", "AT": "Austria", "AZ": "Azerbaijan",
	"BH": "Bahrain", "BB": "Barbados", "BY": "Belarus", "BE": "Belgium",
	"BZ": "Belize", "BM": "Bermuda", "BO": "Bolivia", "BW": "Botswana",
	"BR": "Brazil", "VG": "British Virgin Islands", "BN": "Brunei Darussalam",
	"BG": "Bulgaria", "CA": "Canada", "KY": "Cayman Islands", "CL": "Chile",
	"CN": "China", "CO": "Colombia", "CR": "Costa Rica", "HR": "Croatia",
	"CY": "Cyprus", "CZ": "Czech Republic", "DK": "Denmark", "DM": "Dominica",
	"EC": "Ecuador", "EG": "Egypt", "SV": "El Salvador", "EE": "Estonia",
	"FI": "Finland", "FR": "France", "DE": "Germany", "GH": "Ghana",
	"GB": "Great Britain", "GR": "Greece", "GD": "Grenada", "GT": "Guatemala",
	"GY": "Guyana", "HN": "Honduras", "HK": "Hong Kong", "HU": "Hungary",
	"IS": "Iceland", "IN": "India", "ID": "Indonesia", "IE": "Ireland",
	"IL": "Israel", "IT": "Italy", "JM": "Jamaica", "JP": "Japan",
	"JO": "Jordan", "KE": "Kenya", "KW": "Kuwait", "LV": "Latvia",
	"LB": "Lebanon", "LT": "Lithuania", "LU": "Luxembourg", "MO": "Macau",
	"MG": "Madagascar", "MY": "Malaysia", "ML": "Mali", "MT": "Malta",
	"MU": "Mauritius", "MX": "Mexico", "MS": "Montserrat", "NP": "Nepal",
	"NL": "Netherlands", "NZ": "New Zealand", "NI": "Nicaragua", "NE": "Niger",
	"NG": "Nigeria", "NO": "Norway", "OM": "Oman", "PK": "Pakistan",
	"PA": "Panama", "PY": "Paraguay", "PE": "Peru", "PH": "Philippines",
	"PL": "Poland", "PT": "Portugal", "QA": "Qatar",
	"MK": "Republic of North Macedonia", "RO": "Romania", "RU": "Russia",
	"SA": "Saudi Arabia", "SN": "Senegal", "SG": "Singapore", "SK": "Slovakia",
	"SI": "Slovenia", "ZA": "South Africa", "KR": "South Korea", "ES": "Spain",
	"LK": "Sri Lanka", "SR": "Suriname", "SE": "Sweden", "CH": "Switzerland",
	"TW": "Taiwan", "TZ": "Tanzania", "TH": "Thailand", "TN": "Tunisia",
	"TR": "Turkey", "UG": "Uganda", "UA": "Ukraine",
	"AE": "United Arab Emirates", "US": "United States", "UY": "Uruguay",
	"UZ": "Uzbekistan", "VE": "Venezuela", "VN": "Vietnam", "YE": "Yemen",
}

// AllStorefronts returns every known storefront code, sorted.
func AllStorefronts() []string {
	out := make([]string, 0, len(Storefronts))
	for cc := range Storefronts {
		out = append(out, cc)
	}
	sort.Strings(out)
	return out
}

// ValidateStorefronts upper-cases and validates the requested codes.
// An empty request means "all storefronts". When any code is unknown the
// whole request fails with every unknown code named, sorted and
// comma-joined, not just the first one.
func ValidateStorefronts(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return AllStorefronts(), nil
	}

	set := make(map[string]struct{}, len(requested))
	var unknown []string
	for _, cc := range requested {
		up := strings.ToUpper(strings.TrimSpace(cc))
		if _, ok := Storefronts[up]; !ok {
			unknown = append(unknown, up)
			continue
		}
		set[up] = struct{}{}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: %s", ErrUnknownStorefront, strings.Join(dedupSorted(unknown), ", "))
	}

	out := make([]string, 0, len(set))
	for cc := range set {
		out = append(out, cc)
	}
	sort.Strings(out)
	return out, nil
}

func dedupSorted(in []string) []string {
	out := in[:0]
	for i, s := range in {
		if i == 0 || s != in[i-1] {
			out = append(out, s)
		}
	}
	return out
}
