package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"aisolutions-backend/utils"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/brianvoe/gofakeit/v7/data"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const phoneAttempts = 5

// Names that neither the faker's table nor CLDR spell the usual way.
var regionAliases = map[string]string{
	"usa":            "US",
	"uk":             "GB",
	"united kingdom": "GB",
	"czech republic": "CZ",
	"swaziland":      "SZ",
	"macedonia":      "MK",
	"burma":          "MM",
	"ivory coast":    "CI",
	"south korea":    "KR",
	"north korea":    "KP",
	"vatican city":   "VA",
}

var (
	regionIndexOnce sync.Once
	regionIndex     map[string]string

	parenthetical = regexp.MustCompile(`\s*\([^)]*\)`)
	spaces        = regexp.MustCompile(`\s+`)
)

func regionsByName() map[string]string {
	regionIndexOnce.Do(func() {
		supported := phonenumbers.GetSupportedRegions()
		regionIndex = make(map[string]string)
		add := func(name, code string) {
			if _, ok := supported[code]; !ok {
				return
			}
			for _, key := range []string{strings.ToLower(strings.TrimSpace(name)), normalizeCountry(name)} {
				if _, taken := regionIndex[key]; key != "" && !taken {
					regionIndex[key] = code
				}
			}
		}

		// The faker's country and country_abr tables are index-aligned.
		names, codes := data.Address["country"], data.Address["country_abr"]
		if len(names) == len(codes) {
			for i, name := range names {
				add(name, codes[i])
			}
		}

		namer := display.English.Regions()
		for code := range supported {
			region, err := language.ParseRegion(code)
			if err != nil {
				continue
			}
			if name := namer.Name(region); name != "" {
				add(name, code)
			}
		}
		for name, code := range regionAliases {
			add(name, code)
		}
	})
	return regionIndex
}

// normalizeCountry folds the spelling differences between ISO 3166 names and
// CLDR display names into one lookup key.
func normalizeCountry(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer("&", " and ", "st. ", "saint ", "’", "'").Replace(s)
	s = strings.TrimSuffix(s, " sar china")
	s = parenthetical.ReplaceAllString(s, "")
	// "Moldova, Republic of" -> "republic of moldova"
	if head, tail, ok := strings.Cut(s, ", "); ok {
		s = tail + " " + head
	}
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// RegionForCountry resolves an English country name to an ISO 3166 region code
// that has a numbering plan.
func RegionForCountry(country string) (string, bool) {
	index := regionsByName()
	if code, ok := index[strings.ToLower(strings.TrimSpace(country))]; ok {
		return code, true
	}
	code, ok := index[normalizeCountry(country)]
	return code, ok
}

// PhoneFormatter produces country-plausible phone numbers.
type PhoneFormatter struct {
	faker *gofakeit.Faker
}

func NewPhoneFormatter(f *gofakeit.Faker) *PhoneFormatter {
	return &PhoneFormatter{faker: f}
}

// Format returns an international number for the country, or a synthetic
// "+<code> <digits>" value when the country has no usable numbering plan.
func (p *PhoneFormatter) Format(country string) string {
	if number, err := p.regional(country); err == nil {
		return number
	}
	return p.Fallback()
}

func (p *PhoneFormatter) regional(country string) (string, error) {
	region, ok := RegionForCountry(country)
	if !ok {
		return "", fmt.Errorf("unknown country %q", country)
	}
	example := phonenumbers.GetExampleNumberForType(region, phonenumbers.MOBILE)
	if example == nil {
		return "", fmt.Errorf("no example number for region %s", region)
	}
	code := phonenumbers.GetCountryCodeForRegion(region)
	nsn := phonenumbers.GetNationalSignificantNumber(example)
	keep := len(nsn) / 2
	if keep < 2 {
		keep = len(nsn)
	}

	for i := 0; i < phoneAttempts; i++ {
		candidate := "+" + strconv.Itoa(code) + nsn[:keep] + p.digits(len(nsn)-keep)
		num, err := phonenumbers.Parse(candidate, region)
		if err != nil {
			continue
		}
		if !phonenumbers.IsValidNumber(num) {
			continue
		}
		if formatted := phonenumbers.Format(num, phonenumbers.INTERNATIONAL); utils.ValidatePhone(formatted) {
			return formatted, nil
		}
	}
	return "", fmt.Errorf("no valid number for region %s after %d attempts", region, phoneAttempts)
}

// Fallback builds a synthetic number prefixed with a country-code-like integer.
func (p *PhoneFormatter) Fallback() string {
	return fmt.Sprintf("+%d %s", p.faker.IntRange(1, 999), p.digits(10))
}

func (p *PhoneFormatter) digits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + p.faker.IntRange(0, 9)))
	}
	return b.String()
}
