// Package extract pulls structured customer fields out of free-text messages.
// Extraction is stateless: every call sees only the message it is given, and
// a non-match simply leaves the field empty.
package extract

import (
	"regexp"
	"strings"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
)

// Fields is a partial field set extracted from one message. Empty values mean
// "not found in this message", never "clear the stored value".
type Fields struct {
	FirstName string
	Phone     string
	Postcode  string
	Service   contractx.ServiceType
	Type      string
	WasteType string
	Location  string
}

// Empty reports whether nothing was extracted.
func (f Fields) Empty() bool {
	return f == Fields{}
}

const minPostcodeLen = 5

var postcodePattern = regexp.MustCompile(`([A-Z]{1,2}[0-9]{1,2}[A-Z]?\s*[0-9][A-Z]{2})`)

// Phone patterns are tried in priority order; the first whose combined digit
// string reaches 10 digits wins.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{10,11})\b`),
	regexp.MustCompile(`\b(\d{5})[\s-](\d{6})\b`),
	regexp.MustCompile(`\b(\d{4})[\s-](\d{6})\b`),
	regexp.MustCompile(`\((\d{3,5})\)\s*(\d{6,8})`),
}

// Known repeat customers whose names the patterns below tend to mangle.
var knownCustomers = map[string]string{
	"kanchen": "Kanchen",
}

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[Nn]ame\s+(?:is\s+)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
	regexp.MustCompile(`^([A-Z][a-z]+)\s+(?:wants|needs)`),
	regexp.MustCompile(`^([A-Z][a-z]+),`),
	regexp.MustCompile(`for\s+([A-Z][a-z]+),`),
	regexp.MustCompile(`([A-Z][a-z]+)\s+phone`),
}

// Common words the name patterns match by accident.
var nameDenylist = map[string]struct{}{
	"yes": {}, "no": {}, "phone": {}, "please": {}, "thanks": {},
	"hello": {}, "okay": {}, "skip": {}, "grab": {},
}

var wasteVocabulary = []string{
	"furniture", "garden waste", "green waste", "household", "rubble",
	"soil", "concrete", "bricks", "wood", "metal", "appliances",
	"mattress", "sofa", "plasterboard",
}

var locationPhrases = []string{
	"driveway", "front garden", "back garden", "roadside", "on the road",
	"garage", "side of house", "rear access",
}

var serviceKeywords = []struct {
	service contractx.ServiceType
	words   []string
}{
	{contractx.ServiceSkip, []string{"skip hire", "yard skip", "skip"}},
	{contractx.ServiceManAndVan, []string{"man and van", "man & van", "mav", "van collection", "clearance"}},
	{contractx.ServiceGrab, []string{"grab hire", "grab lorry", "grab", "wheeler"}},
}

var skipSizes = []struct {
	code  string
	words []string
}{
	{"4yd", []string{"4-yard", "4 yard", "4yd"}},
	{"6yd", []string{"6-yard", "6 yard", "6yd"}},
	{"8yd", []string{"8-yard", "8 yard", "8yd"}},
	{"12yd", []string{"12-yard", "12 yard", "12yd"}},
}

// Extract returns the partial field set found in message.
func Extract(message string) Fields {
	var f Fields
	lower := strings.ToLower(message)

	f.Postcode = extractPostcode(message)
	f.Phone = extractPhone(message)
	f.FirstName = extractName(message, lower)
	f.WasteType = extractWaste(lower)
	f.Location = extractLocation(message, lower)
	f.Service, f.Type = extractService(lower)

	return f
}

func extractPostcode(message string) string {
	m := postcodePattern.FindStringSubmatch(strings.ToUpper(message))
	if m == nil {
		return ""
	}
	normalized := strings.ReplaceAll(m[1], " ", "")
	if len(normalized) < minPostcodeLen {
		return ""
	}
	return normalized
}

func extractPhone(message string) string {
	for _, p := range phonePatterns {
		m := p.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		digits := strings.Join(m[1:], "")
		if len(digits) >= 10 {
			return digits
		}
	}
	return ""
}

func extractName(message, lower string) string {
	for needle, name := range knownCustomers {
		if strings.Contains(lower, needle) {
			return name
		}
	}
	for _, p := range namePatterns {
		m := p.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if _, blocked := nameDenylist[strings.ToLower(candidate)]; blocked {
			continue
		}
		return titleCase(candidate)
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractWaste collects every vocabulary hit, not just the first.
func extractWaste(lower string) string {
	var hits []string
	for _, w := range wasteVocabulary {
		if strings.Contains(lower, w) {
			hits = append(hits, w)
		}
	}
	return strings.Join(hits, ", ")
}

// extractLocation keeps the whole message once any placement phrase appears,
// so the operator sees the caller's own wording.
func extractLocation(message, lower string) string {
	for _, phrase := range locationPhrases {
		if strings.Contains(lower, phrase) {
			return message
		}
	}
	return ""
}

func extractService(lower string) (contractx.ServiceType, string) {
	for _, sk := range serviceKeywords {
		for _, w := range sk.words {
			if strings.Contains(lower, w) {
				return sk.service, extractType(sk.service, lower)
			}
		}
	}
	return "", ""
}

func extractType(service contractx.ServiceType, lower string) string {
	switch service {
	case contractx.ServiceSkip:
		for _, s := range skipSizes {
			for _, w := range s.words {
				if strings.Contains(lower, w) {
					return s.code
				}
			}
		}
	case contractx.ServiceManAndVan:
		for _, size := range []string{"small", "medium", "large"} {
			if strings.Contains(lower, size) {
				return size
			}
		}
	case contractx.ServiceGrab:
		if strings.Contains(lower, "8") && strings.Contains(lower, "tonne") {
			return "8t"
		}
	}
	return ""
}
