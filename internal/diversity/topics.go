// Package diversity bounds and balances generated record sets so a study
// session covers a spread of difficulties or topics instead of whatever the
// model happened to emit first.
package diversity

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultTopic is returned when no category keyword matches.
const DefaultTopic = "General"

// topicCategories maps a category label to the keyword pattern that scores
// it. Patterns are matched case-insensitively against the whole text.
var topicCategories = map[string]*regexp.Regexp{
	"Administration":        keywordPattern("admin", "correspondence", "instruction", "directive", "evaluation", "eval", "fitrep", "award", "page 13", "service record"),
	"Aviation":              keywordPattern("aircraft", "aviation", "squadron", "flight deck", "airframe", "avionics", "ordnance loading", "catapult", "arresting gear"),
	"Career Development":    keywordPattern("advancement", "promotion", "rating exam", "bibs", "career counselor", "reenlistment", "retention", "c-way", "cway"),
	"Communications":        keywordPattern("radio", "comms", "communications", "message traffic", "navadmin", "genadmin", "circuit", "frequency", "crypto"),
	"Damage Control":        keywordPattern("damage control", "firefighting", "flooding", "dewatering", "overhaul", "repair locker", "halon", "afff", "oba", "scba"),
	"Deck Seamanship":       keywordPattern("mooring", "anchor", "line handling", "boatswain", "rigging", "underway replenishment", "unrep", "helm", "deck"),
	"Engineering":           keywordPattern("engineering", "turbine", "boiler", "propulsion", "machinery", "lube oil", "fuel oil", "generator", "shaft"),
	"Electronics":           keywordPattern("electronics", "radar", "sonar", "circuit card", "transmitter", "receiver", "waveguide", "antenna"),
	"First Aid":             keywordPattern("first aid", "cpr", "tourniquet", "bleeding", "shock", "fracture", "airway", "casualty care"),
	"Food Service":          keywordPattern("galley", "food service", "culinary", "mess deck", "ration", "menu"),
	"Heritage And History":  keywordPattern("history", "heritage", "tradition", "battle of", "john paul jones", "navy birthday", "midway", "coral sea"),
	"Information Security":  keywordPattern("classified", "security clearance", "opsec", "infosec", "cybersecurity", "cyber", "information assurance", "pii"),
	"Intelligence":          keywordPattern("intelligence", "surveillance", "reconnaissance", "imagery", "analysis", "collection"),
	"Leadership":            keywordPattern("leadership", "counseling", "mentor", "chief petty officer", "cpo", "lpo", "delegation", "accountability"),
	"Legal":                 keywordPattern("ucmj", "article 15", "captain's mast", "njp", "court-martial", "legal officer"),
	"Logistics":             keywordPattern("supply", "logistics", "requisition", "inventory", "nsn", "milstrip", "stock"),
	"Medical":               keywordPattern("medical", "corpsman", "sick call", "immunization", "pharmacy", "triage", "physical exam"),
	"Navigation":            keywordPattern("navigation", "chart", "bearing", "fix", "gyro", "compass", "piloting", "dead reckoning", "gps"),
	"Physical Readiness":    keywordPattern("physical readiness", "prt", "pfa", "body composition", "bca", "fitness", "run time"),
	"Safety":                keywordPattern("safety", "hazard", "mishap", "orm", "operational risk", "ppe", "tagout", "tag-out", "lockout"),
	"Security Forces":       keywordPattern("security forces", "watch standing", "sentry", "force protection", "antiterrorism", "use of force", "deadly force"),
	"Submarine Warfare":     keywordPattern("submarine", "ballast", "dive", "periscope", "torpedo", "trim", "escape trunk"),
	"Surface Warfare":       keywordPattern("surface warfare", "esws", "combat systems", "bridge watch", "ship class", "destroyer", "cruiser", "frigate"),
	"Uniforms And Grooming": keywordPattern("uniform", "grooming", "insignia", "ribbon", "ball cap", "nwu", "dress blues", "dress whites"),
	"Weapons":               keywordPattern("weapon", "small arms", "m9", "m16", "m500", "marksmanship", "missile", "gun mount", "magazine"),
}

// ratingCodes maps Navy enlisted rating abbreviations to specialty names.
// Checked before keyword scoring because a rating code in a title is a far
// stronger signal than prose keywords.
var ratingCodes = map[string]string{
	"AB":  "Aviation Boatswain's Mate",
	"ABE": "Aviation Boatswain's Mate (Launching and Recovery)",
	"ABF": "Aviation Boatswain's Mate (Fuels)",
	"ABH": "Aviation Boatswain's Mate (Aircraft Handling)",
	"AC":  "Air Traffic Controller",
	"AD":  "Aviation Machinist's Mate",
	"AE":  "Aviation Electrician's Mate",
	"AG":  "Aerographer's Mate",
	"AM":  "Aviation Structural Mechanic",
	"AME": "Aviation Structural Mechanic (Safety Equipment)",
	"AO":  "Aviation Ordnanceman",
	"AS":  "Aviation Support Equipment Technician",
	"AT":  "Aviation Electronics Technician",
	"AWF": "Naval Aircrewman (Mechanical)",
	"AWO": "Naval Aircrewman (Operator)",
	"AWR": "Naval Aircrewman (Tactical Helicopter)",
	"AWS": "Naval Aircrewman (Helicopter)",
	"AZ":  "Aviation Maintenance Administrationman",
	"BM":  "Boatswain's Mate",
	"BU":  "Builder",
	"CE":  "Construction Electrician",
	"CM":  "Construction Mechanic",
	"CS":  "Culinary Specialist",
	"CTI": "Cryptologic Technician (Interpretive)",
	"CTM": "Cryptologic Technician (Maintenance)",
	"CTR": "Cryptologic Technician (Collection)",
	"CTT": "Cryptologic Technician (Technical)",
	"DC":  "Damage Controlman",
	"EA":  "Engineering Aide",
	"EM":  "Electrician's Mate",
	"EN":  "Engineman",
	"EO":  "Equipment Operator",
	"EOD": "Explosive Ordnance Disposal Technician",
	"ET":  "Electronics Technician",
	"FC":  "Fire Controlman",
	"FT":  "Fire Control Technician",
	"GM":  "Gunner's Mate",
	"GS":  "Gas Turbine Systems Technician",
	"HM":  "Hospital Corpsman",
	"HT":  "Hull Maintenance Technician",
	"IC":  "Interior Communications Electrician",
	"IS":  "Intelligence Specialist",
	"IT":  "Information Systems Technician",
	"LN":  "Legalman",
	"LS":  "Logistics Specialist",
	"MA":  "Master-at-Arms",
	"MC":  "Mass Communication Specialist",
	"MM":  "Machinist's Mate",
	"MN":  "Mineman",
	"MR":  "Machinery Repairman",
	"MT":  "Missile Technician",
	"MU":  "Musician",
	"ND":  "Navy Diver",
	"OS":  "Operations Specialist",
	"PR":  "Aircrew Survival Equipmentman",
	"PS":  "Personnel Specialist",
	"QM":  "Quartermaster",
	"RP":  "Religious Program Specialist",
	"RS":  "Retail Services Specialist",
	"SB":  "Special Warfare Boat Operator",
	"SO":  "Special Warfare Operator",
	"STG": "Sonar Technician (Surface)",
	"STS": "Sonar Technician (Submarine)",
	"SW":  "Steelworker",
	"UT":  "Utilitiesman",
	"YN":  "Yeoman",
}

var ratingToken = regexp.MustCompile(`\b[A-Z]{2,3}\b`)

func keywordPattern(keywords ...string) *regexp.Regexp {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)
}

// ExtractTopic scores every category by keyword match count and returns the
// highest scorer, or DefaultTopic when nothing matches. Ties break
// alphabetically by category name so the result is deterministic.
func ExtractTopic(text string) string {
	if strings.TrimSpace(text) == "" {
		return DefaultTopic
	}

	best := DefaultTopic
	bestCount := 0

	names := make([]string, 0, len(topicCategories))
	for name := range topicCategories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		count := len(topicCategories[name].FindAllStringIndex(text, -1))
		if count > bestCount {
			best = name
			bestCount = count
		}
	}
	return best
}

// ExtractTopicFromContext first looks for a known rating code token in the
// title, then in the first paragraph, and returns its specialty name.
// Keyword scoring is the fallback when no rating code appears.
func ExtractTopicFromContext(title, firstParagraph string) string {
	for _, source := range []string{title, firstParagraph} {
		for _, token := range ratingToken.FindAllString(source, -1) {
			if specialty, ok := ratingCodes[token]; ok {
				return specialty
			}
		}
	}
	return ExtractTopic(title + " " + firstParagraph)
}
