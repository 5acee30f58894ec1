package preview

import (
	"regexp"
)

// ArticleType is a coarse classification of an article's narrative
// shape, distinct from its topical category.
type ArticleType string

const (
	TypeStandard    ArticleType = "standard"
	TypeCorrection  ArticleType = "correction"
	TypeDiscovery   ArticleType = "discovery"
	TypeSportsEvent ArticleType = "sports_event"
	TypeCrisis      ArticleType = "crisis"
	TypePolitics    ArticleType = "politics"
)

// TypeRule maps keyword cues to an article type. Rules are evaluated in
// order and the first match wins, so rule order is a contract: a text
// mentioning both "breakthrough" and "election" classifies as discovery.
type TypeRule struct {
	Type     ArticleType
	Keywords []string
}

// Gazetteer holds the pattern data the analyzer matches against. It is
// a value handed to NewAnalyzer so deployments covering other regions
// can swap in their own organizations and locations without code
// changes.
type Gazetteer struct {
	OrgPatterns         []*regexp.Regexp
	OrgAliases          map[string]string
	PeoplePatterns      []*regexp.Regexp
	Locations           []string
	TypeRules           []TypeRule
	CueWords            []string
	BoilerplatePrefixes []string

	ContextByCategory      map[string]string
	SignificanceByCategory map[string]string
}

// DefaultGazetteer covers well-known global organizations plus the East
// African locations the built-in source corpus reports on.
func DefaultGazetteer() *Gazetteer {
	return &Gazetteer{
		OrgPatterns: []*regexp.Regexp{
			// Major tech companies
			regexp.MustCompile(`(?i)\b(?:Amazon|Google|Microsoft|Apple|Facebook|Meta|Twitter|Netflix|Tesla|SpaceX)\b`),
			// Football clubs
			regexp.MustCompile(`(?i)\b(?:Arsenal|Chelsea|Manchester United|Man Utd|Man City|Liverpool|Real Madrid|Barcelona)\b`),
			// Media organizations
			regexp.MustCompile(`(?i)\b(?:BBC|CNN|Reuters|Al Jazeera|The Guardian|New York Times|Wall Street Journal)\b`),
			// International bodies
			regexp.MustCompile(`(?i)\b(?:UN|United Nations|WHO|World Health Organization|EU|European Union|NATO)\b`),
			// Companies by legal suffix
			regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Corp|Inc|Ltd|Group|Company|PLC)\b`),
			// Government bodies
			regexp.MustCompile(`\b(?:The\s+)?[A-Z][a-z]+\s+(?:Government|Administration|Ministry|Department|Agency|Commission)\b`),
		},
		OrgAliases: map[string]string{
			"Man Utd": "Manchester United",
		},
		PeoplePatterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:President|Prime Minister|Minister|CEO|Director|Professor|Dr\.|Mr\.|Ms\.)\s+([A-Z][a-z]+\s+[A-Z][a-z]+)\b`),
			regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+)\s+(?:said|announced|confirmed|added|explained|noted)\b`),
		},
		Locations: []string{
			"Rwanda", "Uganda", "Kenya", "Tanzania", "South Africa", "Nigeria",
			"USA", "United States", "UK", "United Kingdom", "China", "India",
			"London", "Washington", "New York", "Paris", "Tokyo", "Berlin",
			"Kigali", "Nairobi", "Kampala", "Dodoma", "Cairo", "Lagos",
		},
		TypeRules: []TypeRule{
			{TypeCorrection, []string{"apologiz", "sorry", "regret", "mistake", "error", "correction"}},
			{TypeDiscovery, []string{"breakthrough", "discovered", "found", "new study", "research shows", "scientists found"}},
			{TypeSportsEvent, []string{"champions league", "premier league", "world cup", "championship", "tournament", "match", "game"}},
			{TypeCrisis, []string{"crisis", "emergency", "disaster", "outbreak", "attack", "conflict"}},
			{TypePolitics, []string{"election", "vote", "parliament", "senate", "government"}},
		},
		CueWords: []string{
			"said", "announced", "according", "reported", "confirmed",
			"revealed", "found", "discovered", "explained", "added", "noted",
		},
		BoilerplatePrefixes: []string{"©", "Read more", "Share", "Photo:"},

		ContextByCategory: map[string]string{
			"Business":      "Covers economic trends, market movements, corporate news, and financial developments.",
			"Health":        "Reports on medical research, healthcare developments, public health information, and wellness.",
			"World":         "Provides international news coverage, global events, and cross-border developments.",
			"Politics":      "Covers political developments, government policies, elections, and legislative actions.",
			"Entertainment": "Discusses film, television, music, arts, and celebrity news and events.",
			"Science":       "Reports on scientific discoveries, research findings, and academic developments.",
		},
		SignificanceByCategory: map[string]string{
			"Technology": "Tech developments influence business, society, daily life, and future innovation globally.",
			"Business":   "Economic news helps understand market conditions, investment opportunities, and financial trends.",
			"Health":     "Health information is vital for personal wellbeing, medical decisions, and public health awareness.",
			"World":      "International news provides insights into global relations, cultural understanding, and world events.",
			"Science":    "Scientific advances drive innovation, address global challenges, and expand human knowledge.",
			"Sports":     "Sports news reflects cultural interests, competitive entertainment, and athletic achievements.",
			"Politics":   "Political developments shape governance, policy decisions, and societal direction.",
		},
	}
}
