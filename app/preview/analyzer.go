package preview

import (
	"fmt"
	"strings"
)

const (
	maxKeyPoints       = 3
	keyPointScanWindow = 8
	minKeyPointLength  = 30
	fallbackScanWindow = 4
	minFallbackLength  = 25

	maxOrganizations = 8
	maxPeople        = 5
	maxLocations     = 5
)

// Input carries the article fields the analyzer inspects. FullContent
// may be empty, in which case Description stands in for the body.
type Input struct {
	Title       string
	Description string
	FullContent string
	Category    string
	Source      string
}

// Entities groups the named entities recognized in an article, each
// list in first-occurrence order with duplicates removed.
type Entities struct {
	Organizations []string
	People        []string
	Locations     []string
}

// Analysis is the structured result of analyzing one article.
type Analysis struct {
	KeyPoints    []string
	Entities     Entities
	ArticleType  ArticleType
	Context      string
	Significance string
}

// Analyzer derives key points, entities, article type, and explanatory
// text from article content using pattern matching against a gazetteer.
// It holds no mutable state: Run is a pure function of its input, so a
// single Analyzer is safe for concurrent use.
type Analyzer struct {
	gaz *Gazetteer
}

func NewAnalyzer(gaz *Gazetteer) *Analyzer {
	if gaz == nil {
		gaz = DefaultGazetteer()
	}
	return &Analyzer{gaz: gaz}
}

// Run analyzes a single article. Identical inputs always produce
// identical results.
func (a *Analyzer) Run(in Input) Analysis {
	// Best available text: whichever of full content and description
	// carries more of the article.
	body := in.FullContent
	if len(in.Description) > len(body) {
		body = in.Description
	}
	text := in.Title + ". " + body
	lower := strings.ToLower(text)

	articleType := a.classify(lower)
	entities := a.extractEntities(text)
	return Analysis{
		KeyPoints:    a.extractKeyPoints(body),
		Entities:     entities,
		ArticleType:  articleType,
		Context:      a.generateContext(in, articleType, entities, lower),
		Significance: a.generateSignificance(in, articleType, lower),
	}
}

func (a *Analyzer) classify(lower string) ArticleType {
	for _, rule := range a.gaz.TypeRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Type
			}
		}
	}
	return TypeStandard
}

func (a *Analyzer) extractKeyPoints(body string) []string {
	sentences := splitSentences(body)

	var points []string
	for i, s := range sentences {
		if i >= keyPointScanWindow || len(points) >= maxKeyPoints {
			break
		}
		if len(s) <= minKeyPointLength || a.isBoilerplate(s) {
			continue
		}
		if containsAny(strings.ToLower(s), a.gaz.CueWords) {
			points = append(points, s)
		}
	}
	if len(points) > 0 {
		return points
	}

	// No reporting-style sentences: fall back to the opening sentences.
	for i, s := range sentences {
		if i >= fallbackScanWindow || len(points) >= maxKeyPoints {
			break
		}
		if len(s) > minFallbackLength && !a.isBoilerplate(s) {
			points = append(points, s)
		}
	}
	return points
}

func (a *Analyzer) isBoilerplate(s string) bool {
	for _, prefix := range a.gaz.BoilerplatePrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func (a *Analyzer) extractEntities(text string) Entities {
	var ents Entities

	seenOrgs := make(map[string]bool)
	for _, re := range a.gaz.OrgPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			org := a.normalizeOrg(strings.TrimSpace(m[0]))
			if org != "" && !seenOrgs[org] && len(ents.Organizations) < maxOrganizations {
				seenOrgs[org] = true
				ents.Organizations = append(ents.Organizations, org)
			}
		}
	}

	seenPeople := make(map[string]bool)
	for _, re := range a.gaz.PeoplePatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if name != "" && !seenPeople[name] && len(ents.People) < maxPeople {
				seenPeople[name] = true
				ents.People = append(ents.People, name)
			}
		}
	}

	lower := strings.ToLower(text)
	for _, loc := range a.gaz.Locations {
		if len(ents.Locations) >= maxLocations {
			break
		}
		if strings.Contains(lower, strings.ToLower(loc)) {
			ents.Locations = append(ents.Locations, loc)
		}
	}

	return ents
}

func (a *Analyzer) normalizeOrg(org string) string {
	if canonical, ok := a.gaz.OrgAliases[org]; ok {
		return canonical
	}
	return org
}

func (a *Analyzer) generateContext(in Input, articleType ArticleType, ents Entities, lower string) string {
	if in.Category == "Sports" {
		if strings.Contains(lower, "champions league") {
			return "The UEFA Champions League is Europe's premier club football competition, featuring the continent's top teams."
		}
		for _, org := range ents.Organizations {
			switch org {
			case "Arsenal", "Chelsea", "Manchester United", "Liverpool":
				return "The English Premier League is one of the world's most-watched football leagues."
			}
		}
		return "Covers sporting events, competitions, athlete performances, and team developments."
	}

	// Region-specific text outranks the technology-company text.
	for _, loc := range ents.Locations {
		if loc == "Rwanda" {
			switch in.Category {
			case "Business":
				return "Rwanda has one of Africa's fastest-growing economies, with a focus on technology and service sectors."
			case "General":
				return "Rwanda, known as the land of a thousand hills, has seen significant development and transformation in recent decades."
			default:
				return "This story relates to Rwanda, a country in East Africa noted for its rapid post-1994 development."
			}
		}
	}

	if in.Category == "Technology" {
		for _, org := range ents.Organizations {
			switch org {
			case "Amazon", "Google", "Microsoft", "Apple", "Meta":
				return fmt.Sprintf("%s is one of the world's largest technology companies, and its decisions shape the broader industry.", org)
			}
		}
		return "Covers developments in the technology sector, including innovation, digital trends, and industry changes."
	}

	switch articleType {
	case TypeSportsEvent:
		return "Sporting events bring together competitors and fans, often carrying implications for rankings and future fixtures."
	case TypeDiscovery:
		return "New discoveries and research findings contribute to our expanding understanding of the world."
	case TypeCorrection:
		return "News organizations issue corrections to maintain accuracy and accountability in their reporting."
	}

	if ctx, ok := a.gaz.ContextByCategory[in.Category]; ok {
		return ctx
	}
	return fmt.Sprintf("Provides coverage of %s news and current developments.", strings.ToLower(in.Category))
}

func (a *Analyzer) generateSignificance(in Input, articleType ArticleType, lower string) string {
	switch articleType {
	case TypeCorrection:
		return "Media corrections maintain journalistic integrity and public trust in news reporting."
	case TypeDiscovery:
		return "Scientific discoveries advance human knowledge and can lead to practical applications that improve lives."
	case TypeSportsEvent:
		if strings.Contains(lower, "champions league") {
			return "Champions League matches determine Europe's top football club and carry major sporting and financial stakes."
		}
		return "Sports events provide entertainment and can affect team standings, player careers, and fan communities."
	case TypeCrisis:
		return "Crisis events require public awareness and can have wide-reaching effects on communities and policy."
	}

	if sig, ok := a.gaz.SignificanceByCategory[in.Category]; ok {
		return sig
	}
	return "This news provides important information for staying informed about current events and developments."
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// splitSentences breaks text on sentence-ending punctuation followed by
// whitespace. The terminator stays attached to its sentence.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		b.WriteRune(runes[i])
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				if s := strings.TrimSpace(b.String()); s != "" {
					sentences = append(sentences, s)
				}
				b.Reset()
			}
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
