package sources

// Built-in feed corpus: international wires, East African outlets, and
// per-category sources. Overridable at startup via a YAML file.
func defaultSources() []Source {
	return []Source{
		// International
		{Name: "BBC Top Stories", URL: "https://feeds.bbci.co.uk/news/rss.xml", Language: "en", Category: "General", Country: "UK", Reliability: 9, ExtractContent: true},
		{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Language: "en", Category: "World", Country: "UK", Reliability: 9, ExtractContent: true},
		{Name: "BBC Technology", URL: "https://feeds.bbci.co.uk/news/technology/rss.xml", Language: "en", Category: "Technology", Country: "UK", Reliability: 9, ExtractContent: true},
		{Name: "BBC Business", URL: "https://feeds.bbci.co.uk/news/business/rss.xml", Language: "en", Category: "Business", Country: "UK", Reliability: 9, ExtractContent: true},
		{Name: "Reuters World", URL: "https://www.reuters.com/arc/outboundfeeds/rss/?outputType=xml", Language: "en", Category: "World", Country: "International", Reliability: 9, ExtractContent: true},
		{Name: "CNN Top Stories", URL: "http://rss.cnn.com/rss/edition.rss", Language: "en", Category: "General", Country: "USA", Reliability: 8, ExtractContent: true},
		{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Language: "en", Category: "World", Country: "Qatar", Reliability: 8, ExtractContent: true},
		{Name: "The Guardian", URL: "https://www.theguardian.com/world/rss", Language: "en", Category: "World", Country: "UK", Reliability: 9, ExtractContent: true},
		{Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Language: "en", Category: "Technology", Country: "USA", Reliability: 8, ExtractContent: true},
		{Name: "Wired", URL: "https://www.wired.com/feed/rss", Language: "en", Category: "Technology", Country: "USA", Reliability: 8, ExtractContent: true},
		{Name: "Bloomberg", URL: "https://feeds.bloomberg.com/markets/news.rss", Language: "en", Category: "Business", Country: "USA", Reliability: 8, ExtractContent: true},

		// East African
		{Name: "IGIHE", URL: "https://en.igihe.com/rss", Language: "en", Category: "General", Country: "Rwanda", Reliability: 7, ExtractContent: true},
		{Name: "New Times Rwanda", URL: "https://www.newtimes.co.rw/rss", Language: "en", Category: "General", Country: "Rwanda", Reliability: 7, ExtractContent: true},
		{Name: "KT Press", URL: "https://www.ktpress.rw/feed/", Language: "en", Category: "General", Country: "Rwanda", Reliability: 7, ExtractContent: true},
		{Name: "BBC News Kinyarwanda", URL: "https://www.bbc.com/gahuza/rss.xml", Language: "rw", Category: "General", Country: "Rwanda", Reliability: 9, ExtractContent: true},
		{Name: "AllAfrica", URL: "https://allafrica.com/tools/headlines/rdf/latest/headlines.rdf", Language: "en", Category: "World", Country: "International", Reliability: 7, ExtractContent: true},
		{Name: "The EastAfrican", URL: "https://www.theeastafrican.co.ke/rss", Language: "en", Category: "World", Country: "Kenya", Reliability: 8, ExtractContent: true},

		// Sports
		{Name: "ESPN", URL: "http://www.espn.com/espn/rss/news", Language: "en", Category: "Sports", Country: "USA", Reliability: 8, ExtractContent: true},
		{Name: "BBC Sports", URL: "https://feeds.bbci.co.uk/sport/rss.xml", Language: "en", Category: "Sports", Country: "UK", Reliability: 9, ExtractContent: true},

		// Health & Science
		{Name: "BBC Health", URL: "https://feeds.bbci.co.uk/news/health/rss.xml", Language: "en", Category: "Health", Country: "UK", Reliability: 9, ExtractContent: true},
		{Name: "Science Daily", URL: "https://www.sciencedaily.com/rss/all.xml", Language: "en", Category: "Science", Country: "USA", Reliability: 8, ExtractContent: true},

		// Entertainment
		{Name: "BBC Entertainment", URL: "https://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml", Language: "en", Category: "Entertainment", Country: "UK", Reliability: 9, ExtractContent: true},
		{Name: "Variety", URL: "https://variety.com/feed/", Language: "en", Category: "Entertainment", Country: "USA", Reliability: 8, ExtractContent: true},
	}
}
