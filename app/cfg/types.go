package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	Port           string
	SourcesFile    string
	WorkerCount    int
	FetchInterval  int
	RunArticleCap  int
	PerFeedLimit   int
	FeedTimeout    int
	ArticleTimeout int
	APIAccessKey   string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
