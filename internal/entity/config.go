package entity

// Dialect names accepted in the configuration.
const (
	DialectBlogger1       = "blogger1"
	DialectMetaWeblog     = "metaweblog"
	DialectMovableType    = "movabletype"
	DialectWordpressBuggy = "wordpressbuggy"
	DialectGData          = "gdata"
)

type Config struct {
	// URL is the XML-RPC endpoint (or the blog URL for the GData dialect).
	URL      string `json:"url" env:"BLOGWIRE_URL"`
	BlogID   string `json:"blogId" env:"BLOGWIRE_BLOG_ID"`
	Username string `json:"username" env:"BLOGWIRE_USERNAME"`
	Password string `json:"password" env:"BLOGWIRE_PASSWORD"`
	Dialect  string `json:"dialect" env:"BLOGWIRE_DIALECT"`
	// FullName is the author name sent by the GData dialect.
	FullName string `json:"fullName,omitempty" env:"BLOGWIRE_FULL_NAME"`
	// DataDir is where category snapshots are persisted. Ignored when
	// RedisAddr is set.
	DataDir   string `json:"dataDir,omitempty" env:"BLOGWIRE_DATA_DIR"`
	RedisAddr string `json:"redisAddr,omitempty" env:"BLOGWIRE_REDIS_ADDR"`
	// TimeoutSeconds bounds every network call. Zero means the default.
	TimeoutSeconds int `json:"timeoutSeconds,omitempty" env:"BLOGWIRE_TIMEOUT_SECONDS"`
}
