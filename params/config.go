package params

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Oracle struct {
	// URL is the base URL of the quote provider. The special value
	// "static" selects the built-in fixed-price oracle (offline mode).
	URL     string
	Timeout time.Duration // per-quote deadline; expiry surfaces as price-unavailable
}

type API struct {
	Addr        string
	CORSOrigins []string
}

type Node struct {
	// ID seeds the execution ID generator. Distinct processes feeding a
	// shared downstream consumer must use distinct IDs.
	ID int64
}

type Config struct {
	Oracle Oracle
	API    API
	Node   Node
}

func Default() Config {
	return Config{
		Oracle: Oracle{
			URL:     "https://query1.finance.yahoo.com",
			Timeout: 5 * time.Second,
		},
		API: API{
			Addr:        ":3000",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:3001"},
		},
		Node: Node{ID: 1},
	}
}

// LoadFromEnv loads configuration from .env file (if exists) and environment variables
// Priority: ENV > .env file > defaults
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	// Try to load .env file (optional - won't fail if not exists)
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load() // loads .env from current directory
	}

	if url := os.Getenv("ORACLE_URL"); url != "" {
		cfg.Oracle.URL = url
	}

	if timeout := os.Getenv("ORACLE_TIMEOUT_MS"); timeout != "" {
		if ms, err := strconv.Atoi(timeout); err == nil {
			cfg.Oracle.Timeout = time.Duration(ms) * time.Millisecond
		}
	}

	if addr := os.Getenv("API_ADDR"); addr != "" {
		cfg.API.Addr = addr
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		// Example: "http://localhost:3000,https://venue.example.com"
		cfg.API.CORSOrigins = strings.Split(origins, ",")
	}

	if id := os.Getenv("NODE_ID"); id != "" {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			cfg.Node.ID = n
		}
	}

	return cfg
}
