// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns the API server Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

ParseWebFlags returns the WebConfig for the pollweb client:

	cfg, err := cliparse.ParseWebFlags(os.Args[1:])

# Sources

Values are resolved in three layers, later layers winning:

 1. A .env file in the working directory (optional, via godotenv)
 2. Environment variables (via cleanenv struct tags, with defaults)
 3. CLI flags

# API Server

	PORT          -p     Server port (default: 4000)
	DATABASE_URL  -d     Database DSN (required)
	DATABASE_TYPE -t     sqlite (default), postgres or pgx
	CORS_ORIGINS         Comma-separated allowed origins
	APP_ENV       -env   local (default), dev or prod

# Web Client

	WEB_PORT       -p               Server port (default: 5173)
	API_URL        -api             Poll API base URL (default: http://localhost:4000)
	SESSION_SECRET -session-secret  Cookie signing secret (required)
	APP_ENV        -env             local (default), dev or prod

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(store.New(db), cfg)
*/
package cliparse
