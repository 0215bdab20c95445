package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com"
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultAITimeout     = 15 * time.Second
	defaultAddr          = "localhost:3000"
)

// legacyOpenAIBaseURLs are old built-in defaults. A config still pointing at one
// of them with no key is treated as never configured and upgraded once.
var legacyOpenAIBaseURLs = []string{
	"https://api.openai.com/v1",
	"http://api.openai.com",
}

// config is the process configuration, read from the environment after an
// optional .env file.
type config struct {
	Addr          string
	DBURL         string
	OpenAIBaseURL string
	OpenAIKey     string
	OpenAIModel   string
	AITimeout     time.Duration
}

// loadConfig loads .env (if present) and reads the environment.
func loadConfig() config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[loadConfig] .env: %v", err)
	}
	return configFromEnv(os.Getenv)
}

// configFromEnv builds a config from getenv, applying defaults.
func configFromEnv(getenv func(string) string) config {
	cfg := config{
		Addr:          getenv("ADDR"),
		DBURL:         getenv("DB_URL"),
		OpenAIBaseURL: strings.TrimRight(getenv("OPENAI_BASE_URL"), "/"),
		OpenAIKey:     getenv("OPENAI_API_KEY"),
		OpenAIModel:   getenv("OPENAI_MODEL"),
		AITimeout:     defaultAITimeout,
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = defaultOpenAIModel
	}
	if cfg.OpenAIBaseURL == "" {
		cfg.OpenAIBaseURL = defaultOpenAIBaseURL
	}
	if cfg.OpenAIKey == "" {
		for _, legacy := range legacyOpenAIBaseURLs {
			if cfg.OpenAIBaseURL == legacy {
				log.Printf("[loadConfig] upgrading legacy default base URL %s to %s", legacy, defaultOpenAIBaseURL)
				cfg.OpenAIBaseURL = defaultOpenAIBaseURL
				break
			}
		}
	}
	if s := getenv("AI_TIMEOUT_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.AITimeout = time.Duration(n) * time.Second
		} else {
			log.Printf("[loadConfig] ignoring invalid AI_TIMEOUT_SECONDS=%q", s)
		}
	}
	return cfg
}
