package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set properties of the predefined Logger: the log entry
	// prefix and the standard date and time flags.
	log.SetPrefix("lg/energy-balance-api: ")
	log.SetFlags(log.LstdFlags)

	cfg := loadConfig()

	// Without DB_URL the session lives in memory only and is lost on restart.
	var store kvStore
	if cfg.DBURL != "" {
		pool := getDBPool(cfg.DBURL)
		defer pool.Close()
		store = &pgStore{db: pool}
	} else {
		log.Printf("[main] DB_URL not set, using in-memory storage")
		store = newMemoryStore()
	}

	sess := loadSession(context.Background(), store)
	h := newHandler(sess, newOpenAIResolver(cfg), cfg.AITimeout)

	fmt.Println("Starting gin app...")

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("[main] server stopped: %v", err)
	}
}
