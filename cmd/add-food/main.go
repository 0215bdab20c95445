// CLI tool to add a manually entered food to the food library.
// Existing names are left untouched (the library is append-only).
//
// Usage:
//
//	go run ./cmd/add-food -api http://localhost:3000
//	    adds the item through POST /api/library of a running server.
//	go run ./cmd/add-food
//	    writes the food_library slot directly (run ./cmd/migrate first).
//	    The API must be stopped: it reads slots only at startup and rewrites
//	    the whole library slot on its next change, losing the item.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

// libraryItem mirrors the API's LibraryItem JSON shape.
type libraryItem struct {
	Name            string  `json:"name"`
	CaloriesPerUnit float64 `json:"calories_per_unit"`
	Unit            string  `json:"unit"`
}

func main() {
	apiURL := flag.String("api", "", "base URL of a running API; when empty the database slot is written directly")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Food name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Unit (e.g. 100g, slice): ")
	unit, _ := reader.ReadString('\n')
	unit = strings.TrimSpace(unit)

	fmt.Print("Calories per unit: ")
	calStr, _ := reader.ReadString('\n')
	calories, err := strconv.ParseFloat(strings.TrimSpace(calStr), 64)

	item := libraryItem{Name: name, Unit: unit, CaloriesPerUnit: calories}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Calories must be a number: %v\n", err)
		os.Exit(1)
	}
	if err := validate(item); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid food: %v\n", err)
		os.Exit(1)
	}

	if *apiURL != "" {
		client := &http.Client{Timeout: 10 * time.Second}
		added, err := addViaAPI(ctx, client, *apiURL, item)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error adding food: %v\n", err)
			os.Exit(1)
		}
		if !added {
			fmt.Printf("\n%q is already in the library; nothing changed.\n", name)
			return
		}
		fmt.Printf("\nFood added successfully through %s\n", *apiURL)
		return
	}

	conn, err := pgx.Connect(ctx, os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	items, err := loadLibrary(ctx, conn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading food library: %v\n", err)
		os.Exit(1)
	}
	items, added := appendIfAbsent(items, item)
	if !added {
		fmt.Printf("\n%q is already in the library; nothing changed.\n", name)
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding food library: %v\n", err)
		os.Exit(1)
	}
	_, err = conn.Exec(ctx,
		`INSERT INTO kv_slots (key, value, updated_at)
		 VALUES ('food_library', $1::jsonb, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		string(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving food library: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nFood added successfully!\n")
	fmt.Printf("  Name:     %s\n", item.Name)
	fmt.Printf("  Unit:     %s\n", item.Unit)
	fmt.Printf("  Calories: %g per unit\n", item.CaloriesPerUnit)
	fmt.Printf("  Library:  %d item(s)\n", len(items))
}

// loadLibrary reads the food_library slot. A missing slot is an empty library.
func loadLibrary(ctx context.Context, conn *pgx.Conn) ([]libraryItem, error) {
	var raw []byte
	err := conn.QueryRow(ctx, "SELECT value FROM kv_slots WHERE key = 'food_library'").Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []libraryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode food_library: %w", err)
	}
	return items, nil
}

func validate(item libraryItem) error {
	switch {
	case item.Name == "":
		return errors.New("name is required")
	case item.Unit == "":
		return errors.New("unit is required")
	case item.CaloriesPerUnit < 0:
		return errors.New("calories must not be negative")
	}
	return nil
}

// appendIfAbsent appends item unless an item with the same name exists.
func appendIfAbsent(items []libraryItem, item libraryItem) ([]libraryItem, bool) {
	for _, it := range items {
		if it.Name == item.Name {
			return items, false
		}
	}
	return append(items, item), true
}

// addViaAPI posts item to the library endpoint of a running server. Reports
// false when the name already exists (409).
func addViaAPI(ctx context.Context, client *http.Client, baseURL string, item libraryItem) (bool, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/api/library", bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return true, nil
	case http.StatusConflict:
		return false, nil
	}
	msg, _ := io.ReadAll(resp.Body)
	return false, fmt.Errorf("API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
}
