package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAppendIfAbsent(t *testing.T) {
	items := []libraryItem{{Name: "Apple", Unit: "each", CaloriesPerUnit: 95}}

	got, added := appendIfAbsent(items, libraryItem{Name: "Apple", Unit: "each", CaloriesPerUnit: 200})
	if added || len(got) != 1 || got[0].CaloriesPerUnit != 95 {
		t.Errorf("existing name must not be overwritten, got %+v added=%v", got, added)
	}

	got, added = appendIfAbsent(items, libraryItem{Name: "apple", Unit: "each", CaloriesPerUnit: 90})
	if !added || len(got) != 2 {
		t.Errorf("names are case-sensitive; expected a second item, got %+v", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		item    libraryItem
		wantErr bool
	}{
		{"valid", libraryItem{Name: "Rice", Unit: "100g", CaloriesPerUnit: 130}, false},
		{"zero calories ok", libraryItem{Name: "Water", Unit: "cup", CaloriesPerUnit: 0}, false},
		{"missing name", libraryItem{Unit: "cup", CaloriesPerUnit: 1}, true},
		{"missing unit", libraryItem{Name: "Rice", CaloriesPerUnit: 1}, true},
		{"negative calories", libraryItem{Name: "Rice", Unit: "100g", CaloriesPerUnit: -1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validate(tc.item); (err != nil) != tc.wantErr {
				t.Errorf("validate(%+v) err = %v, wantErr %v", tc.item, err, tc.wantErr)
			}
		})
	}
}

// TestAddViaAPI checks the CLI goes through the library endpoint and reads its
// status codes.
func TestAddViaAPI(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		wantAdded bool
		wantErr   bool
	}{
		{"created", http.StatusCreated, true, false},
		{"duplicate", http.StatusConflict, false, false},
		{"bad request", http.StatusBadRequest, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got libraryItem
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/library" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":"x"}`))
			}))
			defer server.Close()

			item := libraryItem{Name: "Rice", Unit: "100g", CaloriesPerUnit: 130}
			added, err := addViaAPI(context.Background(), server.Client(), server.URL+"/", item)
			if added != tc.wantAdded || (err != nil) != tc.wantErr {
				t.Errorf("addViaAPI = %v, %v; want added=%v wantErr=%v", added, err, tc.wantAdded, tc.wantErr)
			}
			if got != item {
				t.Errorf("server received %+v, want %+v", got, item)
			}
		})
	}
}
