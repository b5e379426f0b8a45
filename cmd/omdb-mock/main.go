// Command omdb-mock serves canned OMDb responses for local development, so
// the service can run without a real API key.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
)

type movieEntry struct {
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Rated    string `json:"Rated"`
	Released string `json:"Released"`
	Runtime  string `json:"Runtime"`
	Genre    string `json:"Genre"`
	Director string `json:"Director"`
	Writer   string `json:"Writer"`
	Actors   string `json:"Actors"`
	Plot     string `json:"Plot"`
	Response string `json:"Response"`
}

func main() {
	var (
		port    = flag.String("port", "9099", "port to listen on")
		data    = flag.String("data", "mock-omdb.json", "path to mock data file")
		verbose = flag.Bool("log", false, "enable request logging")
	)
	flag.Parse()

	file, err := os.ReadFile(*data)
	if err != nil {
		log.Fatalf("read mock data: %v", err)
	}

	var payload map[string]movieEntry
	if err := json.Unmarshal(file, &payload); err != nil {
		log.Fatalf("parse mock data: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		imdbID := r.URL.Query().Get("i")
		w.Header().Set("Content-Type", "application/json")

		entry, ok := payload[imdbID]
		if !ok {
			// OMDb reports misses inside a 200 response.
			_ = json.NewEncoder(w).Encode(map[string]string{
				"Response": "False",
				"Error":    "Incorrect IMDb ID.",
			})
			return
		}
		entry.Response = "True"
		if *verbose {
			log.Printf("served %s (%s)", imdbID, entry.Title)
		}
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	addr := ":" + *port
	log.Printf("mock omdb listening on %s (%d entries)", addr, len(payload))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
