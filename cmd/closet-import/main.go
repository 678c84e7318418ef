// closet-import uploads a JSON export of a legacy locally-cached closet to a
// digiCloset server. Items are imported one at a time server-side; failures
// are tallied, not fatal.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

type legacyItem struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	Material string `json:"material"`
	Category string `json:"category"`
	Color    string `json:"color"`
	Brand    string `json:"brand"`
}

type importResult struct {
	Migrated int `json:"migrated"`
	Failed   int `json:"failed"`
}

func main() {
	fs := flag.NewFlagSet("closet-import", flag.ContinueOnError)

	var server string
	fs.StringVar(&server, "server", "http://localhost:8080", "")

	var username, password, token string
	fs.StringVar(&username, "user", "", "")
	fs.StringVar(&password, "password", "", "")
	fs.StringVar(&token, "token", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: closet-import [flags] <export.json>

Uploads a legacy closet export (a JSON array of items) to a digiCloset server.

Flags:
  -server <url>       server base URL (default: http://localhost:8080)
  -user <name>        username to log in with
  -password <pass>    password to log in with
  -token <jwt>        bearer token (alternative to user/password)
  -h, -help           show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var items []legacyItem
	if err := json.Unmarshal(data, &items); err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid export file: %v\n", err)
		os.Exit(1)
	}

	if len(items) == 0 {
		fmt.Println("No items to import.")
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}

	if token == "" {
		if username == "" || password == "" {
			fmt.Fprintln(os.Stderr, "error: either -token or -user and -password are required")
			os.Exit(1)
		}
		token, err = login(client, server, username, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Importing %d items...\n", len(items))

	result, err := importItems(client, server, token, items)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Import complete: %d migrated, %d failed.\n", result.Migrated, result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}

// login exchanges a username and password for a bearer token.
func login(client *http.Client, server, username, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := client.Post(server+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed: status %d", resp.StatusCode)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", fmt.Errorf("decoding login response: %w", err)
	}
	if loginResp.Token == "" {
		return "", fmt.Errorf("login returned an empty token")
	}
	return loginResp.Token, nil
}

// importItems sends the legacy items to the server's import endpoint.
func importItems(client *http.Client, server, token string, items []legacyItem) (*importResult, error) {
	body, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding items: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, server+"/api/clothes/import", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building import request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("importing items: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("import failed: status %d", resp.StatusCode)
	}

	var result importResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding import response: %w", err)
	}
	return &result, nil
}
