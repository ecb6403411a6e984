package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"
)

const apiBase = "http://localhost:8080/api/v1"

type Member struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Token    string `json:"token"`
	UserID   string `json:"userId"`
}

type AuthResponse struct {
	User struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		IsAdmin bool   `json:"isAdmin"`
	} `json:"user"`
	AccessToken string `json:"accessToken"`
}

type ResetResponse struct {
	SeasonNumber int `json:"seasonNumber"`
	NextPickers  []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"nextPickers"`
	TotalUsers      int `json:"totalUsers"`
	RemainingInPool int `json:"remainingInPool"`
}

func registerMember(name, password string) (*Member, error) {
	body, _ := json.Marshal(map[string]string{
		"name":     name,
		"password": password,
	})

	resp, err := http.Post(apiBase+"/auth/register", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("registration failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &Member{
		Name:     result.User.Name,
		Password: password,
		Token:    result.AccessToken,
		UserID:   result.User.ID,
	}, nil
}

func login(name, password string) (*Member, error) {
	body, _ := json.Marshal(map[string]string{
		"name":     name,
		"password": password,
	})

	resp, err := http.Post(apiBase+"/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("login failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	if !result.User.IsAdmin {
		return nil, fmt.Errorf("user %s is not an admin", name)
	}

	return &Member{
		Name:     result.User.Name,
		Password: password,
		Token:    result.AccessToken,
		UserID:   result.User.ID,
	}, nil
}

func resetSeason(token string) (*ResetResponse, error) {
	req, _ := http.NewRequest("POST", apiBase+"/admin/season/reset", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("season reset failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result ResetResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}

	return &result, nil
}

type demoMovie struct {
	TMDBID int64  `json:"tmdbId"`
	Title  string `json:"title"`
	Year   int    `json:"year"`
}

var demoMovies = []demoMovie{
	{TMDBID: 550, Title: "Fight Club", Year: 1999},
	{TMDBID: 680, Title: "Pulp Fiction", Year: 1994},
	{TMDBID: 603, Title: "The Matrix", Year: 1999},
	{TMDBID: 496243, Title: "Parasite", Year: 2019},
	{TMDBID: 769, Title: "Goodfellas", Year: 1990},
}

func submitPick(token string, movie demoMovie) error {
	body, _ := json.Marshal(movie)

	req, _ := http.NewRequest("POST", apiBase+"/picks/", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// 409 means this member already has a pick in, which is fine for reruns
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusConflict {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("submit pick failed (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	return nil
}

func generateName(index int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	random := make([]byte, 4)
	for i := range random {
		random[i] = letters[rand.Intn(len(letters))]
	}
	return fmt.Sprintf("demo_%d_%s", index, string(random))
}

func main() {
	rand.Seed(time.Now().UnixNano())

	adminName := os.Getenv("ADMIN_NAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminName == "" || adminPassword == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_NAME and ADMIN_PASSWORD env vars are required.")
		fmt.Fprintln(os.Stderr, "Register a user first, then promote it:")
		fmt.Fprintln(os.Stderr, "  UPDATE users SET is_admin = true WHERE name = '<name>';")
		os.Exit(1)
	}

	password := "demopassword123"
	var members []*Member

	fmt.Println("Registering 5 club members...")
	for i := 1; i <= 5; i++ {
		name := generateName(i)
		member, err := registerMember(name, password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to register member %d: %v\n", i, err)
			os.Exit(1)
		}
		members = append(members, member)
		fmt.Printf("  ✓ Member %d: %s\n", i, member.Name)
	}

	fmt.Println("\nLogging in as admin...")
	admin, err := login(adminName, adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Admin login failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Admin: %s\n", admin.Name)

	fmt.Println("\nStarting a new season...")
	season, err := resetSeason(admin.Token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to reset season: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  ✓ Season %d started with %d pickers (%d still in pool)\n",
		season.SeasonNumber, len(season.NextPickers), season.RemainingInPool)

	tokensByName := make(map[string]string, len(members)+1)
	for _, m := range members {
		tokensByName[m.Name] = m.Token
	}
	tokensByName[admin.Name] = admin.Token

	fmt.Println("\nSubmitting picks for the drawn batch...")
	for i, picker := range season.NextPickers {
		token, ok := tokensByName[picker.Name]
		if !ok {
			fmt.Printf("  - %s was drawn but is not a demo member, skipping\n", picker.Name)
			continue
		}
		movie := demoMovies[i%len(demoMovies)]
		if err := submitPick(token, movie); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to submit pick for %s: %v\n", picker.Name, err)
			os.Exit(1)
		}
		fmt.Printf("  ✓ %s picked %s (%d)\n", picker.Name, movie.Title, movie.Year)
	}

	fmt.Println("\n" + "============================================================")
	fmt.Println("DEMO CLUB SETUP COMPLETE")
	fmt.Println("============================================================")

	fmt.Printf("\nSeason %d is live. Members (all use password: %s):\n", season.SeasonNumber, password)
	for i, m := range members {
		fmt.Printf("  Member %d: %s\n", i+1, m.Name)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Login as any member and watch /picks/status")
	fmt.Println("  2. As admin, POST /admin/season/reveal to roll the watchlist")
	fmt.Println("  3. Rate watched movies via POST /movies/{id}/rate")

	output := map[string]interface{}{
		"season":  season,
		"members": members,
	}

	fmt.Println("\n" + "============================================================")
	fmt.Println("JSON OUTPUT (for scripts):")
	fmt.Println("============================================================")
	jsonOutput, _ := json.MarshalIndent(output, "", "  ")
	fmt.Println(string(jsonOutput))
}
