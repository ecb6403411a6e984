package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	password string
	isAdmin  bool
	isActive bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		name:     fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
		isActive: true,
	}
}

// WithName sets the member name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// AsAdmin marks the user as a club admin
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.isAdmin = true
	return b
}

// Deactivated marks the user as no longer rotating
func (b *UserBuilder) Deactivated() *UserBuilder {
	b.isActive = false
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         b.name,
		PasswordHash: string(hashedPassword),
		IsAdmin:      b.isAdmin,
		IsActive:     b.isActive,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		IsAdmin bool   `json:"isAdmin"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"name":     b.name,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:   userID,
		Name: authResp.User.Name,
	}

	if b.isAdmin {
		if err := ts.DB.DB.Model(&domain.User{}).Where("id = ?", userID).Update("is_admin", true).Error; err != nil {
			t.Fatalf("failed to promote user: %v", err)
		}
		user.IsAdmin = true
	}
	if !b.isActive {
		if err := ts.DB.DB.Model(&domain.User{}).Where("id = ?", userID).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate user: %v", err)
		}
	}

	return user, authResp.AccessToken
}

// SeasonBuilder creates picking seasons with a builder pattern
type SeasonBuilder struct {
	number    int
	available []uuid.UUID
	used      []uuid.UUID
	isActive  bool
}

// NewSeasonBuilder creates a new SeasonBuilder with default values
func NewSeasonBuilder() *SeasonBuilder {
	return &SeasonBuilder{
		number:   1,
		isActive: true,
	}
}

// WithNumber sets the season number
func (b *SeasonBuilder) WithNumber(n int) *SeasonBuilder {
	b.number = n
	return b
}

// WithAvailable sets the available picker pool in order
func (b *SeasonBuilder) WithAvailable(ids ...uuid.UUID) *SeasonBuilder {
	b.available = ids
	return b
}

// WithUsed sets the used picker pool
func (b *SeasonBuilder) WithUsed(ids ...uuid.UUID) *SeasonBuilder {
	b.used = ids
	return b
}

// Inactive marks the season as retired
func (b *SeasonBuilder) Inactive() *SeasonBuilder {
	b.isActive = false
	return b
}

// Build creates the season in the database
func (b *SeasonBuilder) Build(t *testing.T, db *gorm.DB) *domain.PickingSeason {
	t.Helper()

	available := b.available
	if available == nil {
		available = []uuid.UUID{}
	}
	used := b.used
	if used == nil {
		used = []uuid.UUID{}
	}

	season := &domain.PickingSeason{
		ID:                 uuid.New(),
		SeasonNumber:       b.number,
		Version:            1,
		AvailablePickerIDs: datatypes.NewJSONSlice(available),
		UsedPickerIDs:      datatypes.NewJSONSlice(used),
		IsActive:           b.isActive,
		CreatedAt:          time.Now(),
	}
	if len(available) > 0 {
		head := available[0]
		season.CurrentPickerID = &head
	}

	if err := db.Create(season).Error; err != nil {
		t.Fatalf("failed to create season: %v", err)
	}

	return season
}

// MovieBuilder creates test movies
type MovieBuilder struct {
	title       string
	tmdbID      *int64
	year        *int
	runtime     *int
	nominations int
	wins        int
	status      domain.MovieStatus
}

// NewMovieBuilder creates a new MovieBuilder with default values
func NewMovieBuilder() *MovieBuilder {
	return &MovieBuilder{
		title:  fmt.Sprintf("Test Movie %s", uuid.New().String()[:8]),
		status: domain.MovieStatusUnwatched,
	}
}

// WithTitle sets the title
func (b *MovieBuilder) WithTitle(title string) *MovieBuilder {
	b.title = title
	return b
}

// WithTMDBID sets the catalog id
func (b *MovieBuilder) WithTMDBID(id int64) *MovieBuilder {
	b.tmdbID = &id
	return b
}

// WithYear sets the release year
func (b *MovieBuilder) WithYear(year int) *MovieBuilder {
	b.year = &year
	return b
}

// WithRuntime sets the runtime in minutes
func (b *MovieBuilder) WithRuntime(minutes int) *MovieBuilder {
	b.runtime = &minutes
	return b
}

// WithAcademyRecord sets nomination and win counts
func (b *MovieBuilder) WithAcademyRecord(nominations, wins int) *MovieBuilder {
	b.nominations = nominations
	b.wins = wins
	return b
}

// WithStatus sets the watch status
func (b *MovieBuilder) WithStatus(status domain.MovieStatus) *MovieBuilder {
	b.status = status
	return b
}

// Build creates the movie in the database
func (b *MovieBuilder) Build(t *testing.T, db *gorm.DB) *domain.Movie {
	t.Helper()

	movie := &domain.Movie{
		ID:                 uuid.New(),
		TMDBID:             b.tmdbID,
		Title:              b.title,
		Year:               b.year,
		RuntimeMinutes:     b.runtime,
		AcademyNominations: b.nominations,
		AcademyWins:        b.wins,
		Status:             b.status,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := db.Create(movie).Error; err != nil {
		t.Fatalf("failed to create movie: %v", err)
	}

	return movie
}

// CreatePick records a pick row directly, bypassing the service rules.
func CreatePick(t *testing.T, db *gorm.DB, userID, movieID uuid.UUID, round int) *domain.MoviePick {
	t.Helper()

	pick := &domain.MoviePick{
		ID:        uuid.New(),
		UserID:    userID,
		MovieID:   movieID,
		PickRound: round,
		PickedAt:  time.Now(),
	}

	if err := db.Create(pick).Error; err != nil {
		t.Fatalf("failed to create pick: %v", err)
	}

	return pick
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
