package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
	"golang.org/x/crypto/bcrypt"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	passwords    map[string]string // email -> password
	recordIDs    map[string]string // title -> record id
	lastListName string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:        tc,
		passwords: make(map[string]string),
		recordIDs: make(map[string]string),
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^the ContentHub API is running$`, s.theAPIIsRunning)
	sc.Step(`^a user "([^"]*)" exists with role "([^"]*)"$`, s.aUserExistsWithRole)
	sc.Step(`^I am logged in as "([^"]*)"$`, s.iAmLoggedInAs)
	sc.Step(`^I am not logged in$`, s.iAmNotLoggedIn)

	// Auth steps
	sc.Step(`^I register as "([^"]*)" with role "([^"]*)"$`, s.iRegisterWithRole)
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInWithPassword)

	// Content steps
	sc.Step(`^I create a training resource titled "([^"]*)"$`, s.iCreateTraining)
	sc.Step(`^I create a job posting titled "([^"]*)" in "([^"]*)"$`, s.iCreateJob)
	sc.Step(`^I create a scheme titled "([^"]*)" in category "([^"]*)"$`, s.iCreateScheme)
	sc.Step(`^I list "([^"]*)"$`, s.iList)
	sc.Step(`^I list "([^"]*)" filtered by "([^"]*)" "([^"]*)"$`, s.iListFiltered)
	sc.Step(`^I search "([^"]*)" for "([^"]*)"$`, s.iSearch)
	sc.Step(`^I update the "([^"]*)" job posting title to "([^"]*)"$`, s.iUpdateJobTitle)
	sc.Step(`^I delete the "([^"]*)" job posting$`, s.iDeleteJob)
	sc.Step(`^I fetch the "([^"]*)" job posting$`, s.iFetchJob)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response message should be "([^"]*)"$`, s.theResponseMessageShouldBe)
	sc.Step(`^the list should contain a record titled "([^"]*)"$`, s.theListShouldContainTitle)
	sc.Step(`^the list should not contain a record titled "([^"]*)"$`, s.theListShouldNotContainTitle)
	sc.Step(`^the record created_by_name should be "([^"]*)"$`, s.theRecordCreatedByNameShouldBe)
}

// Background steps

func (s *StepsContext) theAPIIsRunning() error {
	// Server is already running via TestContext
	return nil
}

// aUserExistsWithRole seeds a user row directly. The register endpoint never
// grants admin, so admin fixtures have to go through the database.
func (s *StepsContext) aUserExistsWithRole(email, role string) error {
	password := "password-" + strings.SplitN(email, "@", 2)[0]
	s.passwords[email] = password

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	name := strings.SplitN(email, "@", 2)[0]
	return s.tc.DB.Exec(`
		INSERT INTO users (name, email, password_digest, role) VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, name, email, string(digest), role).Error
}

func (s *StepsContext) iAmLoggedInAs(email string) error {
	password, ok := s.passwords[email]
	if !ok {
		return fmt.Errorf("no known password for %s", email)
	}
	if err := s.iLogInWithPassword(email, password); err != nil {
		return err
	}
	if s.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login as %s failed with status %d: %s", email, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) iAmNotLoggedIn() error {
	s.authToken = ""
	return nil
}

// Auth steps

func (s *StepsContext) iRegisterWithRole(email, role string) error {
	password := "password-" + strings.SplitN(email, "@", 2)[0]
	s.passwords[email] = password

	body := map[string]string{
		"name":     strings.SplitN(email, "@", 2)[0],
		"email":    email,
		"password": password,
		"role":     role,
	}
	if err := s.doJSON("POST", "/api/v1/auth/register", body); err != nil {
		return err
	}
	s.captureToken()
	return nil
}

func (s *StepsContext) iLogInWithPassword(email, password string) error {
	body := map[string]string{"email": email, "password": password}
	if err := s.doJSON("POST", "/api/v1/auth/login", body); err != nil {
		return err
	}
	s.captureToken()
	return nil
}

// captureToken extracts the token from a successful auth response
func (s *StepsContext) captureToken() {
	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(s.responseBody, &envelope); err == nil && envelope.Data.Token != "" {
		s.authToken = envelope.Data.Token
	}
}

// Content steps

func (s *StepsContext) iCreateTraining(title string) error {
	body := map[string]string{
		"title":       title,
		"type":        "video",
		"url":         "https://videos.example.com/" + strings.ReplaceAll(strings.ToLower(title), " ", "-"),
		"description": "Hands-on introduction",
		"language":    "hindi",
	}
	if err := s.doJSON("POST", "/api/v1/training", body); err != nil {
		return err
	}
	s.captureRecordID(title)
	return nil
}

func (s *StepsContext) iCreateJob(title, location string) error {
	body := map[string]string{
		"title":       title,
		"description": "Seasonal opening, apply in person",
		"category":    "tailoring",
		"location":    location,
		"language":    "hindi",
	}
	if err := s.doJSON("POST", "/api/v1/jobs", body); err != nil {
		return err
	}
	s.captureRecordID(title)
	return nil
}

func (s *StepsContext) iCreateScheme(title, category string) error {
	body := map[string]string{
		"title":       title,
		"description": "Subsidized credit for rural entrepreneurs",
		"eligibility": "Women above 18 with a registered business",
		"link":        "https://schemes.example.gov/" + strings.ReplaceAll(strings.ToLower(title), " ", "-"),
		"category":    category,
		"language":    "hindi",
	}
	if err := s.doJSON("POST", "/api/v1/schemes", body); err != nil {
		return err
	}
	s.captureRecordID(title)
	return nil
}

// captureRecordID remembers the id of a created record by its title
func (s *StepsContext) captureRecordID(title string) {
	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(s.responseBody, &envelope); err == nil && envelope.Data.ID != "" {
		s.recordIDs[title] = envelope.Data.ID
	}
}

func (s *StepsContext) iList(collection string) error {
	s.lastListName = collection
	return s.doJSON("GET", "/api/v1/"+collection, nil)
}

func (s *StepsContext) iListFiltered(collection, param, value string) error {
	s.lastListName = collection
	return s.doJSON("GET", fmt.Sprintf("/api/v1/%s?%s=%s", collection, param, value), nil)
}

func (s *StepsContext) iSearch(collection, query string) error {
	s.lastListName = collection
	return s.doJSON("GET", fmt.Sprintf("/api/v1/%s/search/%s", collection, query), nil)
}

func (s *StepsContext) iUpdateJobTitle(title, newTitle string) error {
	id, ok := s.recordIDs[title]
	if !ok {
		return fmt.Errorf("no known record titled %q", title)
	}
	body := map[string]string{
		"title":       newTitle,
		"description": "Seasonal opening, apply in person",
		"category":    "tailoring",
		"location":    "Jaipur",
		"language":    "hindi",
	}
	if err := s.doJSON("PUT", "/api/v1/jobs/"+id, body); err != nil {
		return err
	}
	if s.response.StatusCode == http.StatusOK {
		s.recordIDs[newTitle] = id
	}
	return nil
}

func (s *StepsContext) iDeleteJob(title string) error {
	id, ok := s.recordIDs[title]
	if !ok {
		return fmt.Errorf("no known record titled %q", title)
	}
	return s.doJSON("DELETE", "/api/v1/jobs/"+id, nil)
}

func (s *StepsContext) iFetchJob(title string) error {
	id, ok := s.recordIDs[title]
	if !ok {
		return fmt.Errorf("no known record titled %q", title)
	}
	return s.doJSON("GET", "/api/v1/jobs/"+id, nil)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseMessageShouldBe(expected string) error {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(s.responseBody, &envelope); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if envelope.Message != expected {
		return fmt.Errorf("expected message %q, got %q", expected, envelope.Message)
	}
	return nil
}

func (s *StepsContext) theListShouldContainTitle(title string) error {
	titles, err := s.listedTitles()
	if err != nil {
		return err
	}
	for _, t := range titles {
		if t == title {
			return nil
		}
	}
	return fmt.Errorf("record titled %q not found in %v", title, titles)
}

func (s *StepsContext) theListShouldNotContainTitle(title string) error {
	titles, err := s.listedTitles()
	if err != nil {
		return err
	}
	for _, t := range titles {
		if t == title {
			return fmt.Errorf("record titled %q unexpectedly present", title)
		}
	}
	return nil
}

func (s *StepsContext) theRecordCreatedByNameShouldBe(expected string) error {
	var envelope struct {
		Data struct {
			CreatedByName string `json:"created_by_name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(s.responseBody, &envelope); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if envelope.Data.CreatedByName != expected {
		return fmt.Errorf("expected created_by_name %q, got %q", expected, envelope.Data.CreatedByName)
	}
	return nil
}

// listedTitles pulls the titles out of the last list response. Marketplace
// records carry businessName instead of title.
func (s *StepsContext) listedTitles() ([]string, error) {
	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(s.responseBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse list response: %w", err)
	}

	raw, ok := envelope.Data[s.lastListName]
	if !ok {
		return nil, fmt.Errorf("list response has no %q collection", s.lastListName)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %q records: %w", s.lastListName, err)
	}

	titles := make([]string, 0, len(records))
	for _, record := range records {
		if title, ok := record["title"].(string); ok {
			titles = append(titles, title)
			continue
		}
		if name, ok := record["businessName"].(string); ok {
			titles = append(titles, name)
		}
	}
	return titles, nil
}

// doJSON sends a request to the test server, attaching the current auth token
func (s *StepsContext) doJSON(method, path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}
