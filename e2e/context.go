package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TestContext carries shared state across step packages: the HTTP client, the
// last response and the artifacts scenarios accumulate (token, created IDs).
type TestContext struct {
	baseURL string
	client  *http.Client

	lastStatus int
	lastBody   []byte

	accessToken    string
	submissionID   string
	registrationID string
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Reset clears per-scenario state so scenarios stay independent.
func (tc *TestContext) Reset() {
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.accessToken = ""
	tc.submissionID = ""
	tc.registrationID = ""
}

func (tc *TestContext) POST(path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, tc.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	req, err := http.NewRequest(http.MethodGet, tc.baseURL+path, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	if tc.accessToken != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}
	resp, err := tc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

func (tc *TestContext) GetLastResponseStatus() int {
	return tc.lastStatus
}

func (tc *TestContext) GetLastResponseBody() []byte {
	return tc.lastBody
}

// GetResponseField extracts a top-level field from the last JSON response.
func (tc *TestContext) GetResponseField(field string) (interface{}, error) {
	var parsed map[string]interface{}
	if err := json.Unmarshal(tc.lastBody, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	value, ok := parsed[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in response: %s", field, tc.lastBody)
	}
	return value, nil
}

func (tc *TestContext) GetAccessToken() string      { return tc.accessToken }
func (tc *TestContext) SetAccessToken(token string) { tc.accessToken = token }
func (tc *TestContext) GetSubmissionID() string     { return tc.submissionID }
func (tc *TestContext) SetSubmissionID(id string)   { tc.submissionID = id }
func (tc *TestContext) GetRegistrationID() string   { return tc.registrationID }
func (tc *TestContext) SetRegistrationID(id string) { tc.registrationID = id }
