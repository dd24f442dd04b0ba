//go:build integration

package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (t *testContext) theCurrentDateIs(date string) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	// Midday keeps the date stable across the scenario.
	t.timeMock.SetCurrentTime(parsed.Add(12 * time.Hour))
	return nil
}

func (t *testContext) theSummaryServiceRespondsWith(text string) error {
	t.summary.RespondWith(text)
	return nil
}

func (t *testContext) theSummaryServiceFailsWith(message string) error {
	t.summary.FailWith(message)
	return nil
}

func (t *testContext) iAmRegisteredAsWithPassword(email, password string) error {
	payload, err := json.Marshal(map[string]string{
		"email":     email,
		"full_name": "Test User",
		"password":  password,
	})
	if err != nil {
		return err
	}

	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %s", t.response.status, string(t.response.raw))
	}

	return t.rememberSession()
}

func (t *testContext) iAmLoggedInAs(email string) error {
	return t.iAmRegisteredAsWithPassword(email, defaultPassword)
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	return nil
}

func (t *testContext) rememberSession() error {
	token, ok := getFieldValue(t.response.body, "access_token").(string)
	if !ok || token == "" {
		return fmt.Errorf("access_token missing from response: %s", string(t.response.raw))
	}

	rawID, _ := getFieldValue(t.response.body, "profile.id").(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("profile.id missing from response: %s", string(t.response.raw))
	}

	t.accessToken = token
	t.currentUserID = userID
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	content := t.replacePlaceholders(body.Content)
	return t.executeRequest(method, t.replacePlaceholders(path), []byte(content))
}

func (t *testContext) iRememberTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(t.response.raw))
	}
	t.remembered[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders substitutes {name} with remembered values and the current user.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{user_id}", t.currentUserID.String())
	for name, value := range t.remembered {
		content = strings.ReplaceAll(content, "{"+name+"}", value)
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var body any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	t.response = &response{
		status: resp.StatusCode,
		raw:    raw,
		body:   body,
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if !json.Valid(t.response.raw) {
		return fmt.Errorf("response is not valid JSON: %s", string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if !strings.Contains(string(t.response.raw), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(t.response.raw))
	}

	actual := fmt.Sprintf("%v", value)
	if actual != t.replacePlaceholders(expected) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}

	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %s", field, string(t.response.raw))
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d rows in %s, got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theSummaryRequestShouldMention(expected string) error {
	request := t.summary.LastRequest()
	if request == nil {
		return fmt.Errorf("summary service was not called")
	}

	parts := append([]string{request.Text, request.Income, request.Expenses}, request.Goals...)
	for _, part := range parts {
		if strings.Contains(part, expected) {
			return nil
		}
	}
	return fmt.Errorf("summary request does not mention '%s': %+v", expected, *request)
}

// getFieldValue walks a decoded JSON value along a dot-separated path.
// Numeric segments index into lists.
func getFieldValue(object any, dotSeparatedField string) any {
	current := object
	for _, key := range strings.Split(dotSeparatedField, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[key]
			if !ok {
				return nil
			}
			current = value
		case []any:
			index, err := strconv.Atoi(key)
			if err != nil || index < 0 || index >= len(node) {
				return nil
			}
			current = node[index]
		default:
			return nil
		}
	}
	return current
}
