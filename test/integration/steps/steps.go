package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finance-tracker/wallet/internal/integration/adapters"
)

var placeholder = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

func registerSetupSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^the API server is running$`, t.theAPIServerIsRunning)
	ctx.Given(`^I am registered as "([^"]*)"$`, t.iAmRegisteredAs)
	ctx.Given(`^my access token has expired$`, t.myAccessTokenHasExpired)
	ctx.Given(`^today is "([^"]*)"$`, t.todayIs)
	ctx.Given(`^the header is empty$`, t.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith)
	ctx.Given(`^the email API answers "([^"]*)" with status (\d+)$`, t.theEmailAPIAnswersWithStatus)
}

func registerRequestSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody)
	ctx.When(`^I save the response field "([^"]*)" as "([^"]*)"$`, t.iSaveTheResponseFieldAs)
	ctx.When(`^the bill reminder worker runs$`, t.theBillReminderWorkerRuns)
}

func registerResponseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the response status should be (\d+)$`, t.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be the amount "([^"]*)"$`, t.theResponseFieldShouldBeTheAmount)
	ctx.Then(`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, t.theResponseFieldShouldHaveItems)
}

func registerStoreSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the email API should have received (\d+) emails?$`, t.theEmailAPIShouldHaveReceivedEmails)
	ctx.Then(`^the last email should be sent to "([^"]*)"$`, t.theLastEmailShouldBeSentTo)
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.uri == "" {
		return errors.New("test server is not running")
	}
	return nil
}

func (t *testContext) iAmRegisteredAs(email string) error {
	body := fmt.Sprintf(`{"email":%q,"name":"Test User","password":"SecurePass123!"}`, email)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", []byte(body)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("register failed with status %d: %v", t.response.status, t.response.body)
	}

	access, _ := getFieldValue(t.response.body, "access_token").(string)
	refresh, _ := getFieldValue(t.response.body, "refresh_token").(string)
	id, err := uuid.Parse(fmt.Sprint(getFieldValue(t.response.body, "user.id")))
	if err != nil || access == "" {
		return fmt.Errorf("register response missing tokens: %v", t.response.body)
	}

	t.accessToken = access
	t.refreshToken = refresh
	t.userID = id
	t.userEmail = email
	t.vars["refresh_token"] = refresh
	return nil
}

// myAccessTokenHasExpired swaps the access token for a correctly signed one that expired a minute ago.
func (t *testContext) myAccessTokenHasExpired() error {
	past := time.Now().UTC().Add(-time.Hour)
	claims := adapters.CustomClaims{
		UserID:    t.userID.String(),
		Email:     t.userEmail,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past.Add(59 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(past),
			NotBefore: jwt.NewNumericDate(past),
			Issuer:    "wallet-api",
			Subject:   t.userID.String(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) todayIs(date string) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	t.clock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) theEmailAPIAnswersWithStatus(endpoint string, status int) error {
	method, path, ok := strings.Cut(endpoint, " ")
	if !ok {
		return fmt.Errorf("endpoint must be \"METHOD /path\", got %q", endpoint)
	}
	t.resend.SetResponse(method, path, status, map[string]any{
		"statusCode": status,
		"name":       "application_error",
		"message":    "mocked failure",
	})
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.expand(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.expand(body.Content))
	}
	return t.executeRequest(method, t.expand(path), payload)
}

func (t *testContext) iSaveTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.vars[name] = fmt.Sprint(value)
	return nil
}

func (t *testContext) theBillReminderWorkerRuns() error {
	t.injector.ReminderWork.ProcessNow(context.Background())
	return nil
}

// expand replaces {{name}} with saved values and leaves unknown names untouched.
func (t *testContext) expand(content string) string {
	return placeholder.ReplaceAllStringFunc(content, func(match string) string {
		if value, ok := t.vars[match[2:len(match)-2]]; ok {
			return value
		}
		return match
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, bodyReader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var decoded any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = decoded
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.field(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.expand(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeTheAmount(field, expected string) error {
	value, err := t.field(field)
	if err != nil {
		return err
	}

	want, err := decimal.NewFromString(expected)
	if err != nil {
		return err
	}
	got, err := decimal.NewFromString(fmt.Sprint(value))
	if err != nil {
		return fmt.Errorf("field '%s' is not an amount: %v", field, value)
	}
	if !got.Equal(want) {
		return fmt.Errorf("field '%s' expected amount %s, got %s", field, want, got)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.field(field)
	return err
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.field(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) field(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return value, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.expand(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		if value == nil {
			query = query.Where(fmt.Sprintf("%s IS NULL", key))
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theEmailAPIShouldHaveReceivedEmails(count int) error {
	if got := len(t.resend.Requests(http.MethodPost, "/emails")); got != count {
		return fmt.Errorf("expected %d emails, got %d", count, got)
	}
	return nil
}

func (t *testContext) theLastEmailShouldBeSentTo(address string) error {
	requests := t.resend.Requests(http.MethodPost, "/emails")
	if len(requests) == 0 {
		return errors.New("no email was sent")
	}
	last := requests[len(requests)-1]
	to, _ := last["to"].([]any)
	for _, recipient := range to {
		if recipient == address {
			return nil
		}
	}
	return fmt.Errorf("expected email to %s, got %v", address, last["to"])
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
