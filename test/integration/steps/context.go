//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pesawise/backend/config"
	"github.com/pesawise/backend/internal/infra/dependency"
	"github.com/pesawise/backend/internal/integration/persistence/model"
	"github.com/pesawise/backend/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	defaultPassword = "Password123!"
)

// testContext holds the state of one scenario.
type testContext struct {
	server   *httptest.Server
	client   *http.Client
	headers  map[string]string
	response *response

	db       *mock.Db
	timeMock *mock.Time
	summary  *mock.SummaryService

	accessToken   string
	currentUserID uuid.UUID
	remembered    map[string]string
}

type response struct {
	status int
	raw    []byte
	body   any
}

var (
	testDB      *mock.Db
	testSummary = mock.NewSummaryService()
)

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")

		testDB = mock.NewDb(map[string]any{
			"profiles":     &model.ProfileModel{},
			"transactions": &model.TransactionModel{},
			"budgets":      &model.BudgetModel{},
			"goals":        &model.GoalModel{},
		})
	})
}

// InitializeScenario wires a fresh API instance per scenario and registers all steps.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: mock.NewTime(),
		summary:  testSummary,
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	// Setup
	ctx.Step(`^the API server is running$`, tc.theAPIServerIsRunning)
	ctx.Step(`^the current date is "([^"]*)"$`, tc.theCurrentDateIs)
	ctx.Step(`^the summary service responds with "([^"]*)"$`, tc.theSummaryServiceRespondsWith)
	ctx.Step(`^the summary service fails with "([^"]*)"$`, tc.theSummaryServiceFailsWith)

	// Auth
	ctx.Step(`^I am registered as "([^"]*)" with password "([^"]*)"$`, tc.iAmRegisteredAsWithPassword)
	ctx.Step(`^I am logged in as "([^"]*)"$`, tc.iAmLoggedInAs)
	ctx.Step(`^I am not authenticated$`, tc.iAmNotAuthenticated)

	// Requests
	ctx.Step(`^the header contains the key "([^"]*)" with "([^"]*)"$`, tc.theHeaderContainsTheKeyWith)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, tc.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, tc.iSendARequestToWithBody)
	ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, tc.iRememberTheResponseFieldAs)

	// Responses
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, tc.theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, tc.theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, tc.theResponseFieldShouldHaveItems)

	// Storage and collaborators
	ctx.Step(`^the db should contain (\d+) objects? in the "([^"]*)" table$`, tc.theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the summary request should mention "([^"]*)"$`, tc.theSummaryRequestShouldMention)
}

func (t *testContext) before() error {
	t.headers = map[string]string{}
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.remembered = map[string]string{}
	t.db = testDB
	t.summary.Reset()
	t.timeMock.SetCurrentTime(time.Now())

	if err := t.db.ClearDB(); err != nil {
		return err
	}

	redisClient := mock.NewRedis()
	if err := mock.ClearRedis(redisClient); err != nil {
		return err
	}

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.Dashboard.Timezone = "UTC"

	injector := dependency.NewInjector(cfg, t.db.DbConn, dependency.Options{
		Redis:     redisClient,
		Summaries: t.summary,
		Clock:     t.timeMock,
	})

	t.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	return nil
}
