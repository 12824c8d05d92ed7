// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/finance-tracker/wallet/config"
	"github.com/finance-tracker/wallet/internal/infra/dependency"
	"github.com/finance-tracker/wallet/internal/integration/email"
	"github.com/finance-tracker/wallet/internal/integration/persistence/model"
	"github.com/finance-tracker/wallet/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// harness is shared by every scenario; the server is started once.
type harness struct {
	uri      string
	db       *mock.Db
	clock    *mock.Time
	resend   *mock.ApiMock
	injector *dependency.Injector
}

var (
	serverInit sync.Once
	shared     *harness
)

func startHarness() *harness {
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		h := &harness{
			db:     mock.NewDb(model.All()...),
			clock:  mock.NewTime(),
			resend: mock.NewApiServer(),
		}
		h.resend.Start()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.RateLimit.Enabled = false
		cfg.Billing.LockTTL = 5 * time.Second
		cfg.Billing.ReminderLeadDays = 3
		cfg.Billing.DueNextMonthWhenBeforeClosing = true
		cfg.Email.AppBaseURL = "http://wallet.test"

		sender, err := email.NewResendClient("re_test_key", "Wallet", "bills@wallet.test").WithBaseURL(h.resend.GetUrl())
		if err != nil {
			panic(err)
		}

		redisClient := mock.NewRedis()
		injector, err := dependency.NewInjector(cfg, h.db.DbConn, redisClient, dependency.Options{
			Clock:        h.clock,
			EmailSender:  sender,
			PasswordCost: bcrypt.MinCost,
		})
		if err != nil {
			panic(err)
		}
		h.injector = injector

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			panic(err)
		}
		h.uri = "http://" + listener.Addr().String()

		server := &http.Server{Handler: injector.Router.Setup(cfg.Server.Environment)}
		go func() { _ = server.Serve(listener) }()

		// Wait for server to be ready
		for i := 0; i < 50; i++ {
			resp, err := http.Get(h.uri + "/health")
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					break
				}
			}
			time.Sleep(100 * time.Millisecond)
		}

		shared = h
	})
	return shared
}

// testContext holds the state of a single scenario.
type testContext struct {
	*harness
	client       *http.Client
	headers      map[string]string
	response     *response
	accessToken  string
	refreshToken string
	userID       uuid.UUID
	userEmail    string
	vars         map[string]string
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		startHarness()
	})

	ctx.AfterSuite(func() {
		if shared != nil {
			shared.resend.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.harness = startHarness()
		return ctx, test.before()
	})

	registerSetupSteps(ctx, test)
	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerStoreSteps(ctx, test)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.userID = uuid.Nil
	t.userEmail = ""
	t.vars = make(map[string]string)

	t.clock.Reset()
	t.resend.Reset()
	if err := mock.ClearRedis(t.injector.Redis); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}
	return t.db.ClearDB()
}
