package handlers

import (
	"context"
	"net/http"
	"time"

	"printer_probe/internal/models"
	"printer_probe/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockProbeWait struct {
	result     service.WaitResult
	err        error
	dryRun     bool
	waitCalls  int
	lastParams service.WaitParams
}

func (m *mockProbeWait) Wait(ctx context.Context, p service.WaitParams) (service.WaitResult, error) {
	m.waitCalls++
	m.lastParams = p
	return m.result, m.err
}
func (m *mockProbeWait) SetDryRun(on bool) { m.dryRun = on }
func (m *mockProbeWait) DryRun() bool      { return m.dryRun }

type mockHeaters struct {
	err         error
	calls       int
	lastBedC    float64
	lastHotendC float64
}

func (m *mockHeaters) SetTargets(ctx context.Context, bedC, hotendC float64) error {
	m.calls++
	m.lastBedC = bedC
	m.lastHotendC = hotendC
	return m.err
}

type mockMonitoring struct {
	state models.ProbeState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.ProbeState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp     []models.ProbeEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ProbeEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
