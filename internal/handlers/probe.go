package handlers

import (
	"errors"
	"net/http"

	"printer_probe/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errWaitFailed = "failed to run probe wait"
	errGetState   = "failed to load state"
	errSetTargets = "failed to set heater targets"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for the wait operation. A nil target mirrors an omitted S
// parameter and makes the call a no-op.
type waitRequest struct {
	TargetC    *int `json:"target_c"`
	ForceCool  bool `json:"force_cool,omitempty"`
	ForceWarm  bool `json:"force_warm,omitempty"`
	TimeoutSec int  `json:"timeout_s,omitempty"`
	Tool       int  `json:"tool,omitempty"`
}

// WaitProbeRequest is an exported model for Swagger docs of the wait payload.
type WaitProbeRequest struct {
	// Target temperature in Celsius; omit to make the call a no-op
	TargetC *int `json:"target_c" example:"50"`
	// Force the cooling direction regardless of heater state
	ForceCool bool `json:"force_cool,omitempty"`
	// Force the warming direction; wins over force_cool
	ForceWarm bool `json:"force_warm,omitempty"`
	// Abort the wait after this many seconds; 0 = unbounded
	TimeoutSec int `json:"timeout_s,omitempty" example:"120"`
	// Hotend index consulted for direction inference
	Tool int `json:"tool,omitempty"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Wait for probe temperature
// @Description  Blocks until the probe warms or cools to target_c, or timeout_s elapses. Only one wait may be active at a time.
// @Tags         probe
// @Accept       json
// @Produce      json
// @Param        body  body   WaitProbeRequest  true  "Wait parameters"
// @Success      200   {object}  map[string]interface{}  "outcome, direction, probe_c, elapsed_s"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "a wait is already active"
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/probe/wait [post]
// @Security     BearerAuth
func (h *Handler) waitForProbe(c *gin.Context) {
	var req waitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	params := service.WaitParams{
		ForceCool:  req.ForceCool,
		ForceWarm:  req.ForceWarm,
		TimeoutSec: req.TimeoutSec,
		Tool:       req.Tool,
	}
	if req.TargetC != nil {
		params.HasTarget = true
		params.TargetC = *req.TargetC
	}

	res, err := h.services.ProbeWait.Wait(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, service.ErrWaitActive) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errWaitFailed, "probe_wait_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"outcome":   res.Outcome,
		"direction": res.Direction,
		"probe_c":   res.ProbeC,
		"target_c":  res.TargetC,
		"elapsed_s": res.Elapsed.Seconds(),
	})
}

// @Summary      Get probe state
// @Tags         probe
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/probe/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "probe_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Request DTO for heater targets.
type heaterTargetsRequest struct {
	BedC    float64 `json:"bed_target_c"`
	HotendC float64 `json:"hotend_target_c"`
}

// @Summary      Set heater targets
// @Description  Sets the bed and hotend targets that direction inference consults. 0 turns a heater off.
// @Tags         probe
// @Accept       json
// @Produce      json
// @Param        body  body   heaterTargetsRequest  true  "Targets payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/heaters/targets [post]
// @Security     BearerAuth
func (h *Handler) setHeaterTargets(c *gin.Context) {
	var req heaterTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if err := h.services.Heaters.SetTargets(c.Request.Context(), req.BedC, req.HotendC); err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, err.Error(), "set_heater_targets_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          statusOK,
		"bed_target_c":    req.BedC,
		"hotend_target_c": req.HotendC,
	})
}

// Request DTO for the dry-run toggle.
type dryRunRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// @Summary      Toggle dry run
// @Description  While enabled, probe waits return immediately with no side effects.
// @Tags         debug
// @Accept       json
// @Produce      json
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/debug/dryrun [post]
// @Security     BearerAuth
func (h *Handler) setDryRun(c *gin.Context) {
	var req dryRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	h.services.ProbeWait.SetDryRun(*req.Enabled)
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "dry_run": *req.Enabled})
}

// @Summary      Get dry run state
// @Tags         debug
// @Produce      json
// @Success      200   {object}  map[string]bool
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/debug/dryrun [get]
// @Security     BearerAuth
func (h *Handler) getDryRun(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"dry_run": h.services.ProbeWait.DryRun()})
}
