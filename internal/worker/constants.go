package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgWorkerJobPanicked is logged when a job panics inside a worker
const LogMsgWorkerJobPanicked = "Worker job panicked"

// ============================================================================
// Log Messages - Trade Expiry Worker
// ============================================================================

const (
	LogMsgTradeExpirySweepStarting = "Trade expiry sweep starting"
	LogMsgTradeExpirySweepFailed   = "Trade expiry sweep failed"
	LogMsgTradeExpirySweepDone     = "Trade expiry sweep completed"
)

// ============================================================================
// Log Messages - Mission Refresh Worker
// ============================================================================

const (
	LogMsgMissionRolloverStandby  = "Mission rollover in standby"
	LogMsgMissionRolloverApproach = "Mission rollover scheduled"
	LogMsgMissionRolloverStarting = "Mission rollover starting"
	LogMsgMissionRolloverFailed   = "Mission rollover failed"
	LogMsgMissionRolloverDone     = "Mission rollover completed"
)
