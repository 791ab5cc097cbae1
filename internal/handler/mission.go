package handler

import (
	"net/http"

	"github.com/lootvault/lootvault/internal/logger"
	"github.com/lootvault/lootvault/internal/mission"
)

// HandleListMissions returns every active mission definition
func HandleListMissions(svc mission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		missions, err := svc.ListMissions(r.Context())
		if err != nil {
			respondServiceError(w, r, "List missions", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: missions})
	}
}

// HandleListMissionProgress returns a user's progress rows
func HandleListMissionProgress(svc mission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		progress, err := svc.ListProgress(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List mission progress", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: progress})
	}
}

type MissionRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid4"`
	MissionID int    `json:"mission_id" validate:"required,min=1"`
}

// HandleEnsureMissionProgress starts a progress row for a mission,
// returning the existing row when the user already began it.
func HandleEnsureMissionProgress(svc mission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MissionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Ensure mission progress"); err != nil {
			return
		}

		progress, err := svc.EnsureProgress(r.Context(), req.UserID, req.MissionID)
		if err != nil {
			respondServiceError(w, r, "Ensure mission progress", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: progress})
	}
}

type RecordProgressRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid4"`
	MissionID int    `json:"mission_id" validate:"required,min=1"`
	Progress  int    `json:"progress" validate:"min=0,max=100"`
}

// HandleRecordMissionProgress advances a regular mission's progress percentage
func HandleRecordMissionProgress(svc mission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordProgressRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record mission progress"); err != nil {
			return
		}

		progress, err := svc.RecordProgress(r.Context(), req.UserID, req.MissionID, req.Progress)
		if err != nil {
			respondServiceError(w, r, "Record mission progress", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: progress})
	}
}

type ClaimDayRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid4"`
	MissionID int    `json:"mission_id" validate:"required,min=1"`
	Day       int    `json:"day" validate:"required,min=1"`
}

// HandleClaimMissionDay claims a specific day of a streak mission.
// Days must be claimed in order, so the requested day is normally the
// smallest unclaimed one; naming it lets a stale client fail loudly
// instead of silently claiming a different day.
func HandleClaimMissionDay(svc mission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClaimDayRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim mission day"); err != nil {
			return
		}

		result, err := svc.ClaimDay(r.Context(), req.UserID, req.MissionID, req.Day)
		if err != nil {
			respondServiceError(w, r, "Claim mission day", err)
			return
		}

		log.Info("Mission day claimed",
			"user_id", req.UserID,
			"mission_id", req.MissionID,
			"day", result.Day,
			"tickets", result.Tickets,
			"streak_done", result.StreakDone)

		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}

// HandleClaimMissionReward claims the one-time reward of a completed regular mission
func HandleClaimMissionReward(svc mission.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req MissionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim mission reward"); err != nil {
			return
		}

		result, err := svc.ClaimReward(r.Context(), req.UserID, req.MissionID)
		if err != nil {
			respondServiceError(w, r, "Claim mission reward", err)
			return
		}

		log.Info("Mission reward claimed",
			"user_id", req.UserID,
			"mission_id", req.MissionID,
			"tickets", result.Tickets)

		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}
