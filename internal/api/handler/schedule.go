package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-interview-scheduler/internal/application"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/candidate"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/interview"
)

// ScheduleHandler はスケジューリングワークフローの対話セッションを駆動する
// ダッシュボードの「日付クリック → 候補者選択 → フォーム → 保存」に対応する
type ScheduleHandler struct {
	workflow WorkflowInterface
}

func NewScheduleHandler(workflow WorkflowInterface) *ScheduleHandler {
	return &ScheduleHandler{workflow: workflow}
}

type StartScheduleRequest struct {
	Date string `json:"date" validate:"required" example:"2024-06-10"`
}

type SelectCandidateRequest struct {
	CandidateID string `json:"candidate_id" validate:"required" example:"42"`
}

type DraftRequest struct {
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Type            *string `json:"type"`
	Location        *string `json:"location"`
	Notes           *string `json:"notes"`
	SendInvitation  *bool   `json:"send_invitation"`
}

type TargetInterviewRequest struct {
	InterviewID int64 `json:"interview_id" validate:"required" example:"1718000000000"`
}

// State godoc
// @Summary ワークフローの現在状態を取得
// @Tags schedule
// @Produce json
// @Success 200 {object} application.Snapshot
// @Router /schedule [get]
func (h *ScheduleHandler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.workflow.Snapshot())
}

// Start godoc
// @Summary セッションを開始
// @Description 日付セルのクリックに対応。候補者が存在しない場合は開始できません
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body StartScheduleRequest true "選択した日付"
// @Success 200 {object} application.Snapshot
// @Failure 400 {object} map[string]string
// @Router /schedule/start [post]
func (h *ScheduleHandler) Start(c echo.Context) error {
	var req StartScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	snapshot, err := h.workflow.Start(c.Request().Context(), req.Date)
	if err != nil {
		return scheduleErrorResponse(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

// SelectCandidate godoc
// @Summary 候補者を選択
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body SelectCandidateRequest true "候補者ID"
// @Success 200 {object} application.Snapshot
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string "状態不正"
// @Router /schedule/candidate [post]
func (h *ScheduleHandler) SelectCandidate(c echo.Context) error {
	var req SelectCandidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	snapshot, err := h.workflow.SelectCandidate(c.Request().Context(), req.CandidateID)
	if err != nil {
		return scheduleErrorResponse(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

// UpdateDraft godoc
// @Summary フォーム内容をドラフトへ反映
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body DraftRequest true "フォーム内容"
// @Success 200 {object} application.Snapshot
// @Failure 409 {object} map[string]string "状態不正"
// @Router /schedule/draft [put]
func (h *ScheduleHandler) UpdateDraft(c echo.Context) error {
	var req DraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}

	patch := application.UpdatePatch{
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		Notes:           req.Notes,
		SendInvitation:  req.SendInvitation,
	}
	if req.Type != nil {
		t := interview.Type(*req.Type)
		patch.Type = &t
	}

	snapshot, err := h.workflow.UpdateDraft(patch)
	if err != nil {
		return scheduleErrorResponse(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

// Save godoc
// @Summary ドラフトを保存
// @Description 検証・重複チェックのうえ登録または更新します
// @Tags schedule
// @Produce json
// @Success 200 {object} SaveInterviewResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} ConflictResponse
// @Router /schedule/save [post]
func (h *ScheduleHandler) Save(c echo.Context) error {
	ev, err := h.workflow.Save(c.Request().Context())
	if err != nil {
		var conflictErr *interview.ConflictError
		if errors.As(err, &conflictErr) {
			return c.JSON(http.StatusConflict, ConflictResponse{
				Error:    conflictErr.Error(),
				Conflict: toInterviewResponse(conflictErr.With),
			})
		}
		return scheduleErrorResponse(err)
	}
	return c.JSON(http.StatusOK, SaveInterviewResponse{Interview: toInterviewResponse(ev)})
}

// Cancel godoc
// @Summary セッションを破棄
// @Description ストアを呼び出さずに Idle へ戻ります
// @Tags schedule
// @Produce json
// @Success 200 {object} application.Snapshot
// @Router /schedule/cancel [post]
func (h *ScheduleHandler) Cancel(c echo.Context) error {
	return c.JSON(http.StatusOK, h.workflow.Cancel())
}

// Edit godoc
// @Summary 編集セッションを開始
// @Description 既存イベントからドラフトを事前入力します
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body TargetInterviewRequest true "面接ID"
// @Success 200 {object} application.Snapshot
// @Failure 404 {object} map[string]string
// @Router /schedule/edit [post]
func (h *ScheduleHandler) Edit(c echo.Context) error {
	var req TargetInterviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	snapshot, err := h.workflow.StartEditing(c.Request().Context(), req.InterviewID)
	if err != nil {
		return scheduleErrorResponse(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

// RequestDelete godoc
// @Summary 削除確認ステップへ遷移
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body TargetInterviewRequest true "面接ID"
// @Success 200 {object} application.Snapshot
// @Failure 404 {object} map[string]string
// @Router /schedule/delete [post]
func (h *ScheduleHandler) RequestDelete(c echo.Context) error {
	var req TargetInterviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	snapshot, err := h.workflow.RequestDelete(req.InterviewID)
	if err != nil {
		return scheduleErrorResponse(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

// ConfirmDelete godoc
// @Summary 確認済みの削除を実行
// @Tags schedule
// @Produce json
// @Success 200 {object} application.Snapshot
// @Failure 409 {object} map[string]string "状態不正"
// @Router /schedule/delete/confirm [post]
func (h *ScheduleHandler) ConfirmDelete(c echo.Context) error {
	snapshot, err := h.workflow.ConfirmDelete(c.Request().Context())
	if err != nil {
		return scheduleErrorResponse(err)
	}
	return c.JSON(http.StatusOK, snapshot)
}

// DeclineDelete godoc
// @Summary 削除を取りやめる
// @Description 副作用なしで元の状態へ戻ります
// @Tags schedule
// @Produce json
// @Success 200 {object} application.Snapshot
// @Router /schedule/delete/decline [post]
func (h *ScheduleHandler) DeclineDelete(c echo.Context) error {
	return c.JSON(http.StatusOK, h.workflow.DeclineDelete())
}

// scheduleErrorResponse はワークフローのエラーをHTTPレスポンスへ変換する
func scheduleErrorResponse(err error) error {
	switch {
	case errors.Is(err, application.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, candidate.ErrNoCandidates):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, candidate.ErrCandidateNotFound),
		errors.Is(err, interview.ErrInterviewNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
