package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-interview-scheduler/internal/application"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/interview"
	"github.com/sanosuguru/go-interview-scheduler/internal/pkg/logger"
	"github.com/sanosuguru/go-interview-scheduler/internal/storage"
)

type InterviewHandler struct {
	store EventStoreInterface
}

func NewInterviewHandler(store EventStoreInterface) *InterviewHandler {
	return &InterviewHandler{store: store}
}

type CreateInterviewRequest struct {
	CandidateID     string `json:"candidate_id" example:"42"`
	CandidateName   string `json:"candidate_name" example:"山田 太郎"`
	Date            string `json:"date" validate:"required" example:"2024-06-10"`
	Time            string `json:"time" validate:"required" example:"10:00"`
	DurationMinutes int    `json:"duration_minutes" example:"60"`
	Type            string `json:"type" example:"virtual"`
	Location        string `json:"location" example:"https://meet.example.com/abc"`
	Notes           string `json:"notes"`
	SendInvitation  bool   `json:"send_invitation"`
}

type UpdateInterviewRequest struct {
	CandidateID     *string `json:"candidate_id"`
	CandidateName   *string `json:"candidate_name"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Type            *string `json:"type"`
	Location        *string `json:"location"`
	Notes           *string `json:"notes"`
	SendInvitation  *bool   `json:"send_invitation"`
}

type InterviewResponse struct {
	ID              int64  `json:"id"`
	CandidateID     string `json:"candidate_id,omitempty"`
	CandidateName   string `json:"candidate_name"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"duration_minutes"`
	Type            string `json:"type"`
	Location        string `json:"location,omitempty"`
	Notes           string `json:"notes,omitempty"`
	SendInvitation  bool   `json:"send_invitation"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// SaveInterviewResponse は警告付きの保存結果
// 永続化に失敗してもインメモリの変更は有効なため、警告を添えて成功を返す
type SaveInterviewResponse struct {
	Interview InterviewResponse `json:"interview"`
	Warning   string            `json:"warning,omitempty"`
}

// ConflictResponse は重複エラーのレスポンス
type ConflictResponse struct {
	Error    string            `json:"error"`
	Conflict InterviewResponse `json:"conflict"`
}

func toInterviewResponse(e *interview.Interview) InterviewResponse {
	return InterviewResponse{
		ID:              e.ID,
		CandidateID:     e.CandidateID,
		CandidateName:   e.CandidateName,
		Date:            e.Date,
		Time:            e.Time,
		DurationMinutes: e.DurationMinutes,
		Type:            string(e.Type),
		Location:        e.Location,
		Notes:           e.Notes,
		SendInvitation:  e.SendInvitation,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary 面接を登録
// @Description 重複チェックのうえ面接イベントを登録します
// @Tags interviews
// @Accept json
// @Produce json
// @Param request body CreateInterviewRequest true "面接情報"
// @Success 201 {object} SaveInterviewResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} ConflictResponse "時間帯が重複"
// @Router /interviews [post]
func (h *InterviewHandler) Create(c echo.Context) error {
	var req CreateInterviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	draft := &interview.Interview{
		CandidateID:     req.CandidateID,
		CandidateName:   req.CandidateName,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Type:            interview.Type(req.Type),
		Location:        req.Location,
		Notes:           req.Notes,
		SendInvitation:  req.SendInvitation,
	}
	if draft.DurationMinutes == 0 {
		draft.DurationMinutes = interview.DefaultDurationMinutes
	}
	if draft.Type == "" {
		draft.Type = interview.TypeInPerson
	}

	ev, err := h.store.Create(c.Request().Context(), draft)
	if err != nil {
		return saveErrorResponse(c, http.StatusCreated, ev, err)
	}
	return c.JSON(http.StatusCreated, SaveInterviewResponse{Interview: toInterviewResponse(ev)})
}

// Update godoc
// @Summary 面接を更新
// @Description 指定IDの面接イベントを部分更新します
// @Tags interviews
// @Accept json
// @Produce json
// @Param id path int true "面接ID"
// @Param request body UpdateInterviewRequest true "更新内容"
// @Success 200 {object} SaveInterviewResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} ConflictResponse
// @Router /interviews/{id} [put]
func (h *InterviewHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "面接IDが不正です")
	}

	var req UpdateInterviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}

	patch := application.UpdatePatch{
		CandidateID:     req.CandidateID,
		CandidateName:   req.CandidateName,
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

	ev, err := h.store.Update(c.Request().Context(), id, patch)
	if err != nil {
		return saveErrorResponse(c, http.StatusOK, ev, err)
	}
	return c.JSON(http.StatusOK, SaveInterviewResponse{Interview: toInterviewResponse(ev)})
}

// Delete godoc
// @Summary 面接を削除
// @Description 指定IDの面接イベントを削除します（冪等）
// @Tags interviews
// @Param id path int true "面接ID"
// @Success 204
// @Router /interviews/{id} [delete]
func (h *InterviewHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "面接IDが不正です")
	}

	if err := h.store.Remove(c.Request().Context(), id); err != nil {
		// 永続化失敗でもインメモリの削除は成立している
		logger.Warn("削除の永続化に失敗しました", zap.Int64("interview_id", id), zap.Error(err))
	}
	return c.NoContent(http.StatusNoContent)
}

// GetByID godoc
// @Summary 面接を取得
// @Description 指定IDの面接イベントを取得します
// @Tags interviews
// @Produce json
// @Param id path int true "面接ID"
// @Success 200 {object} InterviewResponse
// @Failure 404 {object} map[string]string
// @Router /interviews/{id} [get]
func (h *InterviewHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "面接IDが不正です")
	}

	ev, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, interview.ErrInterviewNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toInterviewResponse(ev))
}

// List godoc
// @Summary 面接一覧を取得
// @Description date指定時はその日の面接を挿入順で、未指定時は全件を返します
// @Tags interviews
// @Produce json
// @Param date query string false "対象日（YYYY-MM-DD）"
// @Success 200 {array} InterviewResponse
// @Router /interviews [get]
func (h *InterviewHandler) List(c echo.Context) error {
	var events []*interview.Interview
	if date := c.QueryParam("date"); date != "" {
		events = h.store.EventsOn(date)
	} else {
		events = h.store.All()
	}

	responses := make([]InterviewResponse, len(events))
	for i, e := range events {
		responses[i] = toInterviewResponse(e)
	}
	return c.JSON(http.StatusOK, responses)
}

// Upcoming godoc
// @Summary 今後の面接一覧を取得
// @Description 当日を含む今後の面接を (日付, 時刻) 昇順で返します
// @Tags interviews
// @Produce json
// @Param limit query int false "取得件数" default(5)
// @Success 200 {array} InterviewResponse
// @Router /interviews/upcoming [get]
func (h *InterviewHandler) Upcoming(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	from := c.QueryParam("from")
	if from == "" {
		from = time.Now().Format("2006-01-02")
	}

	events := h.store.Upcoming(from, limit)
	responses := make([]InterviewResponse, len(events))
	for i, e := range events {
		responses[i] = toInterviewResponse(e)
	}
	return c.JSON(http.StatusOK, responses)
}

// saveErrorResponse はストアの保存系エラーをHTTPレスポンスへ変換する
func saveErrorResponse(c echo.Context, successCode int, ev *interview.Interview, err error) error {
	var conflictErr *interview.ConflictError
	var storeErr *storage.StoreError

	switch {
	case errors.As(err, &conflictErr):
		return c.JSON(http.StatusConflict, ConflictResponse{
			Error:    conflictErr.Error(),
			Conflict: toInterviewResponse(conflictErr.With),
		})
	case errors.As(err, &storeErr):
		// インメモリへは反映済み。警告を添えて成功レスポンスを返す
		return c.JSON(successCode, SaveInterviewResponse{
			Interview: toInterviewResponse(ev),
			Warning:   "保存に失敗しました。変更はリロード後に失われる可能性があります",
		})
	case errors.Is(err, interview.ErrInterviewNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
