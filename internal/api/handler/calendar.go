package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-interview-scheduler/internal/pkg/logger"
)

type CalendarHandler struct {
	view  CalendarViewInterface
	panel UpcomingPanelInterface
}

func NewCalendarHandler(view CalendarViewInterface, panel UpcomingPanelInterface) *CalendarHandler {
	return &CalendarHandler{view: view, panel: panel}
}

type NavigateRequest struct {
	Delta int `json:"delta" example:"1"`
}

// Current godoc
// @Summary 表示中の月ビューを取得
// @Description 表示中の月の42セルグリッドとイベントマーカーを返します
// @Tags calendar
// @Produce json
// @Success 200 {object} application.MonthView
// @Router /calendar [get]
func (h *CalendarHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, h.view.Current())
}

// Show godoc
// @Summary 指定年月のビューを取得
// @Description 範囲外の月は通常の日付演算で正規化されます（13月 → 翌年1月）
// @Tags calendar
// @Produce json
// @Param year path int true "年"
// @Param month path int true "月（1-12）"
// @Success 200 {object} application.MonthView
// @Failure 400 {object} map[string]string
// @Router /calendar/{year}/{month} [get]
func (h *CalendarHandler) Show(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "年の形式が不正です")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "月の形式が不正です")
	}

	return c.JSON(http.StatusOK, h.view.Show(year, month))
}

// Navigate godoc
// @Summary 表示月を送る
// @Description 表示月を delta か月ぶん送り、永続化スロットを読み直します
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body NavigateRequest true "移動量（±1）"
// @Success 200 {object} application.MonthView
// @Router /calendar/navigate [post]
func (h *CalendarHandler) Navigate(c echo.Context) error {
	var req NavigateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "リクエストの形式が不正です")
	}

	view, err := h.view.Navigate(c.Request().Context(), req.Delta)
	if err != nil {
		// スロットを読み直せなくてもインメモリのビューは使える
		logger.Warn("月送り時のスナップショット再読込に失敗しました", zap.Error(err))
	}
	return c.JSON(http.StatusOK, view)
}

// UpcomingPanel godoc
// @Summary 今後の面接パネルを取得
// @Description ストア変更のたびに再構築される派生ビューを返します
// @Tags calendar
// @Produce json
// @Success 200 {array} application.UpcomingEntry
// @Router /calendar/upcoming [get]
func (h *CalendarHandler) UpcomingPanel(c echo.Context) error {
	return c.JSON(http.StatusOK, h.panel.Entries())
}
