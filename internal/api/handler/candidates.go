package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CandidateHandler は候補者ピッカー用の読み取り専用ハンドラー
type CandidateHandler struct {
	directory CandidateDirectoryInterface
}

func NewCandidateHandler(directory CandidateDirectoryInterface) *CandidateHandler {
	return &CandidateHandler{directory: directory}
}

// List godoc
// @Summary 候補者一覧を取得
// @Description 候補者コラボレーターから読み取り専用の一覧を返します
// @Tags candidates
// @Produce json
// @Success 200 {array} candidate.Candidate
// @Failure 502 {object} map[string]string
// @Router /candidates [get]
func (h *CandidateHandler) List(c echo.Context) error {
	candidates, err := h.directory.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "候補者一覧を取得できませんでした")
	}
	return c.JSON(http.StatusOK, candidates)
}
