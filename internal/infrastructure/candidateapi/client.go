package candidateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sanosuguru/go-interview-scheduler/internal/config"
	"github.com/sanosuguru/go-interview-scheduler/internal/domain/candidate"
)

// Client は候補者コラボレーターAPIのHTTPクライアント
// 読み取り専用で、候補者レコードの変更は行わない
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient はClientを作成する
func NewClient(cfg *config.CandidateAPIConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// candidateRecord はコラボレーターAPIのレスポンス形式
// puesto / estado は上流APIのフィールド名をそのまま受ける
type candidateRecord struct {
	ID       json.Number `json:"id"`
	Name     string      `json:"nombre"`
	Title    string      `json:"puesto"`
	PhotoURL string      `json:"foto_url"`
	Status   string      `json:"estado"`
}

func (r *candidateRecord) toEntity() candidate.Candidate {
	return candidate.Candidate{
		ID:       r.ID.String(),
		Name:     r.Name,
		Title:    r.Title,
		PhotoURL: r.PhotoURL,
		Status:   r.Status,
	}
}

// List は候補者の一覧を取得する
func (c *Client) List(ctx context.Context) ([]candidate.Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/reclutas", nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("候補者一覧の取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("候補者APIがエラーを返しました: status=%d", resp.StatusCode)
	}

	var records []candidateRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("候補者レスポンスの解析に失敗しました: %w", err)
	}

	candidates := make([]candidate.Candidate, len(records))
	for i, r := range records {
		candidates[i] = r.toEntity()
	}
	return candidates, nil
}

// GetByID はIDから候補者を取得する
func (c *Client) GetByID(ctx context.Context, id string) (*candidate.Candidate, error) {
	candidates, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, cand := range candidates {
		if cand.ID == id {
			cc := cand
			return &cc, nil
		}
	}
	return nil, candidate.ErrCandidateNotFound
}

var _ candidate.Directory = (*Client)(nil)
