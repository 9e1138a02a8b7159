package candidate

import "context"

// StaticDirectory は固定リストを返す Directory 実装
// テストおよび候補者APIを持たないローカル環境用
type StaticDirectory struct {
	candidates []Candidate
}

// NewStaticDirectory はStaticDirectoryを作成する
func NewStaticDirectory(candidates []Candidate) *StaticDirectory {
	return &StaticDirectory{candidates: candidates}
}

// List は候補者の一覧を返す
func (d *StaticDirectory) List(_ context.Context) ([]Candidate, error) {
	out := make([]Candidate, len(d.candidates))
	copy(out, d.candidates)
	return out, nil
}

// GetByID はIDから候補者を返す
func (d *StaticDirectory) GetByID(_ context.Context, id string) (*Candidate, error) {
	for _, c := range d.candidates {
		if c.ID == id {
			cc := c
			return &cc, nil
		}
	}
	return nil, ErrCandidateNotFound
}

var _ Directory = (*StaticDirectory)(nil)
