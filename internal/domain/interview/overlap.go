package interview

// FindConflict は候補イベントと同日イベント集合との時間帯重複を判定する
// 区間は [start, start+duration) の半開区間として扱うため、
// 連続する面接（前の終了時刻 == 次の開始時刻）は重複にならない。
// 編集中のイベントは ID の一致で比較対象から除外する。
// 走査は挿入順で行い、最初に見つかった重複イベントを返す。
func FindConflict(candidate *Interview, sameDay []*Interview) (*Interview, bool) {
	start := candidate.StartMinutes()
	end := candidate.EndMinutes()

	for _, other := range sameDay {
		if other.ID == candidate.ID && candidate.ID != 0 {
			continue
		}
		if other.Date != candidate.Date {
			continue
		}
		if start < other.EndMinutes() && other.StartMinutes() < end {
			return other, true
		}
	}
	return nil, false
}
