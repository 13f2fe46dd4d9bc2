package lookup

// Phase 畫面目前處於哪個狀態
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseResult  Phase = "result"
)

// State 單一時間點的畫面狀態。
// 透過下面的建構函式產生，Loading、錯誤訊息、結果卡片三者最多只會有一個。
type State struct {
	Phase   Phase        `json:"phase"`
	Attempt uint64       `json:"attempt"`
	Message string       `json:"message,omitempty"`
	Country *CountryInfo `json:"country,omitempty"`
}

func Idle() State {
	return State{Phase: PhaseIdle}
}

func Loading(attempt uint64) State {
	return State{Phase: PhaseLoading, Attempt: attempt}
}

func Failed(attempt uint64, err error) State {
	return State{Phase: PhaseError, Attempt: attempt, Message: Message(err)}
}

func Resolved(attempt uint64, info CountryInfo) State {
	return State{Phase: PhaseResult, Attempt: attempt, Country: &info}
}

// Settled 是否已經有結果 (錯誤或成功)
func (s State) Settled() bool {
	return s.Phase == PhaseError || s.Phase == PhaseResult
}
