package resolve

// Action names a pipeline decision recorded in the trail.
type Action string

const (
	ActionDropped      Action = "dropped"
	ActionRecovered    Action = "street_recovered"
	ActionExact        Action = "exact"
	ActionPhonetic     Action = "phonetic"
	ActionEditDistance Action = "edit_distance"
	ActionContainment  Action = "containment_deleted"
	ActionDeduped      Action = "dedup_deleted"
)

// TrailEntry records one decision about one record.
type TrailEntry struct {
	RecordID int64  `json:"record_id"`
	Action   Action `json:"action"`
	City     string `json:"city"`
	Detail   string `json:"detail,omitempty"`
}

// Report carries the per-stage counters and the decision trail for one
// run. Counters are what a caller needs to judge the run; the trail is
// the record-level audit behind them.
type Report struct {
	Input              int          `json:"input"`
	Dropped            int          `json:"dropped"`
	StreetRecovered    int          `json:"street_recovered"`
	ExactMatches       int          `json:"exact_matches"`
	PhoneticMatches    int          `json:"phonetic_matches"`
	EditMatches        int          `json:"edit_matches"`
	ContainmentDeleted int          `json:"containment_deleted"`
	DedupDeleted       int          `json:"dedup_deleted"`
	Resolved           int          `json:"resolved"`
	Unresolved         int          `json:"unresolved"`
	Trail              []TrailEntry `json:"trail,omitempty"`
}

func (rep *Report) add(id int64, action Action, city, detail string) {
	rep.Trail = append(rep.Trail, TrailEntry{RecordID: id, Action: action, City: city, Detail: detail})
}
