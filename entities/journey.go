package entities

// Stage is a screen-level position in the exercise. The four reading stages
// are ordered; summary and report are control stages reached after them.
type Stage string

const (
	StagePreRead    Stage = "pre-read"
	StageDuringRead Stage = "during-read"
	StageAdjustment Stage = "adjustment"
	StagePostRead   Stage = "post-read"
	StageSummary    Stage = "summary"
	StageReport     Stage = "report"
)

func (s Stage) Valid() bool {
	switch s {
	case StagePreRead, StageDuringRead, StageAdjustment, StagePostRead, StageSummary, StageReport:
		return true
	}
	return false
}

// Next is total: report is terminal and maps to itself.
func (s Stage) Next() Stage {
	switch s {
	case StagePreRead:
		return StageDuringRead
	case StageDuringRead:
		return StageAdjustment
	case StageAdjustment:
		return StagePostRead
	case StagePostRead:
		return StageSummary
	case StageSummary:
		return StageReport
	default:
		return StageReport
	}
}

// StepKey identifies one stored step record. The post-read stage fans out
// into up to three records, one per sub-slot.
type StepKey string

const (
	StepPreRead    StepKey = "pre-read"
	StepDuringRead StepKey = "during-read"
	StepAdjustment StepKey = "adjustment"
	StepPostRead1  StepKey = "post-read-1"
	StepPostRead2  StepKey = "post-read-2"
	StepPostRead3  StepKey = "post-read-3"
)

// StepOrder is the record order used for the feedback queue and the report.
var StepOrder = []StepKey{StepPreRead, StepDuringRead, StepAdjustment, StepPostRead1, StepPostRead2, StepPostRead3}

func PostReadKey(slot int) StepKey {
	switch slot {
	case 1:
		return StepPostRead1
	case 2:
		return StepPostRead2
	default:
		return StepPostRead3
	}
}

type Question struct {
	Type     string `json:"type"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// StepRecord is shared by all step kinds; each kind fills its own v1/v2
// family and leaves the rest empty. JSON names match the persisted journeys
// the browser app wrote, so old sessions stay readable.
type StepRecord struct {
	NoteV1     string     `json:"note_v1,omitempty"` // pre-read
	NoteV2     string     `json:"note_v2,omitempty"`
	V1         string     `json:"v1,omitempty"` // during-read, post-read
	V2         string     `json:"v2,omitempty"`
	Questions  []Question `json:"questions,omitempty"`   // during-read structure behind V1
	Choice     string     `json:"choice,omitempty"`      // adjustment: "yes" | "no"
	SolutionV1 string     `json:"solution_v1,omitempty"` // adjustment, choice == "yes"
	SolutionV2 string     `json:"solution_v2,omitempty"`
	Title      string     `json:"title,omitempty"` // post-read slot title
	Feedback   string     `json:"feedback,omitempty"`
}

// FirstVersion returns whichever v1-family field the record carries.
func (r *StepRecord) FirstVersion() string {
	if r == nil {
		return ""
	}
	switch {
	case r.NoteV1 != "":
		return r.NoteV1
	case r.SolutionV1 != "":
		return r.SolutionV1
	default:
		return r.V1
	}
}

func (r *StepRecord) SecondVersion() string {
	if r == nil {
		return ""
	}
	switch {
	case r.NoteV2 != "":
		return r.NoteV2
	case r.SolutionV2 != "":
		return r.SolutionV2
	default:
		return r.V2
	}
}

// NeedsFeedback: a record with work in it, no feedback yet, and not the
// "nothing was hard" adjustment answer.
func (r *StepRecord) NeedsFeedback() bool {
	return r != nil && r.FirstVersion() != "" && r.Feedback == "" && r.Choice != "no"
}

// Journey is the student's progress against one article. Article fields are
// denormalized in so the journey survives independently of the article row.
type Journey struct {
	ArticleTitle string                  `json:"articleTitle"`
	ArticleBody  string                  `json:"articleBody"`
	ArticleType  Genre                   `json:"articleType"`
	Steps        map[StepKey]*StepRecord `json:"steps"`
}

func NewJourney(a *Article) *Journey {
	return &Journey{
		ArticleTitle: a.Title,
		ArticleBody:  a.Body,
		ArticleType:  a.Genre,
		Steps:        map[StepKey]*StepRecord{},
	}
}

func (j *Journey) Step(k StepKey) *StepRecord {
	if j == nil || j.Steps == nil {
		return nil
	}
	return j.Steps[k]
}

func (j *Journey) HasPostRead() bool {
	return j.Step(StepPostRead1) != nil || j.Step(StepPostRead2) != nil || j.Step(StepPostRead3) != nil
}

// RequiredStepsDone gates bulk feedback and the report button.
func (j *Journey) RequiredStepsDone() bool {
	if j == nil {
		return false
	}
	return j.Step(StepPreRead).FirstVersion() != "" &&
		j.Step(StepDuringRead).FirstVersion() != "" &&
		j.Step(StepAdjustment) != nil && j.Step(StepAdjustment).Choice != "" &&
		j.HasPostRead()
}
