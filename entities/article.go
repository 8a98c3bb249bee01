package entities

import "time"

type Genre string

const (
	GenreInformational Genre = "informational" // explains facts, no opinions
	GenreArgumentative Genre = "argumentative" // claim + 2-3 supporting reasons
)

func (g Genre) Valid() bool {
	return g == GenreInformational || g == GenreArgumentative
}

type Article struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"` // paragraphs separated by \n\n
	Genre      Genre     `json:"type"`
	Difficulty string    `json:"difficulty"` // fixed to "advanced" at generation time
	CreatedAt  time.Time `json:"-"`
}

// QuestionType tags a during-read question with what the student is probing for.
type QuestionType struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// GenreVocab is resolved once per article; every genre-conditional label in
// the journey comes from here instead of comparing genre strings around.
type GenreVocab struct {
	Label         string
	PostReadSlots int
	SlotTitles    []string // len == PostReadSlots, first-pass titles
	QuestionTypes []QuestionType
	QuestionHint  string // what good during-read questions focus on
	ActivityHint  string // what good activities focus on, for feedback prompts
}

var genreVocabs = map[Genre]GenreVocab{
	GenreInformational: {
		Label:         "informational article",
		PostReadSlots: 2,
		SlotTitles:    []string{"Summarize the article", "Things I still wonder about"},
		QuestionTypes: []QuestionType{
			{Tag: "center", Label: "finding the main idea"},
			{Tag: "new", Label: "newly learned fact"},
			{Tag: "detail", Label: "grasping details"},
			{Tag: "why", Label: "reasons and causes"},
			{Tag: "other", Label: "other"},
		},
		QuestionHint: "questions should focus on facts, main ideas and newly learned information (using 'what' and 'why')",
		ActivityHint: "the activity should focus on information, facts and the main idea of the article",
	},
	GenreArgumentative: {
		Label:         "argumentative article",
		PostReadSlots: 3,
		SlotTitles:    []string{"Compare my opinion with the writer's", "How my thinking changed", "My own opinion on the topic"},
		QuestionTypes: []QuestionType{
			{Tag: "opinion", Label: "the writer's opinion"},
			{Tag: "reason", Label: "validity of the reasons"},
			{Tag: "compare", Label: "comparing with my own view"},
			{Tag: "critique", Label: "critical thinking"},
			{Tag: "other", Label: "other"},
		},
		QuestionHint: "questions should focus on the writer's claim, how sound the reasons are, and the student's own position ('is this claim valid?', 'what would I do?')",
		ActivityHint: "the activity should focus on the writer's claim, the validity of the reasons, and comparing them with the student's own view",
	},
}

func (g Genre) Vocab() GenreVocab { return genreVocabs[g] }

// QuestionTypeLabel maps a tag back to its display label; unknown tags fall
// through to the tag itself so stored journeys never render blank.
func (g Genre) QuestionTypeLabel(tag string) string {
	for _, qt := range genreVocabs[g].QuestionTypes {
		if qt.Tag == tag {
			return qt.Label
		}
	}
	return tag
}
