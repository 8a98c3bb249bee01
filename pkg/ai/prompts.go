// pkg/ai/prompts.go

package ai

import (
	"fmt"
	"strings"

	"readquest/entities"
)

func safetyPrompt(text string) string {
	return fmt.Sprintf(`
Analyze whether the following text contains unsafe content: profanity, insults, hate speech, sexual content, violent content, or mentions of living political figures.
Text: %q

Respond ONLY in this JSON shape:
{"safety": "SAFE" or "UNSAFE: [specific reason]"}

Judge dynamically from context and meaning, not from a hardcoded word list.
`, text)
}

// stageLabel names the step for the feedback prompt; the post-read labels
// depend on genre.
func stageLabel(step entities.StepKey, genre entities.Genre) string {
	vocab := genre.Vocab()
	slot := func(i int) string {
		if i < len(vocab.SlotTitles) {
			return vocab.SlotTitles[i]
		}
		return "activity"
	}
	switch step {
	case entities.StepPreRead:
		return "before reading (predictions / prior knowledge)"
	case entities.StepDuringRead:
		return "during reading (making questions)"
	case entities.StepAdjustment:
		return "adjusting my reading (how I got unstuck)"
	case entities.StepPostRead1:
		return "after reading (" + slot(0) + ")"
	case entities.StepPostRead2:
		return "after reading (" + slot(1) + ")"
	case entities.StepPostRead3:
		return "after reading (" + slot(2) + ")"
	}
	return string(step)
}

// Question-producing steps get the question rubric; everything else gets the
// general activity rubric.
func isQuestionStep(step entities.StepKey, genre entities.Genre) bool {
	if step == entities.StepDuringRead {
		return true
	}
	return step == entities.StepPostRead2 && genre == entities.GenreInformational
}

func feedbackPrompt(text string, step entities.StepKey, genre entities.Genre) string {
	vocab := genre.Vocab()
	if isQuestionStep(step, genre) {
		return fmt.Sprintf(`
You are an elementary school homeroom teacher evaluating a QUESTION a 4th-grade student made while reading. Never use pet names or greetings; comment only on the question itself, objectively and encouragingly.

[Student activity]
- Article kind: %s
- Step: %s
- The student's question: %q

[Feedback rules]
1. In 1-2 sentences, praise or encourage how well the question digs into what matters for this kind of article.
2. This is an %s: %s.
3. Based on rule 2, suggest ONE example of how the question could go deeper or what question could be added.
`, vocab.Label, stageLabel(step, genre), text, vocab.Label, vocab.QuestionHint)
	}
	return fmt.Sprintf(`
You are an elementary school homeroom teacher evaluating what a 4th-grade student WROTE during a reading activity. Never use pet names or greetings; comment only on the written content, objectively and encouragingly.

[Student activity]
- Article kind: %s
- Step: %s
- What the student wrote: %q

[Feedback rules]
1. In 1-2 sentences, praise or encourage the content.
2. This is an %s: %s.
3. Based on rule 2, offer 1-2 concrete sentences of advice to deepen the activity.
`, vocab.Label, stageLabel(step, genre), text, vocab.Label, vocab.ActivityHint)
}

func articlePrompt(genre entities.Genre, topic string) string {
	kind := "a text that objectively conveys facts or knowledge, with no opinions mixed in"
	if genre == entities.GenreArgumentative {
		kind = "a text that makes one clear claim about a topic and gives 2-3 supporting reasons"
	}
	topicLine := "Pick a topic freely that would spark a 4th grader's curiosity (space, animals, the environment, inventions, AI, future technology...)."
	if strings.TrimSpace(topic) != "" {
		topicLine = fmt.Sprintf("The topic MUST be %q.", topic)
	}
	return fmt.Sprintf(`
Write %s for a 4th-grade elementary school student.
Difficulty: slightly above 4th-grade vocabulary, 4-5 paragraphs, roughly 600-800 characters.
%s

Respond ONLY in this JSON shape:
{
  "title": "the article title",
  "body": "the article body, with \n\n between paragraphs"
}
`, kind, topicLine)
}

func journeySummary(j *entities.Journey) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Article kind: %s\nArticle title: %s\n", j.ArticleType.Vocab().Label, j.ArticleTitle)

	for _, key := range entities.StepOrder {
		rec := j.Step(key)
		if rec == nil {
			continue
		}
		title := stageLabel(key, j.ArticleType)
		if rec.Title != "" {
			title = fmt.Sprintf("after reading (%s)", rec.Title)
		}
		if key == entities.StepAdjustment && rec.Choice == "no" {
			fmt.Fprintf(&b, "\n- %s: chose \"nothing was hard to understand\".\n", title)
			continue
		}
		v1 := rec.FirstVersion()
		if v1 == "" {
			continue
		}
		feedback := rec.Feedback
		if feedback == "" {
			feedback = "not requested"
		}
		v2 := rec.SecondVersion()
		if v2 == "" {
			v2 = "not revised"
		}
		fmt.Fprintf(&b, "\n- %s:\n  - student work (v1): %s\n  - AI feedback: %s\n  - student revision (v2): %s\n", title, v1, feedback, v2)
	}
	return b.String()
}

func evaluationPrompt(j *entities.Journey) string {
	return fmt.Sprintf(`
You are an elementary school homeroom teacher evaluating a 4th grader's reading activity report. Never use pet names or greetings; evaluate only the activity, thoroughly, in a very kind and encouraging tone.

[Standard]
The student uses questions to read predictively and monitors their own reading process.

[Rubric]
- Excellent: uses fitting questions before/during/after reading AND self-adjusts (the v2 revision after feedback improved on v1).
- Good: uses fitting questions before/during/after reading (solid v1 work).
- Needs support: needs help looking back on their own reading.

[Key activities by article kind]
- informational article: finding facts, main ideas, summarizing, noting open questions.
- argumentative article: predicting the claim, judging the validity of reasons, comparing with one's own opinion.

[Student activity summary]
%s

[Report to write]
Based on the summary above and the rubric, write the evaluation in three parts, formatted with HTML <p>, <ul>, <li> and <strong> tags for readability:

1. **Overall evaluation:** pick Excellent / Good / Needs support, bold the choice with <strong>, and explain why.
2. **Step-by-step evaluation:** for before, during and after reading, assess whether the v1 work fit the article kind; also assess the adjustment step.
3. **Growth:** compare v2 against v1 where the student revised after feedback, say whether that reaches the self-adjusting "Excellent" level, and if nothing was revised, note it and encourage the next attempt.
`, journeySummary(j))
}
