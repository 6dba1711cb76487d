package ai

import (
	"fmt"
	"strings"
)

func buildGradingPrompt(meta AssignmentMeta, answerText string) string {
	builder := strings.Builder{}
	builder.WriteString("You are an expert teacher analyzing a student's homework submission.\n\n")
	builder.WriteString("HOMEWORK DETAILS:\n")
	fmt.Fprintf(&builder, "- Subject: %s\n", meta.Subject)
	fmt.Fprintf(&builder, "- Level: %s\n", meta.Level)
	fmt.Fprintf(&builder, "- Title: %s\n", meta.Title)
	fmt.Fprintf(&builder, "- Total Marks: %d\n", meta.TotalMarks)
	fmt.Fprintf(&builder, "- Number of Questions: %d\n", meta.NumQuestions)
	builder.WriteString("\nSTUDENT'S ANSWER:\n")
	builder.WriteString(answerText)
	builder.WriteString("\n\nReturn JSON with overall_score (0-100), overall_strengths, overall_improvements, ")
	builder.WriteString("and a questions array of {number, title, marks_awarded, marks_total, percentage, strengths, improvements}.\n")
	builder.WriteString("Identify SPECIFIC MISCONCEPTIONS if present. Be constructive but honest about errors. ")
	fmt.Fprintf(&builder, "Generate exactly %d question entries.", meta.NumQuestions)
	return builder.String()
}

func buildQuestionPrompt(meta AssignmentMeta, weakAreas []string) string {
	focus := "General understanding"
	if len(weakAreas) > 0 {
		focus = strings.Join(weakAreas, ", ")
	}

	builder := strings.Builder{}
	builder.WriteString("Generate 5 interview questions to assess a student's understanding.\n\n")
	builder.WriteString("CONTEXT:\n")
	fmt.Fprintf(&builder, "- Subject: %s\n", meta.Subject)
	fmt.Fprintf(&builder, "- Level: %s\n", meta.Level)
	fmt.Fprintf(&builder, "- Areas needing improvement: %s\n", focus)
	builder.WriteString("\nGENERATE 5 QUESTIONS:\n")
	builder.WriteString("1. Process question (explain their approach)\n")
	builder.WriteString("2. Concept question (deeper understanding)\n")
	builder.WriteString("3. Application question (real-world use)\n")
	builder.WriteString("4. Reflection question (metacognition)\n")
	builder.WriteString("5. Extension question (going further)\n\n")
	builder.WriteString("Return JSON: {\"questions\": [{number, type, title, question, hints}]}. ")
	builder.WriteString("Make questions specific to the weak areas identified.")
	return builder.String()
}

func buildInterviewPrompt(meta AssignmentMeta, writtenScore, durationSeconds int, transcript string) string {
	builder := strings.Builder{}
	builder.WriteString("You are an expert educational assessor analyzing a student's VERBAL INTERVIEW responses.\n\n")
	builder.WriteString("HOMEWORK CONTEXT:\n")
	fmt.Fprintf(&builder, "- Subject: %s\n", meta.Subject)
	fmt.Fprintf(&builder, "- Level: %s\n", meta.Level)
	fmt.Fprintf(&builder, "- Written Score: %d%%\n", writtenScore)
	builder.WriteString("\nSTUDENT'S VERBAL RESPONSES (from interview):\n")
	builder.WriteString(transcript)
	fmt.Fprintf(&builder, "\n\nINTERVIEW DURATION: %d seconds\n\n", durationSeconds)
	builder.WriteString("Return JSON with interview_score, problem_solving_score, conceptual_understanding_score, ")
	builder.WriteString("creative_application_score (all 0-100), misconceptions, strong_moments, development_areas, ")
	builder.WriteString("and overall_analysis comparing verbal vs written performance.\n")
	builder.WriteString("Be SPECIFIC - reference actual things the student said. Identify REAL misconceptions, not generic feedback.")
	return builder.String()
}

func buildStudyPlanPrompt(scores ScoreSummary, weak, strong []TopicResult, subScores InterviewSubScores) string {
	builder := strings.Builder{}
	builder.WriteString("Generate a personalized study plan for a student.\n\n")
	builder.WriteString("PERFORMANCE DATA:\n")
	fmt.Fprintf(&builder, "- Written Score: %d%%\n", scores.WrittenScore)
	fmt.Fprintf(&builder, "- Interview Score: %d%%\n", scores.InterviewScore)
	fmt.Fprintf(&builder, "- Problem Solving: %d%%\n", subScores.ProblemSolving)
	fmt.Fprintf(&builder, "- Conceptual Understanding: %d%%\n", subScores.ConceptualUnderstanding)
	fmt.Fprintf(&builder, "- Weak Areas: %s\n", joinTopics(weak))
	fmt.Fprintf(&builder, "- Strong Areas: %s\n", joinTopics(strong))
	builder.WriteString("\nReturn JSON with priority_topics ([{topic, priority (high|medium), current_score, actions}]), ")
	builder.WriteString("strength_topics, written_vs_verbal_analysis, and learning_style_insights.\n")
	builder.WriteString("Provide actionable, specific recommendations.")
	return builder.String()
}

func joinTopics(topics []TopicResult) string {
	titles := make([]string, 0, len(topics))
	for _, topic := range topics {
		titles = append(titles, topic.Title)
	}
	return strings.Join(titles, ", ")
}
