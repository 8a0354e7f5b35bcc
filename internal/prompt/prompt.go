// Package prompt renders the generation instruction sent to the model.
package prompt

import (
	"strings"

	"github.com/pavelanni/mockexam/internal/model"
)

const (
	mcqInstruction  = "an MCQ (Multiple Choice Question) with 4 options labeled 'option1' to 'option4'"
	titaInstruction = "a TITA (Type In The Answer) question where the answer is a numerical value or short text"

	mcqSchema  = `{"question_text": "...", "option1": "...", "option2": "...", "option3": "...", "option4": "...", "answer": "The correct option text", "explanation": "A brief explanation."}`
	titaSchema = `{"question_text": "...", "answer": "The numerical or short text answer", "explanation": "A brief explanation."}`
)

// Build renders the instruction for generating one question: the target
// section and kind, the retrieved exemplars to imitate, and the JSON
// output contract the model must follow with no surrounding prose.
func Build(examName, sectionTag string, kind model.QuestionKind, exemplars []string) string {
	kindInstruction := titaInstruction
	schema := titaSchema
	schemaLabel := "For TITA"
	if kind == model.KindMCQ {
		kindInstruction = mcqInstruction
		schema = mcqSchema
		schemaLabel = "For MCQ"
	}

	var sb strings.Builder
	sb.WriteString("You are an expert question setter for the " + examName + " exam.\n")
	sb.WriteString("Your task is to generate a new, original question for the '" + sectionTag + "' section.\n")
	sb.WriteString("The question must be of type: " + kindInstruction + ".\n")
	sb.WriteString("It should be of a similar style, topic, and difficulty level to the following examples:\n")
	sb.WriteString("---\n")
	sb.WriteString(strings.Join(exemplars, "\n---\n"))
	sb.WriteString("\n---\n")
	sb.WriteString("Your entire response MUST be a single, valid JSON object. Do not include any other text, markdown, or explanation.\n")
	sb.WriteString("The JSON object must have the following structure:\n")
	sb.WriteString(schemaLabel + ": " + schema + "\n")

	return sb.String()
}
