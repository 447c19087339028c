package llm

import (
	_ "embed"
	"strings"
)

//go:embed prompts/tailor_v1.txt
var tailorPromptV1 string

// TailorPrompt renders the tailoring prompt for a base resume and a job
// description.
func TailorPrompt(baseResume, jobDescription string) string {
	prompt := strings.ReplaceAll(tailorPromptV1, "{{BASE_RESUME}}", baseResume)
	return strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)
}
