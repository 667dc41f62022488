package service

import (
	"regexp"
	"strings"
)

// Tag matching is case-insensitive and dot-matches-newline, so multi-line
// reasoning blocks are captured whole.
var (
	reasoningTagRe = regexp.MustCompile(`(?is)<reasoning>(.*?)</reasoning>`)
	answerTagRe    = regexp.MustCompile(`(?is)<answer>(.*?)</answer>`)
)

// missingAnswerPlaceholder stands in when the model returned only a
// reasoning block and nothing else.
const missingAnswerPlaceholder = "..."

// ParseReasoningResponse splits a raw model response into an optional
// reasoning segment and the final answer. Callers invoke it only when
// structured output was requested; a nil reasoning result is a soft
// warning, not an error, and the returned answer is still usable.
//
// Priority order:
//  1. a <reasoning> region, if present, is extracted and trimmed;
//  2. an <answer> region, if present, becomes the answer;
//  3. with reasoning but no <answer> region, the answer is the raw text
//     with the reasoning region removed (placeholder if that leaves
//     nothing);
//  4. with no tags at all, the answer is the raw text unchanged.
func ParseReasoningResponse(raw string) (reasoning *string, answer string) {
	answer = raw

	if m := reasoningTagRe.FindStringSubmatch(raw); m != nil {
		trimmed := strings.TrimSpace(m[1])
		reasoning = &trimmed
	}

	if m := answerTagRe.FindStringSubmatch(raw); m != nil {
		answer = strings.TrimSpace(m[1])
	} else if reasoning != nil {
		answer = strings.TrimSpace(reasoningTagRe.ReplaceAllString(raw, ""))
		if answer == "" {
			answer = missingAnswerPlaceholder
		}
	}

	return reasoning, answer
}
