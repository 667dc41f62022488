package service

import "fmt"

// baseSystemMessage is the fixed persona every completion request starts
// from, on both the direct and restaurant branches.
const baseSystemMessage = "You are Merlin, a helpful AI assistant. Provide detailed, accurate, and relevant responses. " +
	"Be concise when appropriate but comprehensive when needed. " +
	"If the user asks about coding, provide clear code examples using markdown code blocks. " +
	"For HTML snippets, use ```html ... ```. For Python, use ```python ... ```, etc. " +
	"Structure your answers clearly using paragraphs, lists, or other formatting as needed."

const documentContextHeader = "CONTEXT FROM UPLOADED DOCUMENTS:"

// reasoningInstructions directs the model to wrap its chain-of-thought and
// final answer in the two tag pairs that ParseReasoningResponse expects.
// The worked example is part of the instructions themselves.
const reasoningInstructions = "\n\nIMPORTANT: Structure your response as follows:\n" +
	"1. First, provide your step-by-step reasoning within <reasoning> tags. Explain how you interpret the request, relevant context (like documents), and how you arrive at the answer.\n" +
	"2. After the reasoning, provide the final, direct answer to the user's query within <answer> tags.\n" +
	"Example:\n<reasoning>\nThe user is asking about X based on the provided document Z. Document Z states Y. Therefore, the answer involves combining information about X and Y.\n</reasoning>\n<answer>\nBased on document Z, the details about X are Y.\n</answer>"

// BuildSystemPrompt assembles the system message for the direct-answer
// branch. Ordering matters: persona, then document context, then the
// structured-output instructions, so the parser's tags are always the last
// thing the model reads.
func BuildSystemPrompt(documentContext string, useReasoning bool) string {
	prompt := baseSystemMessage
	if documentContext != "" {
		prompt += "\n\n" + documentContextHeader + "\n" + documentContext
	}
	if useReasoning {
		prompt += reasoningInstructions
	}
	return prompt
}

// BuildRestaurantPrompt assembles the user message for the restaurant
// branch. It embeds the user's coordinates, their raw message and the
// formatted nearby-places block. This prompt never carries the reasoning
// instructions; the restaurant branch does not request structured output.
func BuildRestaurantPrompt(lat, lng float64, message, formattedPlaces string) string {
	return fmt.Sprintf(
		"User's location: (%v, %v)\n"+
			"User's message: %s\n"+
			"%s\n"+
			"Task: Suggest one or more restaurants based on the user's preferences (or lack thereof). "+
			"For each restaurant, provide the following details:\n"+
			"1. Name of the restaurant\n"+
			"2. Notable reason(s) to recommend it\n"+
			"3. Address\n"+
			"4. Google Maps Link: Use this format: put the name of the restaurant as a link: https://www.google.com/maps/search/?api=1&query=%v,%v\n"+
			"If preferences are unclear, suggest a variety of options and explain why each is a good choice. "+
			"Ask follow-up questions if needed to clarify their food interests.",
		lat, lng, message, formattedPlaces, lat, lng,
	)
}
