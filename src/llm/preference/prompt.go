package preference

import (
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

func getSystemTemplate() string {
	return `You are the preference extractor of a smart dinner planner.

-Goal-
Analyze the conversation and extract the diner's dining preferences.

Return ONLY a JSON object with exactly these four fields:
{{
  "location": "<where they want to eat, e.g. Bangsar, Kuala Lumpur or Near me>",
  "time": "<when they want to eat, e.g. Tonight, 7 PM>",
  "budget": "<price range per person, e.g. RM60-120>",
  "preferences": ["<short tag>", "<short tag>"]
}}

STRICT RULES:
1. Always provide reasonable defaults if information is missing
2. "preferences" MUST be an array of 2-5 short tags covering cuisine, atmosphere and dietary needs
3. Use the user's location below when they say "near me" or give no location
4. Do NOT add other fields, explanations or markdown

User location: {location_context}`
}

func getUserTemplate() string {
	return `Extract preferences from this conversation: {conversation}`
}

func createPreferenceTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString,
		schema.SystemMessage(getSystemTemplate()),
		schema.UserMessage(getUserTemplate()),
	)
}
