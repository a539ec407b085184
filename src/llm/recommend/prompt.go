package recommend

import (
	"strings"

	"dinner_planner/src/model"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

func getNarrativeSystemTemplate() string {
	return `You are a smart dinner planner assistant who knows the local dining scene well.

-Goal-
Recommend 3-5 restaurants that fit the diner's preferences.

FORMAT:
- Start with a one line summary of what you looked for
- Use a markdown header for each restaurant and put its name in **bold**
- Under each header use short bullet points: cuisine, price range, why it fits, best time to go
- End with one practical tip (booking, parking, dress code)

RULES:
1. Stay within the stated budget and location
2. Prefer places mentioned in the recent search information when it is relevant
3. Keep the whole answer under 350 words`
}

func getNarrativeUserTemplate() string {
	return `Diner preferences:
- Location: {location}
- Time: {time}
- Budget: {budget}
- Preferences: {preferences}
{additional_request}
Recent search information:
{search_context}`
}

func getStructuredSystemTemplate() string {
	return `You generate structured restaurant data for a dinner planning app.

Return ONLY a JSON array with 3-4 restaurant objects and nothing else. Each object MUST have exactly these fields:
[
  {{
    "id": "unique_id_1",
    "name": "Restaurant Name",
    "cuisine": "Cuisine Type",
    "rating": 4.5,
    "priceRange": "RM60-100",
    "distance": "1.2 km",
    "description": "One or two sentences on food and atmosphere",
    "image": "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800&h=600&fit=crop",
    "features": ["Feature 1", "Feature 2", "Feature 3"]
  }}
]

STRICT RULES:
1. "rating" is a number between 4.0 and 5.0
2. "distance" is between 0.5 and 5 km, formatted like "2.3 km"
3. "image" is a real Unsplash food or restaurant photo URL
4. Every "id" is unique and every "name" is different
5. Do NOT wrap the array in markdown or add commentary`
}

func getStructuredUserTemplate() string {
	return `Generate restaurants for these preferences:
- Location: {location}
- Time: {time}
- Budget: {budget}
- Preferences: {preferences}
{additional_request}
Recent search information:
{search_context}`
}

func createNarrativeTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString,
		schema.SystemMessage(getNarrativeSystemTemplate()),
		schema.UserMessage(getNarrativeUserTemplate()),
	)
}

func createStructuredTemplate() prompt.ChatTemplate {
	return prompt.FromMessages(schema.FString,
		schema.SystemMessage(getStructuredSystemTemplate()),
		schema.UserMessage(getStructuredUserTemplate()),
	)
}

func templateVars(prefs model.PreferenceRecord, summary, additionalRequest string) map[string]any {
	searchContext := strings.TrimSpace(summary)
	if searchContext == "" {
		searchContext = "None available."
	}

	additional := ""
	if strings.TrimSpace(additionalRequest) != "" {
		additional = "- Additional request: " + strings.TrimSpace(additionalRequest) + "\n"
	}

	return map[string]any{
		"location":           prefs.Location,
		"time":               prefs.Time,
		"budget":             prefs.Budget,
		"preferences":        strings.Join(prefs.Preferences, ", "),
		"additional_request": additional,
		"search_context":     searchContext,
	}
}
