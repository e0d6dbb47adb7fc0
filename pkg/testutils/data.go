package testutils

// Canned model completions used across package tests.
const (
	DefaultText = "That new track is fire, it really slaps. No cap."

	IdentifyResponse = `{"terms": [
  {"term": "fire", "meaning": "Excellent or exciting.", "countryOfOrigin": "United States", "estimatedAgeRange": "16-30", "startIndex": 18, "endIndex": 22},
  {"term": "slaps", "meaning": "Is really good, especially music.", "countryOfOrigin": "United States", "estimatedAgeRange": "16-28", "startIndex": 34, "endIndex": 39},
  {"term": "No cap", "meaning": "No lie; for real.", "countryOfOrigin": "United States", "estimatedAgeRange": "14-25", "startIndex": 41, "endIndex": 47}
]}`

	// IdentifyResponseFenced has wrong indices and is wrapped in prose and a code fence.
	IdentifyResponseFenced = "Sure! Here is the analysis:\n```json\n" + `{"terms": [
  {"term": "slaps", "meaning": "Is really good.", "countryOfOrigin": "United States", "estimatedAgeRange": "16-28", "startIndex": 0, "endIndex": 5}
]}` + "\n```\nLet me know if you need anything else."

	EmptyIdentifyResponse = `{"terms": []}`

	SummaryResponse = `{"summaryCountryOfOrigin": "Primarily American (US).", "summaryEstimatedAgeRange": "Likely Gen Z (16-28 years old)."}`

	TermInfoResponse = `{"definition": "Something excellent.", "countryOfOrigin": "United States", "estimatedAgeRange": "16-30"}`

	MalformedResponse = `I'm sorry, I can't help with that.`
)
