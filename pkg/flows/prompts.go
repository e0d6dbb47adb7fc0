package flows

const identifySlangPromptTemplate = `You are an expert in slang and informal language from around the world.
Identify every slang term or slang phrase in the text below. Multi-word phrases such as "no cap" count as
a single term. Ignore standard vocabulary, names and ordinary idioms.

For each slang term provide:
- term: the term exactly as it appears in the text, with its original casing
- meaning: what the term means in this context
- countryOfOrigin: the country or region where the term originated
- estimatedAgeRange: the age range of people who typically use it, e.g. "16-28"
- startIndex: the zero-based character index where the term starts in the text
- endIndex: the character index just past the end of the term

List the terms in the order they appear. If the text contains no slang, return an empty list of terms.

Text: {{ .Text | trim }}`

const summarizeSlangUsagePromptTemplate = `You are an expert in sociolinguistics. Analyze the provided text and the slang within it to give a
high-level summary. Based on all the slang terms present, determine the most likely country of origin and
the general age demographic of the speaker.

Provide a concise, one-sentence summary for each field. For example, "Primarily American (US) with some
British (UK) influence." or "Likely Gen Z or young Millennials (16-28 years old)."

Text: {{ .Text | trim }}`

const displaySlangInfoPromptTemplate = `You are a slang dictionary. A user will provide you with a slang term, and you must provide:

- definition: The definition of the slang term.
- countryOfOrigin: The country of origin of the slang term.
- estimatedAgeRange: The estimated age range of people who use the slang term.

Slang Term: {{ .Slang | trim | quote }}`
