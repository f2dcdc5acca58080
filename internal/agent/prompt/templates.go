package prompt

// AnalysisPromptTemplate asks for a structured literary analysis of one
// book. Args: title, author. The field-level guidance lives in the response
// schema descriptions.
const AnalysisPromptTemplate = `Analyze the book %q by %s. Provide a concise summary, the main themes, the key characters, the literary style, and a primary genre.`

// RecommendationPromptTemplate asks for new titles given the reader's
// current list. Args: formatted book list.
const RecommendationPromptTemplate = `Based on this list of books from a reader: %s. Recommend 3 new books they might enjoy. Return only the titles and authors.`

// ChatSystemInstructionTemplate establishes the per-book conversational
// persona. Args: title, author.
const ChatSystemInstructionTemplate = `You are a literary expert with encyclopedic knowledge of the book %q by %s.
Answer the reader's questions about the plot, the meaning, the symbolism, or the characters.
Be insightful, but avoid major spoilers unless explicitly asked.
Keep a helpful, academic but accessible tone.`
