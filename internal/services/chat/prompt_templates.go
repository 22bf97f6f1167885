package chat

// expertPreamble frames every prompt with the domain-expert persona.
const expertPreamble = `You are an expert IRS tax assistant with a deep understanding of IRS guidelines and general U.S. tax laws.`

// contextIntro precedes the context section when document chunks are
// available.
const contextIntro = `Below is CONTEXT extracted from IRS documents. Use it to assist in answering the QUESTION.
If the context does not fully answer the question, rely on your general knowledge of U.S. tax regulations.`

// chunkSeparator joins chunk texts while preserving chunk boundaries.
const chunkSeparator = "\n\n---\n\n"

// contextInstructions is the instruction block for grounded answers.
const contextInstructions = `INSTRUCTIONS:
- Provide clear, concise, and authoritative answers.
- Answer from the given context when it is sufficient to determine the answer.
- Do not invent information.
- If relevant, recommend IRS forms or publications.
- If the context is insufficient, fall back on your expert knowledge of the IRS taxation system.`

// bareInstructions is the instruction block when no context is available.
const bareInstructions = `INSTRUCTIONS:
- Provide clear, concise, and authoritative answers.
- Do not invent information.
- If relevant, recommend IRS forms or publications.`

// condenseInstruction tells the completion service to fold the
// conversation so far and the new question into one retrieval query.
const condenseInstruction = `Rewrite the latest QUESTION as a single, self-contained search query, resolving any references to the CONVERSATION so far. Reply with only the query text.`
