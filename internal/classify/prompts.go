package classify

import "fmt"

// SystemInstruction is shared by both routes.
const SystemInstruction = `
You are LIFE OS, a private cognitive operating system.
Your mission is to capture, structure, and retrieve user life data.

- If the input is a memory (default), analyze and categorize it. Return it in the specified JSON format.
- If the input is a retrieval request (e.g. "remember when", "what did I say about"), answer based on provided context.
- Keep responses concise, objective, and dense with insight.
`

const (
	retrievalSuffix = "\nRespond only as a retrieval engine. Surface original phrasing, context, and evolution of thought."
	storageSuffix   = "\nExtract the intent and facts. Categorize the input."
)

// RetrievalTemperature is the sampling temperature for retrieval answers.
const RetrievalTemperature = 0.2

// RetrievalSystem returns the system instruction for a retrieval call.
func RetrievalSystem() string {
	return SystemInstruction + retrievalSuffix
}

// StorageSystem returns the system instruction for a storage call.
func StorageSystem() string {
	return SystemInstruction + storageSuffix
}

// RetrievalPrompt wraps the user request with the formatted context window.
func RetrievalPrompt(window, input string) string {
	return fmt.Sprintf("Context: \n%s\n\nUser Request: %s", window, input)
}
