package agent

import (
	"fmt"
	"strings"

	"docqa/types"
)

// BuildPrompt enumerates the retrieved chunks verbatim under stable labels
// and demands a structured three-field reply the parser can extract.
func BuildPrompt(question string, retrieved []types.ScoredChunk) string {
	return fmt.Sprintf(`You are an expert insurance and legal document analyst. Answer the question using ONLY the document context below.

DOCUMENT CONTEXT:
%s
QUESTION: %s

INSTRUCTIONS:
1. Answer based only on the provided context.
2. If the information is not in the context, answer "The information is not available in the provided document".
3. Quote the EXACT clause or sentence that supports your answer.
4. Include specific numbers, durations, and conditions stated in the document.
5. Give a one-sentence justification for your conclusion.

RESPONSE FORMAT:
Answer: [your direct answer to the question]
Source Clause: [exact quote from the document]
Reasoning: [one-sentence justification based on the quoted clause]`, chunkContext(retrieved), question)
}

// BuildStrictPrompt is the retry reformulation after a malformed reply.
func BuildStrictPrompt(question string, retrieved []types.ScoredChunk) string {
	return fmt.Sprintf(`Your previous reply could not be parsed. Follow the output format EXACTLY this time.

RULES:
- Output exactly three lines, nothing else.
- Line 1 starts with "Answer: ", line 2 with "Source Clause: ", line 3 with "Reasoning: ".
- No markdown, no preamble, no extra commentary.
- The Source Clause must be copied verbatim from the context.

DOCUMENT CONTEXT:
%s
QUESTION: %s

Answer:
Source Clause:
Reasoning:`, chunkContext(retrieved), question)
}

func chunkContext(retrieved []types.ScoredChunk) string {
	var sb strings.Builder
	for i, sc := range retrieved {
		sb.WriteString(fmt.Sprintf("CHUNK %d:\n%s\n\n", i+1, sc.Chunk.Text))
	}
	return sb.String()
}
