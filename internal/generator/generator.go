// Package generator produces grounded answers over retrieved library
// context using a chat completion model.
package generator

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/psdocs/docsearch/internal/retrieve"
)

const systemPrompt = `You are a support assistant for an internal document library.
Answer the question using ONLY the provided context excerpts. If the context
does not contain the answer, say so plainly instead of guessing. Cite the
source documents you used by their bracketed numbers.`

// Answer is the result of one generation call.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Context  string `json:"context"`
	Status   string `json:"status"` // "ok" or "no_context"
}

// Generator retrieves context and asks the chat model for a grounded answer.
type Generator struct {
	client    *openai.Client
	model     string
	retriever *retrieve.Retriever
}

// New creates a Generator.
func New(client *openai.Client, model string, retriever *retrieve.Retriever) *Generator {
	return &Generator{client: client, model: model, retriever: retriever}
}

// Generate answers a question over the indexed library. When retrieval
// yields nothing above minScore, it short-circuits without calling the
// model and reports status "no_context".
func (g *Generator) Generate(ctx context.Context, question string, k int, minScore float64) (*Answer, error) {
	contextBlock, err := g.retriever.RetrieveContext(ctx, question, k, minScore)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	if contextBlock == "" {
		return &Answer{
			Question: question,
			Answer:   "No relevant documents were found for this question.",
			Status:   "no_context",
		}, nil
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextBlock, question)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return &Answer{
		Question: question,
		Answer:   resp.Choices[0].Message.Content,
		Context:  contextBlock,
		Status:   "ok",
	}, nil
}
