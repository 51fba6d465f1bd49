// Package llm implements the content-generation collaborator over the
// Gemini API. Prompting and response splitting live here; the core never
// sees the transport. No retry or timeout policy is applied in this
// package beyond what the genai client does itself.
package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/quillview/studycore/internal/gen"
	"github.com/quillview/studycore/internal/model"
)

const defaultModel = "gemini-2.0-flash"

// GeminiGenerator generates study content through the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

var _ gen.ContentGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a generator. An empty model falls back to the
// package default.
func NewGeminiGenerator(ctx context.Context, apiKey, modelName string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: modelName}, nil
}

func (g *GeminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty response")
	}
	return text, nil
}

// GenerateNotes implements gen.ContentGenerator.
func (g *GeminiGenerator) GenerateNotes(ctx context.Context, topic string, count int) ([]model.NoteDraft, error) {
	prompt := fmt.Sprintf(
		"Write %d concise study notes about %q. Separate notes with a line containing only ---. "+
			"Start each note with a short title line, then the body.", count, topic)
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	notes := parseNotes(text, topic, count)
	if len(notes) == 0 {
		return nil, fmt.Errorf("no notes parsed from response")
	}
	return notes, nil
}

func parseNotes(text, topic string, count int) []model.NoteDraft {
	var notes []model.NoteDraft
	for _, section := range strings.Split(text, "\n---\n") {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		title, body, _ := strings.Cut(section, "\n")
		notes = append(notes, model.NoteDraft{
			Title: strings.TrimSpace(title),
			Body:  strings.TrimSpace(body),
			Topic: topic,
		})
		if len(notes) == count {
			break
		}
	}
	return notes
}

// GenerateFlashcards implements gen.ContentGenerator.
func (g *GeminiGenerator) GenerateFlashcards(ctx context.Context, topic string, count int) ([]model.CardDraft, error) {
	prompt := fmt.Sprintf(
		"Write %d flashcards about %q. One card per line, formatted exactly as: question :: answer",
		count, topic)
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cards := parseCards(text, topic, count)
	if len(cards) == 0 {
		return nil, fmt.Errorf("no flashcards parsed from response")
	}
	return cards, nil
}

func parseCards(text, topic string, count int) []model.CardDraft {
	var cards []model.CardDraft
	for _, line := range strings.Split(text, "\n") {
		front, back, ok := strings.Cut(line, "::")
		if !ok {
			continue
		}
		cards = append(cards, model.CardDraft{
			Front: strings.TrimSpace(front),
			Back:  strings.TrimSpace(back),
			Topic: topic,
		})
		if len(cards) == count {
			break
		}
	}
	return cards
}

// GenerateSchedule implements gen.ContentGenerator.
func (g *GeminiGenerator) GenerateSchedule(ctx context.Context, topic string) ([]model.ScheduleItemDraft, error) {
	prompt := fmt.Sprintf(
		"Write a short day-by-day study plan for %q. One entry per line, formatted exactly as: "+
			"day number :: what to study", topic)
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	items := parseSchedule(text, topic)
	if len(items) == 0 {
		return nil, fmt.Errorf("no schedule entries parsed from response")
	}
	return items, nil
}

func parseSchedule(text, topic string) []model.ScheduleItemDraft {
	var items []model.ScheduleItemDraft
	for _, line := range strings.Split(text, "\n") {
		dayField, title, ok := strings.Cut(line, "::")
		if !ok {
			continue
		}
		day, err := strconv.Atoi(strings.TrimSpace(dayField))
		if err != nil {
			day = len(items) + 1
		}
		items = append(items, model.ScheduleItemDraft{
			Title:  strings.TrimSpace(title),
			Topic:  topic,
			DayNum: day,
		})
	}
	return items
}

// GenerateFun implements gen.ContentGenerator.
func (g *GeminiGenerator) GenerateFun(ctx context.Context, topic, kind string) (string, error) {
	if kind == "" {
		kind = "fun fact"
	}
	return g.generate(ctx, fmt.Sprintf("Tell me a short %s about %q.", kind, topic))
}

// Close releases the underlying client. genai.Client holds no resources
// that need explicit release, so this is a no-op.
func (g *GeminiGenerator) Close() error {
	return nil
}
