// Package enrich patches unresolved place rows through an LLM. It is a
// post-pass over the persistence layer: the resolution pipeline never
// depends on it.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/config"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/gazetteer"
	"github.com/mohamed-bouchalkha/LLM-HospitalDB-Filler-V2/internal/logging"
)

// fallbackModels are tried in order until one answers with parseable
// fixes. Cheap and fast first.
var fallbackModels = []string{
	"meta-llama/llama-3.1-8b-instruct",
	"google/gemini-flash-1.5",
	"meta-llama/llama-3.3-70b-instruct",
}

const systemPrompt = "You are an expert on Moroccan administrative geography. " +
	"You complete and correct region and province data for Moroccan localities."

// Row is one unresolved place pending enrichment.
type Row struct {
	ID   int64  `json:"id"`
	City string `json:"city"`
}

// Enricher asks an OpenRouter-hosted model to repair unresolved rows,
// consulting a file cache before spending API calls.
type Enricher struct {
	client  *openai.Client
	limiter *rate.Limiter
	models  []string
	cache   *fileCache
	batch   int
	logger  *zap.Logger
}

// New builds an Enricher from configuration. The API key is required.
func New(cfg config.EnrichConfig, logger *zap.Logger) (*Enricher, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENROUTER_API_KEY is not set")
	}

	cc := openai.DefaultConfig(cfg.APIKey)
	cc.BaseURL = cfg.BaseURL

	models := fallbackModels
	if cfg.Model != "" {
		models = append([]string{cfg.Model}, fallbackModels...)
	}

	cache, err := openCache(cfg.CachePath)
	if err != nil {
		return nil, err
	}

	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 20
	}

	return &Enricher{
		client:  openai.NewClientWithConfig(cc),
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		models:  models,
		cache:   cache,
		batch:   batch,
		logger:  logging.NopIfNil(logger),
	}, nil
}

// Suggest returns fixes for the given rows. Cached cities are answered
// locally; the rest go to the API in batches, and the cache is saved
// after every batch so an interrupted run resumes where it stopped. On
// error the fixes gathered so far are returned alongside it.
func (e *Enricher) Suggest(ctx context.Context, rows []Row) ([]Fix, error) {
	var fixes []Fix
	var misses []Row
	for _, row := range rows {
		if fix, ok := e.cache.get(row.City); ok {
			fix.ID = row.ID
			fixes = append(fixes, fix)
			continue
		}
		misses = append(misses, row)
	}
	e.logger.Info("enrichment plan",
		zap.Int("rows", len(rows)),
		zap.Int("cached", len(fixes)),
		zap.Int("to_query", len(misses)))

	for start := 0; start < len(misses); start += e.batch {
		end := start + e.batch
		if end > len(misses) {
			end = len(misses)
		}
		batch := misses[start:end]

		batchFixes, err := e.suggestBatch(ctx, batch)
		if err != nil {
			return fixes, err
		}

		cityByID := make(map[int64]string, len(batch))
		for _, row := range batch {
			cityByID[row.ID] = row.City
		}
		for _, fix := range batchFixes {
			if city, ok := cityByID[fix.ID]; ok {
				e.cache.put(city, fix)
			}
		}
		if err := e.cache.save(); err != nil {
			e.logger.Warn("cache save failed", zap.Error(err))
		}

		fixes = append(fixes, batchFixes...)
	}
	return fixes, nil
}

// suggestBatch walks the model fallback list until one returns fixes.
func (e *Enricher) suggestBatch(ctx context.Context, rows []Row) ([]Fix, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	prompt := buildPrompt(rows)

	var lastErr error
	for _, model := range e.models {
		resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: 0.1,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			lastErr = fmt.Errorf("model %s: %w", model, err)
			e.logger.Warn("model call failed", zap.String("model", model), zap.Error(err))
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("model %s: empty response", model)
			continue
		}

		fixes, err := ParseFixes(resp.Choices[0].Message.Content)
		if err != nil {
			lastErr = fmt.Errorf("model %s: %w", model, err)
			e.logger.Warn("unparseable response", zap.String("model", model), zap.Error(err))
			continue
		}
		e.logger.Debug("batch answered",
			zap.String("model", model),
			zap.Int("rows", len(rows)),
			zap.Int("fixes", len(fixes)))
		return fixes, nil
	}
	return nil, lastErr
}

func buildPrompt(rows []Row) string {
	rowsJSON, _ := json.Marshal(rows)

	return fmt.Sprintf(`The rows below come from a table of Moroccan places whose region and
province are missing. The city values are noisy: misspellings, street fragments,
or strings that are not places at all.

The 12 official regions of Morocco are:
%s

For each row decide:
- "update" when you recognize the locality: supply the corrected city spelling
  (uppercase, no accents) plus its region (exactly as listed above) and province.
- "delete" when the value is not a Moroccan locality.

ROWS:
%s

Answer with a JSON object of the form
{"fixes": [{"id": 1, "action": "update", "city": "...", "region": "...", "province": "..."},
           {"id": 2, "action": "delete"}]}
and nothing else. Every input id must appear exactly once.`,
		strings.Join(gazetteer.Regions, "\n"), rowsJSON)
}
