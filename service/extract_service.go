package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Itish41/ActionNotes/extractor"
	model "github.com/Itish41/ActionNotes/models"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// Extract runs the requested strategy over text and reports the mode that
// actually produced the items. LLM extraction falls back to the heuristic
// strategy when no chat client is configured or the model call fails.
func (s *NotesService) Extract(ctx context.Context, text string, mode extractor.Mode) ([]extractor.ActionItem, extractor.Mode, error) {
	if mode == "" {
		mode = extractor.ModeStructured
	}
	if mode != extractor.ModeLLM {
		return extractor.ForMode(mode).Extract(text), mode, nil
	}

	if s.chat == nil {
		log.Warn().Msg("[Extract] No LLM configured, using heuristic extraction")
		return extractor.Heuristic{}.Extract(text), extractor.ModeHeuristic, nil
	}
	items, err := s.extractWithLLM(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			return nil, mode, ctx.Err()
		}
		log.Warn().Err(err).Msg("[Extract] LLM extraction failed, falling back to heuristic extraction")
		return extractor.Heuristic{}.Extract(text), extractor.ModeHeuristic, nil
	}
	return items, extractor.ModeLLM, nil
}

const extractSystemPrompt = `You are an AI that extracts action items. Return only a JSON array of clean task strings. Example: ["task1", "task2"]`

func (s *NotesService) extractWithLLM(ctx context.Context, text string) ([]extractor.ActionItem, error) {
	items := []extractor.ActionItem{}
	if len(extractor.PrepareLines(text)) == 0 {
		return items, nil
	}
	content, err := s.chat.Complete(ctx, extractSystemPrompt, "Extract all actionable tasks from this text as a JSON array:\n\n"+text)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("content", content).Msg("[extractWithLLM] Raw model response")
	for _, task := range extractor.ParseModelOutput(content) {
		items = append(items, extractor.ActionItem{Text: task})
	}
	return items, nil
}

// ExtractAndSave extracts action items from text and stores them together
// with an ExtractionRun. noteID links both to a note when set.
func (s *NotesService) ExtractAndSave(ctx context.Context, text string, mode extractor.Mode, noteID *uint) ([]model.ActionItem, extractor.Mode, error) {
	extracted, used, err := s.Extract(ctx, text, mode)
	if err != nil {
		return nil, used, err
	}

	payload, err := json.Marshal(extracted)
	if err != nil {
		return nil, used, fmt.Errorf("failed to marshal extracted items: %w", err)
	}

	items := make([]model.ActionItem, 0, len(extracted))
	for _, e := range extracted {
		items = append(items, model.ActionItemFromExtracted(e, noteID))
	}
	run := &model.ExtractionRun{
		NoteID:    noteID,
		Mode:      string(used),
		Items:     datatypes.JSON(payload),
		ItemCount: len(items),
	}
	if err := s.store.SaveExtraction(run, items); err != nil {
		log.Error().Err(err).Msg("[ExtractAndSave] Error saving extraction")
		return nil, used, err
	}
	log.Info().Int("items", len(items)).Str("mode", string(used)).Msg("[ExtractAndSave] Extraction saved")
	return items, used, nil
}

// ExtractFromNote extracts and stores action items from a stored note.
func (s *NotesService) ExtractFromNote(ctx context.Context, noteID uint, mode extractor.Mode) ([]model.ActionItem, extractor.Mode, error) {
	note, err := s.store.GetNote(noteID)
	if err != nil {
		return nil, mode, err
	}
	return s.ExtractAndSave(ctx, note.Content, mode, &note.ID)
}

// ListExtractionRuns returns the extraction history of a note, newest first.
func (s *NotesService) ListExtractionRuns(noteID uint) ([]model.ExtractionRun, error) {
	if _, err := s.store.GetNote(noteID); err != nil {
		return nil, err
	}
	return s.store.ListExtractionRuns(noteID)
}
