package service

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"

	"octofit.app/tracker/internal/entity"
)

const workoutIndex = "workouts"

// WorkoutDoc is the searchable projection of a workout template.
type WorkoutDoc struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DifficultyLevel string   `json:"difficulty_level"`
	Category        string   `json:"category"`
	Duration        int      `json:"duration"`
	TargetMuscles   []string `json:"target_muscles"`
	EquipmentNeeded []string `json:"equipment_needed"`
}

type SearchService interface {
	IndexWorkout(workout *entity.Workout) error
	DeleteWorkout(id string) error
	SearchWorkouts(query, difficulty, category string, limit int) ([]WorkoutDoc, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	filterableAttrs := []string{"difficulty_level", "category"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(workoutIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update workouts filterable attributes: %v", err)
	}

	sortableAttrs := []string{"duration"}
	if _, err := s.client.Index(workoutIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update workouts sortable attributes: %v", err)
	}
}

func (s *searchService) cleanForIndex(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexWorkout(workout *entity.Workout) error {
	doc := WorkoutDoc{
		ID:              workout.ID.String(),
		Name:            workout.Name,
		Description:     s.cleanForIndex(workout.Description),
		DifficultyLevel: workout.DifficultyLevel,
		Category:        workout.Category,
		Duration:        workout.Duration,
		TargetMuscles:   workout.TargetMuscles,
		EquipmentNeeded: workout.EquipmentNeeded,
	}

	task, err := s.client.Index(workoutIndex).AddDocuments([]WorkoutDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed workout %s, task id: %d", workout.ID, task.TaskUID)
	return nil
}

func (s *searchService) DeleteWorkout(id string) error {
	_, err := s.client.Index(workoutIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchWorkouts(query, difficulty, category string, limit int) ([]WorkoutDoc, error) {
	if limit < 1 {
		limit = 20
	}

	var filters []string
	if difficulty != "" {
		filters = append(filters, fmt.Sprintf("difficulty_level = %q", difficulty))
	}
	if category != "" {
		filters = append(filters, fmt.Sprintf("category = %q", category))
	}

	req := &meilisearch.SearchRequest{Limit: int64(limit)}
	if len(filters) > 0 {
		req.Filter = strings.Join(filters, " AND ")
	}

	resp, err := s.client.Index(workoutIndex).Search(query, req)
	if err != nil {
		return nil, err
	}

	docs := make([]WorkoutDoc, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc WorkoutDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func strPtr(s string) *string {
	return &s
}
