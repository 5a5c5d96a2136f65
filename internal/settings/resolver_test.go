package settings

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/frencoae/upwork-responder/internal/models"

	"go.uber.org/zap"
)

type stubStore struct {
	stored  *models.StoredSettings
	getErr  error
	saveErr error
	saved   *models.PromptSettings
}

func (s *stubStore) GetPromptSettings(_ context.Context, _ int64) (*models.StoredSettings, error) {
	return s.stored, s.getErr
}

func (s *stubStore) SavePromptSettings(_ context.Context, _ int64, settings models.PromptSettings) error {
	s.saved = &settings
	return s.saveErr
}

func TestResolveDefaultsWhenAbsent(t *testing.T) {
	resolver := NewResolver(&stubStore{}, zap.NewNop())

	got := resolver.Resolve(context.Background(), 1)

	if !reflect.DeepEqual(got, models.DefaultPromptSettings()) {
		t.Error("absent record must resolve to the documented defaults")
	}
	if got.BasicInfo.FeedName != "Your Professional Feed" {
		t.Errorf("unexpected default feed name %q", got.BasicInfo.FeedName)
	}
	if got.AISettings.Model != "gpt-4" || got.AISettings.Temperature != 0.3 {
		t.Errorf("unexpected default ai settings %+v", got.AISettings)
	}
}

func TestResolveDefaultsOnReadFailure(t *testing.T) {
	resolver := NewResolver(&stubStore{getErr: errors.New("connection refused")}, zap.NewNop())

	got := resolver.Resolve(context.Background(), 1)

	if !reflect.DeepEqual(got, models.DefaultPromptSettings()) {
		t.Error("read failure must resolve to defaults, not an error")
	}
}

func TestResolveMergesStoredSubstructures(t *testing.T) {
	basicInfo, _ := json.Marshal(models.BasicInfo{
		FeedName:  "Custom Feed",
		Keywords:  `"golang"`,
		Specialty: "Backend",
	})

	store := &stubStore{stored: &models.StoredSettings{
		BasicInfo: models.RawJSON(basicInfo),
	}}
	resolver := NewResolver(store, zap.NewNop())

	got := resolver.Resolve(context.Background(), 1)

	if got.BasicInfo.FeedName != "Custom Feed" {
		t.Errorf("stored basic info not applied, got %q", got.BasicInfo.FeedName)
	}

	// Substructures missing from the record keep their defaults.
	defaults := models.DefaultPromptSettings()
	if !reflect.DeepEqual(got.ValidationRules, defaults.ValidationRules) {
		t.Error("missing validation rules must fall back to defaults")
	}
	if !reflect.DeepEqual(got.AISettings, defaults.AISettings) {
		t.Error("missing ai settings must fall back to defaults")
	}
}

func TestResolveIgnoresMalformedSubstructure(t *testing.T) {
	store := &stubStore{stored: &models.StoredSettings{
		BasicInfo: models.RawJSON(`{not json`),
	}}
	resolver := NewResolver(store, zap.NewNop())

	got := resolver.Resolve(context.Background(), 1)

	if got.BasicInfo != models.DefaultPromptSettings().BasicInfo {
		t.Error("malformed substructure must fall back to the default")
	}
}

func TestResolveIgnoresEmptyTemplateList(t *testing.T) {
	store := &stubStore{stored: &models.StoredSettings{
		ProposalTemplates: models.RawJSON(`[]`),
	}}
	resolver := NewResolver(store, zap.NewNop())

	got := resolver.Resolve(context.Background(), 1)

	if len(got.ProposalTemplates) == 0 {
		t.Fatal("empty stored template list must fall back to the default template")
	}
	if got.ProposalTemplates[0].Title != "Main Proposal Template" {
		t.Errorf("unexpected template %q", got.ProposalTemplates[0].Title)
	}
}

func TestSaveMergesWithDefaults(t *testing.T) {
	store := &stubStore{}
	resolver := NewResolver(store, zap.NewNop())

	resolver.Save(context.Background(), 1, Input{
		BasicInfo: &models.BasicInfo{FeedName: "Mine", Keywords: `"go"`},
	})

	if store.saved == nil {
		t.Fatal("save must reach the store")
	}
	if store.saved.BasicInfo.FeedName != "Mine" {
		t.Errorf("submitted basic info not persisted, got %q", store.saved.BasicInfo.FeedName)
	}

	defaults := models.DefaultPromptSettings()
	if !reflect.DeepEqual(store.saved.AISettings, defaults.AISettings) {
		t.Error("omitted ai settings must persist as defaults")
	}
	if !reflect.DeepEqual(store.saved.ValidationRules, defaults.ValidationRules) {
		t.Error("omitted validation rules must persist as defaults")
	}
}

func TestSaveMasksPersistenceFailure(t *testing.T) {
	store := &stubStore{saveErr: errors.New("disk full")}
	resolver := NewResolver(store, zap.NewNop())

	// Must not panic and has no error to return; the failure stays internal.
	resolver.Save(context.Background(), 1, Input{})
}
