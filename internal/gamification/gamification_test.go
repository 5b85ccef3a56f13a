package gamification

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/finassist/finassist/internal/models"
)

func TestLevelFor(t *testing.T) {
	cases := []struct {
		points, level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{400, 5},
		{1000, 11},
	}
	for _, tc := range cases {
		if got := LevelFor(tc.points); got != tc.level {
			t.Fatalf("LevelFor(%d) = %d, want %d", tc.points, got, tc.level)
		}
	}
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		level int
		tier  Tier
	}{
		{1, TierBeginner},
		{3, TierBeginner},
		{4, TierIntermediate},
		{7, TierIntermediate},
		{8, TierAdvanced},
		{20, TierAdvanced},
	}
	for _, tc := range cases {
		if got := TierFor(tc.level); got != tc.tier {
			t.Fatalf("TierFor(%d) = %s, want %s", tc.level, got, tc.tier)
		}
	}
}

func TestApplyRecomputesLevel(t *testing.T) {
	profile := models.UserProfile{Points: 0, LevelNumber: 1, Level: string(TierBeginner)}

	profile = Apply(profile, 60)
	profile = Apply(profile, 40)
	if profile.Points != 100 || profile.LevelNumber != 2 {
		t.Fatalf("split deltas: got %d points level %d", profile.Points, profile.LevelNumber)
	}

	single := Apply(models.UserProfile{Points: 0, LevelNumber: 1}, 100)
	if single.LevelNumber != profile.LevelNumber {
		t.Fatalf("split and single accumulation disagree: %d vs %d", profile.LevelNumber, single.LevelNumber)
	}
}

func TestApplyZeroDelta(t *testing.T) {
	before := models.UserProfile{Points: 250, LevelNumber: 3, Level: string(TierBeginner)}
	after := Apply(before, 0)
	if after.Points != 250 || after.LevelNumber != 3 || after.Level != string(TierBeginner) {
		t.Fatalf("zero delta changed profile: %+v", after)
	}
}

func TestApplyClampsNegative(t *testing.T) {
	after := Apply(models.UserProfile{Points: 30, LevelNumber: 1}, -100)
	if after.Points != 0 || after.LevelNumber != 1 {
		t.Fatalf("expected clamp to 0 points level 1, got %d/%d", after.Points, after.LevelNumber)
	}
}

// fakeProfileStore keeps a single profile in memory
type fakeProfileStore struct {
	profile    *models.UserProfile
	saves      int
	awards     int
	badgesHeld map[int64]bool
}

func (s *fakeProfileStore) FindProfileByUserID(userID int64) (*models.UserProfile, error) {
	if s.profile == nil || s.profile.UserID != userID {
		return nil, nil
	}
	clone := *s.profile
	return &clone, nil
}

func (s *fakeProfileStore) CreateProfile(profile *models.UserProfile) error {
	profile.ID = 1
	clone := *profile
	s.profile = &clone
	return nil
}

func (s *fakeProfileStore) SaveProfile(profile *models.UserProfile) error {
	clone := *profile
	s.profile = &clone
	s.saves++
	return nil
}

func (s *fakeProfileStore) ProfileHasBadge(profileID, badgeID int64) (bool, error) {
	return s.badgesHeld[badgeID], nil
}

func (s *fakeProfileStore) AddBadgeToProfile(profileID, badgeID int64) error {
	if s.badgesHeld == nil {
		s.badgesHeld = make(map[int64]bool)
	}
	s.badgesHeld[badgeID] = true
	s.awards++
	return nil
}

func (s *fakeProfileStore) FindBadgesByProfile(profileID int64) ([]models.Badge, error) {
	var badges []models.Badge
	for id := range s.badgesHeld {
		badges = append(badges, models.Badge{ID: id})
	}
	return badges, nil
}

// fakeBadgeStore serves a fixed badge catalog
type fakeBadgeStore struct {
	catalog map[string]*models.Badge
}

func (s *fakeBadgeStore) FindBadgeByName(name string) (*models.Badge, error) {
	return s.catalog[name], nil
}

func fullCatalog() *fakeBadgeStore {
	return &fakeBadgeStore{catalog: map[string]*models.Badge{
		BadgeFirstStep:    {ID: 1, Name: BadgeFirstStep},
		BadgeSaver:        {ID: 2, Name: BadgeSaver},
		BadgeBudgetExpert: {ID: 3, Name: BadgeBudgetExpert},
	}}
}

func testEngine(profiles ProfileStore, badges BadgeStore) *Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewEngine(profiles, badges, log)
}

func TestAddPointsCreatesDefaultProfile(t *testing.T) {
	store := &fakeProfileStore{}
	engine := testEngine(store, fullCatalog())

	profile, err := engine.AddPoints(7, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Points != 5 || profile.LevelNumber != 1 || profile.Level != string(TierBeginner) {
		t.Fatalf("unexpected profile after first award: %+v", profile)
	}
	if store.profile == nil {
		t.Fatal("profile was not persisted")
	}
	if store.awards != 0 {
		t.Fatalf("no badge should unlock below 10 points, got %d awards", store.awards)
	}
}

func TestAddPointsUnlocksFirstStep(t *testing.T) {
	store := &fakeProfileStore{}
	engine := testEngine(store, fullCatalog())

	if _, err := engine.AddPoints(7, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.badgesHeld[1] {
		t.Fatal("expected first-step badge at 10 points")
	}
	if store.badgesHeld[2] || store.badgesHeld[3] {
		t.Fatal("higher badges unlocked too early")
	}
}

func TestAddPointsUnlocksSaverAndExpert(t *testing.T) {
	store := &fakeProfileStore{}
	engine := testEngine(store, fullCatalog())

	profile, err := engine.AddPoints(7, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.LevelNumber != 6 {
		t.Fatalf("expected level 6 at 500 points, got %d", profile.LevelNumber)
	}
	// 500 points crosses every threshold at once.
	for id := int64(1); id <= 3; id++ {
		if !store.badgesHeld[id] {
			t.Fatalf("expected badge %d unlocked", id)
		}
	}
}

func TestBadgeAwardIsIdempotent(t *testing.T) {
	store := &fakeProfileStore{}
	engine := testEngine(store, fullCatalog())

	if _, err := engine.AddPoints(7, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := engine.AddPoints(7, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.awards != 1 {
		t.Fatalf("expected a single award, got %d", store.awards)
	}
}

func TestZeroDeltaStillEvaluatesBadges(t *testing.T) {
	store := &fakeProfileStore{
		profile: &models.UserProfile{ID: 1, UserID: 7, Points: 15, LevelNumber: 1, Level: string(TierBeginner)},
	}
	engine := testEngine(store, fullCatalog())

	profile, err := engine.AddPoints(7, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Points != 15 || profile.LevelNumber != 1 {
		t.Fatalf("zero delta changed state: %+v", profile)
	}
	if !store.badgesHeld[1] {
		t.Fatal("expected badge evaluation on zero delta")
	}
}

func TestMissingCatalogEntryIsSkipped(t *testing.T) {
	store := &fakeProfileStore{}
	engine := testEngine(store, &fakeBadgeStore{catalog: map[string]*models.Badge{}})

	if _, err := engine.AddPoints(7, 600); err != nil {
		t.Fatalf("expected silent skip for missing badges, got %v", err)
	}
	if store.awards != 0 {
		t.Fatalf("expected no awards with an empty catalog, got %d", store.awards)
	}
}

func TestRepeatedAccumulationMatchesSingle(t *testing.T) {
	split := &fakeProfileStore{}
	engine := testEngine(split, fullCatalog())
	if _, err := engine.AddPoints(7, 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profile, err := engine.AddPoints(7, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	whole := &fakeProfileStore{}
	engine2 := testEngine(whole, fullCatalog())
	single, err := engine2.AddPoints(7, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.LevelNumber != 2 || single.LevelNumber != 2 {
		t.Fatalf("expected level 2 either way, got %d and %d", profile.LevelNumber, single.LevelNumber)
	}
}
