// Package gamification maintains the points/level/badge state of a user
// profile. The level transition itself is a pure function; the engine wraps
// it with profile persistence and badge awarding through store interfaces.
package gamification

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/finassist/finassist/internal/models"
)

// Tier is the coarse textual banding derived from the numeric level
type Tier string

const (
	TierBeginner     Tier = "BEGINNER"
	TierIntermediate Tier = "INTERMEDIATE"
	TierAdvanced     Tier = "ADVANCED"
)

// PointsPerLevel is how many accumulated points raise the level by one
const PointsPerLevel = 100

// Badge names the engine awards against the catalog
const (
	BadgeFirstStep    = "first-step"    // 10 points
	BadgeSaver        = "saver"         // 500 points
	BadgeBudgetExpert = "budget-expert" // level 5
)

// ProfileStore persists gamification profiles. Find returns (nil, nil) when
// the user has no profile yet.
type ProfileStore interface {
	FindProfileByUserID(userID int64) (*models.UserProfile, error)
	CreateProfile(profile *models.UserProfile) error
	SaveProfile(profile *models.UserProfile) error
	ProfileHasBadge(profileID, badgeID int64) (bool, error)
	AddBadgeToProfile(profileID, badgeID int64) error
	FindBadgesByProfile(profileID int64) ([]models.Badge, error)
}

// BadgeStore reads the badge catalog. Find returns (nil, nil) when no badge
// carries the name.
type BadgeStore interface {
	FindBadgeByName(name string) (*models.Badge, error)
}

// LevelFor recomputes the level from total points; every 100 points is one
// level, starting at 1.
func LevelFor(points int) int {
	return points/PointsPerLevel + 1
}

// TierFor maps a numeric level to its tier
func TierFor(level int) Tier {
	switch {
	case level <= 3:
		return TierBeginner
	case level <= 7:
		return TierIntermediate
	default:
		return TierAdvanced
	}
}

// Apply returns the profile after a point delta. Points never go below
// zero; the level is recomputed from the new total rather than incremented.
func Apply(profile models.UserProfile, delta int) models.UserProfile {
	points := profile.Points + delta
	if points < 0 {
		points = 0
	}
	profile.Points = points
	profile.LevelNumber = LevelFor(points)
	profile.Level = string(TierFor(profile.LevelNumber))
	return profile
}

// Engine applies point transitions and badge awards to stored profiles
type Engine struct {
	profiles ProfileStore
	badges   BadgeStore
	log      *logrus.Logger
}

// NewEngine initializes a gamification engine
func NewEngine(profiles ProfileStore, badges BadgeStore, log *logrus.Logger) *Engine {
	return &Engine{profiles: profiles, badges: badges, log: log}
}

// AddPoints credits (or debits) points on the user's profile, recomputes
// level and tier, persists the profile and re-evaluates badge thresholds
// against the new state. The profile is created lazily on first use.
func (e *Engine) AddPoints(userID int64, delta int) (*models.UserProfile, error) {
	profile, err := e.Profile(userID)
	if err != nil {
		return nil, err
	}

	updated := Apply(*profile, delta)
	if err := e.profiles.SaveProfile(&updated); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if err := e.checkAndAwardBadges(&updated); err != nil {
		return nil, err
	}

	e.log.Infof("Added %d points to user %d: %d points, level %d (%s)",
		delta, userID, updated.Points, updated.LevelNumber, updated.Level)
	return &updated, nil
}

// Profile returns the user's gamification profile, creating the default
// one (0 points, level 1, BEGINNER) if none exists yet.
func (e *Engine) Profile(userID int64) (*models.UserProfile, error) {
	profile, err := e.profiles.FindProfileByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile != nil {
		badges, err := e.profiles.FindBadgesByProfile(profile.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load badges: %w", err)
		}
		profile.Badges = badges
		return profile, nil
	}

	profile = &models.UserProfile{
		UserID:      userID,
		Language:    "FR",
		Level:       string(TierBeginner),
		Points:      0,
		LevelNumber: 1,
	}
	if err := e.profiles.CreateProfile(profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	e.log.Infof("Created default gamification profile for user %d", userID)
	return profile, nil
}

func (e *Engine) checkAndAwardBadges(profile *models.UserProfile) error {
	if profile.Points >= 10 {
		if err := e.awardIfMissing(profile, BadgeFirstStep); err != nil {
			return err
		}
	}
	if profile.Points >= 500 {
		if err := e.awardIfMissing(profile, BadgeSaver); err != nil {
			return err
		}
	}
	if profile.LevelNumber >= 5 {
		if err := e.awardIfMissing(profile, BadgeBudgetExpert); err != nil {
			return err
		}
	}
	return nil
}

// awardIfMissing unlocks the named badge once. A name absent from the
// catalog is skipped without error.
func (e *Engine) awardIfMissing(profile *models.UserProfile, name string) error {
	badge, err := e.badges.FindBadgeByName(name)
	if err != nil {
		return fmt.Errorf("failed to look up badge %q: %w", name, err)
	}
	if badge == nil {
		e.log.Debugf("Badge %q not in catalog, skipping award", name)
		return nil
	}

	has, err := e.profiles.ProfileHasBadge(profile.ID, badge.ID)
	if err != nil {
		return fmt.Errorf("failed to check badge %q: %w", name, err)
	}
	if has {
		return nil
	}

	if err := e.profiles.AddBadgeToProfile(profile.ID, badge.ID); err != nil {
		return fmt.Errorf("failed to award badge %q: %w", name, err)
	}
	e.log.Infof("Badge %q awarded to user %d", name, profile.UserID)
	return nil
}
