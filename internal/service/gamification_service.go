package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/gamification-service/internal/domain"
	"github.com/spec-kit/gamification-service/internal/events"
	"github.com/spec-kit/gamification-service/internal/observability"
	"github.com/spec-kit/gamification-service/internal/repository"
	"github.com/spec-kit/gamification-service/internal/rules"
	apperrors "github.com/spec-kit/gamification-service/pkg/util"
)

// activityNamespace seeds deterministic activity IDs so a retried lifecycle
// event maps to the same record.
var activityNamespace = uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")

// GamificationService turns support-desk lifecycle events into point awards,
// streak updates and achievement unlocks. It is stateless apart from the
// per-user locks; all durable state lives behind the repository interfaces.
type GamificationService struct {
	activities repository.ActivityRepository
	awards     repository.ScoreAwardRepository
	streaks    repository.StreakRepository
	unlocks    repository.AchievementRepository
	profiles   repository.ProfileRepository
	evaluator  *AchievementEvaluator
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	clockSkew  time.Duration
	now        func() time.Time
	locks      *userLocks
}

// GamificationDependencies bundles collaborators for the service.
type GamificationDependencies struct {
	ActivityRepo    repository.ActivityRepository
	AwardRepo       repository.ScoreAwardRepository
	StreakRepo      repository.StreakRepository
	AchievementRepo repository.AchievementRepository
	ProfileRepo     repository.ProfileRepository
	Definitions     []domain.AchievementDefinition
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	Metrics         *observability.Metrics
	ClockSkew       time.Duration
	Clock           func() time.Time
}

// NewGamificationService constructs the service.
func NewGamificationService(deps GamificationDependencies) *GamificationService {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	skew := deps.ClockSkew
	if skew <= 0 {
		skew = 5 * time.Minute
	}
	definitions := deps.Definitions
	if definitions == nil {
		definitions = rules.DefaultAchievements
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GamificationService{
		activities: deps.ActivityRepo,
		awards:     deps.AwardRepo,
		streaks:    deps.StreakRepo,
		unlocks:    deps.AchievementRepo,
		profiles:   deps.ProfileRepo,
		evaluator:  NewAchievementEvaluator(definitions, deps.ProfileRepo, deps.StreakRepo, deps.AchievementRepo, logger, now),
		dispatcher: deps.Dispatcher,
		logger:     logger,
		metrics:    deps.Metrics,
		clockSkew:  skew,
		now:        now,
		locks:      newUserLocks(),
	}
}

// Evaluator exposes the achievement evaluator for read endpoints.
func (s *GamificationService) Evaluator() *AchievementEvaluator {
	return s.evaluator
}

// TicketCreatedInput carries ticket creation attributes.
type TicketCreatedInput struct {
	Priority   string
	Category   string
	OccurredAt time.Time
}

// ResolvedInput carries resolution attributes reported by the ticketing
// subsystem, which owns reopen detection.
type ResolvedInput struct {
	ResolutionTimeMinutes *int
	Rating                *int
	Reopened              bool
	OccurredAt            time.Time
}

// OnTicketCreated scores a ticket creation event.
func (s *GamificationService) OnTicketCreated(ctx context.Context, userID, ticketID string, input TicketCreatedInput) (*domain.ActivityResult, error) {
	return s.process(ctx, recordInput{
		UserID:      userID,
		Type:        domain.ActivityTicketCreated,
		Description: fmt.Sprintf("Created ticket %s", ticketID),
		Metadata: domain.ActivityMetadata{
			TicketID: ticketID,
			Priority: input.Priority,
			Category: input.Category,
		},
		OccurredAt: input.OccurredAt,
	})
}

// OnTicketAssigned scores a ticket assignment event.
func (s *GamificationService) OnTicketAssigned(ctx context.Context, userID, ticketID, assignedTo string, occurredAt time.Time) (*domain.ActivityResult, error) {
	return s.process(ctx, recordInput{
		UserID:      userID,
		Type:        domain.ActivityTicketAssigned,
		Description: fmt.Sprintf("Assigned ticket %s", ticketID),
		Metadata: domain.ActivityMetadata{
			TicketID:   ticketID,
			AssignedTo: assignedTo,
		},
		OccurredAt: occurredAt,
	})
}

// OnTicketResolved scores a resolution event, including speed and quality
// bonuses and the streak update.
func (s *GamificationService) OnTicketResolved(ctx context.Context, userID, ticketID string, input ResolvedInput) (*domain.ActivityResult, error) {
	return s.process(ctx, recordInput{
		UserID:      userID,
		Type:        domain.ActivityTicketResolved,
		Description: fmt.Sprintf("Resolved ticket %s", ticketID),
		Metadata: domain.ActivityMetadata{
			TicketID:              ticketID,
			ResolutionTimeMinutes: input.ResolutionTimeMinutes,
			Rating:                input.Rating,
			Reopened:              input.Reopened,
		},
		OccurredAt: input.OccurredAt,
	})
}

// OnCommentAdded scores a ticket comment event.
func (s *GamificationService) OnCommentAdded(ctx context.Context, userID, ticketID, commentID string, occurredAt time.Time) (*domain.ActivityResult, error) {
	return s.process(ctx, recordInput{
		UserID:      userID,
		Type:        domain.ActivityCommentAdded,
		Description: fmt.Sprintf("Commented on ticket %s", ticketID),
		Metadata: domain.ActivityMetadata{
			TicketID:  ticketID,
			CommentID: commentID,
		},
		OccurredAt: occurredAt,
	})
}

// AwardTeamworkBonus grants the flat teamwork bonus once the helpful-comment
// count reaches the threshold. At most one grant per user per calendar day.
func (s *GamificationService) AwardTeamworkBonus(ctx context.Context, userID string, helpfulCommentCount int, occurredAt time.Time) (*domain.ActivityResult, error) {
	count := helpfulCommentCount
	return s.process(ctx, recordInput{
		UserID:      userID,
		Type:        domain.ActivityTeamBonus,
		Description: "Teamwork bonus",
		Metadata: domain.ActivityMetadata{
			HelpfulCommentCount: &count,
		},
		OccurredAt: occurredAt,
	})
}

// InitializeUserGamification seeds a zeroed profile for a new agent. Calling
// it for an existing user is a no-op.
func (s *GamificationService) InitializeUserGamification(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.NewValidationError("userID required", nil)
	}
	lock := s.locks.acquire(userID)
	defer lock.Unlock()

	existing, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return apperrors.NewProfileStoreUnavailable(err)
	}
	if existing != nil {
		return nil
	}
	if err := s.profiles.Save(ctx, &domain.UserGamificationProfile{UserID: userID}); err != nil {
		return apperrors.NewProfileStoreUnavailable(err)
	}
	return nil
}

// GetUserGamificationProfile returns the aggregate profile: totals, streak
// state and the unlocked achievement set.
func (s *GamificationService) GetUserGamificationProfile(ctx context.Context, userID string) (*domain.UserGamificationProfile, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userID required", nil)
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NewProfileStoreUnavailable(err)
	}
	if profile == nil {
		return nil, apperrors.NewNotFound("gamification profile", map[string]any{"user_id": userID})
	}
	if streak, err := s.streaks.Get(ctx, userID); err == nil && streak != nil {
		profile.Streak = *streak
	} else if err != nil {
		s.logger.Warn("loading streak state failed", zap.String("user_id", userID), zap.Error(err))
	}
	unlocked, err := s.unlocks.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Warn("loading unlocks failed", zap.String("user_id", userID), zap.Error(err))
	} else {
		profile.UnlockedAchievements = unlocked
	}
	if profile.Streak.UserID == "" {
		profile.Streak.UserID = userID
	}
	return profile, nil
}

// ListUserActivities returns the audit trail for the dashboard.
func (s *GamificationService) ListUserActivities(ctx context.Context, userID string, limit, offset int) ([]domain.Activity, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userID required", nil)
	}
	return s.activities.ListByUser(ctx, userID, limit, offset)
}

type recordInput struct {
	UserID      string
	Type        domain.ActivityType
	Description string
	Metadata    domain.ActivityMetadata
	OccurredAt  time.Time
}

// process runs the full pipeline: validate and record the activity exactly
// once, then derive bonuses, advance the streak and re-evaluate achievements.
// Only recording can fail the call; every later stage degrades to a warning.
func (s *GamificationService) process(ctx context.Context, in recordInput) (*domain.ActivityResult, error) {
	activity, err := s.buildActivity(in)
	if err != nil {
		return nil, err
	}

	lock := s.locks.acquire(in.UserID)
	defer lock.Unlock()

	inserted, err := s.activities.Insert(ctx, activity)
	if err != nil {
		return nil, apperrors.NewProfileStoreUnavailable(err)
	}
	if !inserted {
		s.metrics.RecordDuplicate()
		existing, err := s.activities.GetByID(ctx, activity.ID)
		if err != nil {
			return nil, apperrors.NewProfileStoreUnavailable(err)
		}
		if existing != nil {
			activity = existing
		}
		s.logger.Debug("duplicate activity ignored",
			zap.String("activity_id", activity.ID),
			zap.String("user_id", activity.UserID))
		return &domain.ActivityResult{Activity: activity, Duplicate: true}, nil
	}
	s.metrics.RecordActivity(string(activity.Type))

	result := &domain.ActivityResult{Activity: activity}

	profile, err := s.profiles.Get(ctx, in.UserID)
	if err != nil {
		result.Warnings = append(result.Warnings, domain.StageWarning{Stage: "profile", Err: err})
		s.warnStage("profile", activity, err)
		profile = nil
	}
	if profile == nil {
		profile = &domain.UserGamificationProfile{UserID: in.UserID}
	}

	// base award
	if base := rules.BasePoints(activity.Type); base > 0 {
		s.grantAward(ctx, result, domain.ScoreAward{
			ActivityID: activity.ID,
			UserID:     activity.UserID,
			Points:     base,
			Reason:     domain.ReasonBase,
		}, profile)
	}

	s.applyBonuses(ctx, result, activity, profile)
	streak := s.applyStreak(ctx, result, activity, profile)
	s.bumpStats(profile, activity)

	if err := s.profiles.Save(ctx, profile); err != nil {
		result.Warnings = append(result.Warnings, domain.StageWarning{Stage: "profile", Err: err})
		s.warnStage("profile", activity, err)
	}

	s.applyAchievements(ctx, result, activity)

	result.Streak = streak
	s.publishEvent(ctx, events.Event{
		Type:   events.EventActivityRecorded,
		UserID: activity.UserID,
		Payload: events.ActivityRecordedPayload{
			ActivityID:   activity.ID,
			ActivityType: activity.Type,
			TicketID:     activity.Metadata.TicketID,
		},
	})
	return result, nil
}

func (s *GamificationService) buildActivity(in recordInput) (*domain.Activity, error) {
	if in.UserID == "" {
		return nil, apperrors.NewValidationError("userID required", nil)
	}
	if !in.Type.IsValid() {
		return nil, apperrors.NewValidationError("unknown activity type", map[string]any{"type": string(in.Type)})
	}

	now := s.now()
	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	if occurredAt.After(now.Add(s.clockSkew)) {
		return nil, apperrors.NewInvalidTimestamp("event timestamp too far in the future", map[string]any{
			"occurred_at": occurredAt,
			"server_time": now,
		})
	}

	if err := validateMetadata(in.Type, in.Metadata); err != nil {
		return nil, err
	}

	return &domain.Activity{
		ID:          idempotencyKey(in.UserID, in.Type, in.Metadata, occurredAt),
		UserID:      in.UserID,
		Type:        in.Type,
		Description: in.Description,
		Metadata:    in.Metadata,
		OccurredAt:  occurredAt,
		RecordedAt:  now,
	}, nil
}

func validateMetadata(activityType domain.ActivityType, meta domain.ActivityMetadata) error {
	switch activityType {
	case domain.ActivityTicketCreated, domain.ActivityTicketAssigned:
		if meta.TicketID == "" {
			return apperrors.NewMissingRequiredField("ticket_id", nil)
		}
	case domain.ActivityTicketResolved:
		if meta.TicketID == "" {
			return apperrors.NewMissingRequiredField("ticket_id", nil)
		}
		if meta.ResolutionTimeMinutes == nil {
			return apperrors.NewMissingRequiredField("resolution_time_minutes", map[string]any{"ticket_id": meta.TicketID})
		}
	case domain.ActivityCommentAdded:
		if meta.TicketID == "" {
			return apperrors.NewMissingRequiredField("ticket_id", nil)
		}
		if meta.CommentID == "" {
			return apperrors.NewMissingRequiredField("comment_id", map[string]any{"ticket_id": meta.TicketID})
		}
	case domain.ActivityTeamBonus:
		if meta.HelpfulCommentCount == nil {
			return apperrors.NewMissingRequiredField("helpful_comment_count", nil)
		}
	}
	return nil
}

// idempotencyKey derives a deterministic activity ID from the event identity:
// user, type, ticket and a type-specific discriminator.
func idempotencyKey(userID string, activityType domain.ActivityType, meta domain.ActivityMetadata, occurredAt time.Time) string {
	discriminator := ""
	switch activityType {
	case domain.ActivityCommentAdded:
		discriminator = meta.CommentID
	case domain.ActivityTicketAssigned:
		discriminator = meta.AssignedTo
	case domain.ActivityTeamBonus:
		discriminator = calendarDay(occurredAt).Format("2006-01-02")
	}
	name := fmt.Sprintf("%s|%s|%s|%s", userID, activityType, meta.TicketID, discriminator)
	return uuid.NewSHA1(activityNamespace, []byte(name)).String()
}

func (s *GamificationService) applyBonuses(ctx context.Context, result *domain.ActivityResult, activity *domain.Activity, profile *domain.UserGamificationProfile) {
	switch activity.Type {
	case domain.ActivityTicketResolved:
		if minutes := activity.Metadata.ResolutionTimeMinutes; minutes != nil {
			if points := rules.SpeedBonus(*minutes); points > 0 {
				s.grantAward(ctx, result, domain.ScoreAward{
					ActivityID: activity.ID,
					UserID:     activity.UserID,
					Points:     points,
					Reason:     domain.ReasonSpeedBonus,
				}, profile)
			}
		}
		rating := 0
		if activity.Metadata.Rating != nil {
			rating = *activity.Metadata.Rating
		}
		if points := rules.QualityBonus(rating, activity.Metadata.Reopened); points > 0 {
			s.grantAward(ctx, result, domain.ScoreAward{
				ActivityID: activity.ID,
				UserID:     activity.UserID,
				Points:     points,
				Reason:     domain.ReasonQualityBonus,
			}, profile)
		}
	case domain.ActivityTeamBonus:
		count := 0
		if activity.Metadata.HelpfulCommentCount != nil {
			count = *activity.Metadata.HelpfulCommentCount
		}
		if points := rules.TeamworkBonus(count); points > 0 {
			s.grantAward(ctx, result, domain.ScoreAward{
				ActivityID: activity.ID,
				UserID:     activity.UserID,
				Points:     points,
				Reason:     domain.ReasonTeamworkBonus,
			}, profile)
		}
	}
}

// applyStreak advances streak state on resolution activities. Failures are
// logged and surfaced as warnings; they never fail the call.
func (s *GamificationService) applyStreak(ctx context.Context, result *domain.ActivityResult, activity *domain.Activity, profile *domain.UserGamificationProfile) *domain.StreakState {
	if activity.Type != domain.ActivityTicketResolved {
		return nil
	}
	prev, err := s.streaks.Get(ctx, activity.UserID)
	if err != nil {
		result.Warnings = append(result.Warnings, domain.StageWarning{Stage: "streak", Err: err})
		s.warnStage("streak", activity, err)
		return nil
	}
	next, dayAdvanced := advanceStreak(prev, activity.UserID, activity.OccurredAt)
	if !dayAdvanced {
		return &next
	}
	if err := s.streaks.Upsert(ctx, &next); err != nil {
		result.Warnings = append(result.Warnings, domain.StageWarning{Stage: "streak", Err: err})
		s.warnStage("streak", activity, err)
		return prev
	}
	if points := rules.StreakBonus(next.CurrentLength); points > 0 {
		s.grantAward(ctx, result, domain.ScoreAward{
			ActivityID: activity.ID,
			UserID:     activity.UserID,
			Points:     points,
			Reason:     domain.ReasonStreakBonus,
		}, profile)
		s.publishEvent(ctx, events.Event{
			Type:   events.EventStreakMilestone,
			UserID: activity.UserID,
			Payload: events.StreakMilestonePayload{
				CurrentLength: next.CurrentLength,
				LongestLength: next.LongestLength,
			},
		})
	}
	return &next
}

func (s *GamificationService) applyAchievements(ctx context.Context, result *domain.ActivityResult, activity *domain.Activity) {
	unlockedCodes, err := s.evaluator.Evaluate(ctx, activity.UserID)
	if err != nil {
		result.Warnings = append(result.Warnings, domain.StageWarning{Stage: "achievement", Err: err})
		s.warnStage("achievement", activity, err)
	}
	for _, code := range unlockedCodes {
		s.metrics.RecordUnlock()
		title := code
		if def, ok := s.evaluator.Definition(code); ok {
			title = def.Title
		}
		s.publishEvent(ctx, events.Event{
			Type:   events.EventAchievementUnlocked,
			UserID: activity.UserID,
			Payload: events.AchievementUnlockedPayload{
				AchievementCode: code,
				Title:           title,
			},
		})
	}
	result.NewAchievements = unlockedCodes
}

// grantAward persists one award and keeps the in-memory profile total in
// step. Award failures degrade to warnings.
func (s *GamificationService) grantAward(ctx context.Context, result *domain.ActivityResult, award domain.ScoreAward, profile *domain.UserGamificationProfile) {
	if err := s.awards.Insert(ctx, &award); err != nil {
		result.Warnings = append(result.Warnings, domain.StageWarning{Stage: "award", Err: err})
		s.warnStage("award", result.Activity, err)
		return
	}
	result.Awards = append(result.Awards, award)
	result.PointsGranted += award.Points
	profile.TotalPoints += award.Points
	s.metrics.RecordAward(string(award.Reason), award.Points)
	s.publishEvent(ctx, events.Event{
		Type:   events.EventPointsAwarded,
		UserID: award.UserID,
		Payload: events.PointsAwardedPayload{
			ActivityID: award.ActivityID,
			Points:     award.Points,
			Reason:     award.Reason,
			TotalAfter: profile.TotalPoints,
		},
	})
}

func (s *GamificationService) bumpStats(profile *domain.UserGamificationProfile, activity *domain.Activity) {
	switch activity.Type {
	case domain.ActivityTicketCreated:
		profile.Stats.TotalCreated++
	case domain.ActivityTicketAssigned:
		profile.Stats.TotalAssigned++
	case domain.ActivityTicketResolved:
		profile.Stats.TotalResolved++
		if activity.Metadata.Rating != nil && *activity.Metadata.Rating >= rules.HighRatingFloor && !activity.Metadata.Reopened {
			profile.Stats.HighRatingCount++
		}
	case domain.ActivityCommentAdded:
		profile.Stats.TotalComments++
	case domain.ActivityTeamBonus:
		profile.Stats.TeamworkEvents++
	}
}

func (s *GamificationService) warnStage(stage string, activity *domain.Activity, err error) {
	s.metrics.RecordStageFailure(stage)
	fields := []zap.Field{zap.String("stage", stage), zap.Error(err)}
	if activity != nil {
		fields = append(fields,
			zap.String("activity_id", activity.ID),
			zap.String("user_id", activity.UserID))
	}
	s.logger.Warn("gamification stage failed", fields...)
}

func (s *GamificationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
