package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sewasew/census-backend/internal/census"
	redisclient "github.com/sewasew/census-backend/internal/clients/redis"
	"github.com/sewasew/census-backend/internal/clients/twilio"
	"github.com/sewasew/census-backend/internal/logger"
	"github.com/sewasew/census-backend/internal/repos"
	"github.com/sewasew/census-backend/internal/types"
)

const smsConfirmationBody = "Your household census registration was received. Thank you."

// SubmissionService is the write side of the census: it validates a composite
// household + members payload and commits it as one all-or-nothing unit.
type SubmissionService interface {
	Submit(ctx context.Context, rawLocation string, rawMembers []census.RawMember) (uuid.UUID, error)
}

type submissionService struct {
	db            *gorm.DB
	log           *logger.Logger
	householdRepo repos.HouseholdRepo
	memberRepo    repos.FamilyMemberRepo
	logRepo       repos.SubmissionLogRepo
	smsClient     twilio.Client              // nil when SMS is not configured
	cache         redisclient.AnalyticsCache // nil when redis is not configured
}

func NewSubmissionService(
	db *gorm.DB,
	log *logger.Logger,
	householdRepo repos.HouseholdRepo,
	memberRepo repos.FamilyMemberRepo,
	logRepo repos.SubmissionLogRepo,
	smsClient twilio.Client,
	cache redisclient.AnalyticsCache,
) SubmissionService {
	serviceLog := log.With("service", "SubmissionService")
	return &submissionService{
		db:            db,
		log:           serviceLog,
		householdRepo: householdRepo,
		memberRepo:    memberRepo,
		logRepo:       logRepo,
		smsClient:     smsClient,
		cache:         cache,
	}
}

// Submit runs the full pipeline: build the aggregate (pure, zero side
// effects on rejection), then exactly one transaction attempt. Any store
// failure rolls the whole unit back; the caller never observes a household
// without its members or vice versa.
func (ss *submissionService) Submit(ctx context.Context, rawLocation string, rawMembers []census.RawMember) (uuid.UUID, error) {
	aggregate, err := census.BuildSubmission(rawLocation, rawMembers)
	if err != nil {
		ss.log.Debug("Submission rejected before store", "error", err)
		ss.audit(ctx, nil, types.SubmissionRejected, err, rawLocation, rawMembers)
		return uuid.Nil, err
	}

	householdID, err := ss.commit(ctx, aggregate)
	if err != nil {
		ss.log.Error("Submission transaction failed", "error", err)
		ss.audit(ctx, nil, types.SubmissionFailed, err, rawLocation, rawMembers)
		return uuid.Nil, err
	}

	ss.audit(ctx, &householdID, types.SubmissionAccepted, nil, rawLocation, rawMembers)
	ss.invalidateReadCaches()
	ss.notify(aggregate)

	ss.log.Info("Submission committed", "household_id", householdID, "members", len(aggregate.Members))
	return householdID, nil
}

// commit is the transactional writer. gorm's Transaction helper checks the
// session out of the pool, commits on nil and rolls back on error or panic;
// rollback failures are logged by gorm and not escalated further.
func (ss *submissionService) commit(ctx context.Context, aggregate *census.Submission) (uuid.UUID, error) {
	var householdID uuid.UUID

	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		household := &types.Household{
			Latitude:  aggregate.Location.Latitude,
			Longitude: aggregate.Location.Longitude,
		}
		created, err := ss.householdRepo.Create(ctx, tx, household)
		if err != nil {
			return &census.StoreError{Op: "insert household", Err: err}
		}
		if created == nil || created.ID == uuid.Nil {
			// Post-condition on the store's own guarantee.
			return &census.HouseholdCreationError{}
		}
		householdID = created.ID

		// Members go in one at a time, in submitted order, all inside this
		// transaction. The full optional-field set is always supplied.
		for _, member := range aggregate.Members {
			row := &types.FamilyMember{
				HouseholdID: householdID,
				Name:        member.Name,
				BirthDate:   member.BirthDate,
				Gender:      member.Gender,

				Phone:         member.Phone,
				ServeInChurch: member.ServeInChurch,
				MaritalStatus: member.MaritalStatus,
				Community:     member.Community,
				JobType:       member.JobType,
				HasDisability: member.HasDisability,

				EducationLevel:  member.EducationLevel,
				SchoolName:      member.SchoolName,
				StudyType:       member.StudyType,
				StudyYear:       member.StudyYear,
				DisabilityType:  member.DisabilityType,
				OtherDisability: member.OtherDisability,
			}
			if _, err := ss.memberRepo.Create(ctx, tx, []*types.FamilyMember{row}); err != nil {
				return &census.StoreError{Op: "insert family member", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		var storeErr *census.StoreError
		var creationErr *census.HouseholdCreationError
		if !errors.As(err, &storeErr) && !errors.As(err, &creationErr) {
			// Begin/commit failures surface here without our wrapper.
			err = &census.StoreError{Op: "transaction", Err: err}
		}
		return uuid.Nil, err
	}
	return householdID, nil
}

// audit records the outcome outside the ingest transaction. Best-effort: a
// logging failure never changes the submission result.
func (ss *submissionService) audit(ctx context.Context, householdID *uuid.UUID, status string, cause error, rawLocation string, rawMembers []census.RawMember) {
	if ss.logRepo == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"householdLocation": rawLocation,
		"familyMembers":     rawMembers,
	})
	if err != nil {
		ss.log.Warn("Could not marshal submission payload for audit", "error", err)
		payload = nil
	}
	entry := &types.SubmissionLog{
		HouseholdID: householdID,
		Status:      status,
		Payload:     datatypes.JSON(payload),
	}
	if cause != nil {
		detail := cause.Error()
		entry.Detail = &detail
	}
	if err := ss.logRepo.Create(ctx, nil, entry); err != nil {
		ss.log.Warn("Audit log write failed", "status", status, "error", err)
	}
}

// notify sends the confirmation SMS to the first member with a phone number.
// Fire-and-forget on its own context: the HTTP response never waits on it.
func (ss *submissionService) notify(aggregate *census.Submission) {
	if ss.smsClient == nil {
		return
	}
	var to string
	for _, member := range aggregate.Members {
		if member.Phone != nil && *member.Phone != "" {
			to = *member.Phone
			break
		}
	}
	if to == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := ss.smsClient.SendSMS(ctx, to, smsConfirmationBody); err != nil {
			ss.log.Warn("Confirmation SMS failed", "to", to, "error", err)
		}
	}()
}

func (ss *submissionService) invalidateReadCaches() {
	if ss.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ss.cache.Invalidate(ctx, cacheKeyKPIs, cacheKeyDashboard, cacheKeyTithe); err != nil {
		ss.log.Warn("Read cache invalidation failed", "error", err)
	}
}
