package services

import (
	"context"
	"fmt"

	"github.com/adforge/backend/internal/events"
	"github.com/adforge/backend/internal/metaads"
	"github.com/adforge/backend/internal/models"
	"github.com/adforge/backend/internal/sessions"
	"go.uber.org/zap"
)

// Every resource the pipeline creates is forced to PAUSED regardless of what
// the caller asked for, so a finished run never spends money until someone
// flips it on in Ads Manager.
const statusPaused = "PAUSED"

// The creative image is a fixed placeholder until image upload exists.
const placeholderImageURL = "https://placehold.co/600x400"

// LaunchInput carries everything a launch needs: resolved identifiers, the
// advertiser's campaign parameters, and the confirmed content.
type LaunchInput struct {
	Token        string
	AdAccountID  string
	PageID       string
	CampaignName string
	Objective    string
	DailyBudget  float64
	WebsiteURL   string
	CallToAction string
	Targeting    metaads.TargetingInput
	Content      models.GeneratedContent
}

// PipelineService drives the creation chain campaign → ad set → creative →
// ad, threading each platform-assigned id into the next call. It aborts on
// the first error with nothing rolled back: earlier resources stay on the
// platform in their paused state.
type PipelineService struct {
	meta      *metaads.Client
	store     *sessions.Store
	publisher events.Publisher
	log       *zap.Logger
}

func NewPipelineService(meta *metaads.Client, store *sessions.Store, publisher events.Publisher, log *zap.Logger) *PipelineService {
	return &PipelineService{
		meta:      meta,
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// Launch runs the pipeline for a run that already holds confirmed content.
// On failure the run lands in failed with the composed error message; the
// returned error is the original typed failure.
func (s *PipelineService) Launch(ctx context.Context, run *models.Run, in LaunchInput) error {
	if run.Status != models.RunStatusContentGenerated {
		return fmt.Errorf("run %s is in state %s, launch requires confirmed content", run.ID, run.Status)
	}
	if err := in.Content.Validate(); err != nil {
		return s.fail(ctx, run, err)
	}

	run.CampaignName = in.CampaignName
	run.Objective = in.Objective
	run.DailyBudget = in.DailyBudget
	run.WebsiteURL = in.WebsiteURL
	run.CallToAction = in.CallToAction
	run.AdAccountID = in.AdAccountID
	run.PageID = in.PageID

	campaignID, err := s.meta.CreateCampaign(ctx, in.Token, in.AdAccountID, in.CampaignName, in.Objective, statusPaused)
	if err != nil {
		return s.fail(ctx, run, err)
	}
	run.CampaignID = campaignID
	if err := transitionRun(ctx, s.store, s.publisher, s.log, run, models.RunStatusCampaignCreated); err != nil {
		return err
	}

	targeting := metaads.FormatTargetingSpec(in.Targeting)
	adSetID, err := s.meta.CreateAdSet(ctx, in.Token, in.AdAccountID,
		fmt.Sprintf("%s - Ad Set", in.CampaignName), campaignID, in.DailyBudget, targeting, statusPaused)
	if err != nil {
		return s.fail(ctx, run, err)
	}
	run.AdSetID = adSetID
	if err := transitionRun(ctx, s.store, s.publisher, s.log, run, models.RunStatusAdSetCreated); err != nil {
		return err
	}

	creative := metaads.CreativeData{
		Title:        in.Content.Headline,
		Body:         in.Content.PrimaryText,
		Description:  in.Content.Description,
		ImageURL:     placeholderImageURL,
		WebsiteURL:   in.WebsiteURL,
		CallToAction: in.CallToAction,
		PageID:       in.PageID,
	}
	adID, creativeID, err := s.meta.CreateAd(ctx, in.Token, in.AdAccountID,
		fmt.Sprintf("%s - Ad", in.CampaignName), adSetID, creative, statusPaused)
	// The creative may exist even when the ad write failed; record it so the
	// orphan is visible in the run snapshot.
	run.CreativeID = creativeID
	if err != nil {
		return s.fail(ctx, run, err)
	}
	run.AdID = adID
	if err := transitionRun(ctx, s.store, s.publisher, s.log, run, models.RunStatusAdCreated); err != nil {
		return err
	}

	s.log.Info("campaign created",
		zap.String("run_id", run.ID.String()),
		zap.String("campaign_id", run.CampaignID),
		zap.String("ad_set_id", run.AdSetID),
		zap.String("ad_id", run.AdID),
	)
	return nil
}

// fail moves the run to its terminal failed state and passes the triggering
// error back unchanged.
func (s *PipelineService) fail(ctx context.Context, run *models.Run, cause error) error {
	run.Error = cause.Error()
	if err := transitionRun(ctx, s.store, s.publisher, s.log, run, models.RunStatusFailed); err != nil {
		s.log.Error("failed to record run failure", zap.Error(err), zap.String("run_id", run.ID.String()))
	}
	return cause
}
