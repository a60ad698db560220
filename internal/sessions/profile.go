package sessions

import (
	"context"

	"github.com/bobmcallan/cryptoai-portal/internal/common"
	"github.com/bobmcallan/cryptoai-portal/internal/interfaces"
	"github.com/bobmcallan/cryptoai-portal/internal/models"
	"github.com/bobmcallan/cryptoai-portal/internal/sessions/dispatch"
)

// ProfileState is the profile edit modal's lifecycle state.
type ProfileState int

const (
	ProfileClosed ProfileState = iota
	ProfileLoading
	ProfileReady
	ProfileSaving
)

// String returns the state name for logging.
func (s ProfileState) String() string {
	switch s {
	case ProfileClosed:
		return "closed"
	case ProfileLoading:
		return "loading"
	case ProfileReady:
		return "ready"
	case ProfileSaving:
		return "saving"
	}
	return "unknown"
}

// ProfileEditSession is the modal profile editor:
// Closed -> Loading -> Ready -> Saving -> Closed, with Close valid from any
// open state.
// The draft is a local copy of the server profile; the authoritative profile
// is only overwritten on an explicit save. Closing discards the draft, and
// every open re-fetches; nothing is cached across sessions.
type ProfileEditSession struct {
	loop   *dispatch.Loop
	client interfaces.BackendClient
	logger *common.Logger

	state ProfileState
	draft models.Profile
	epoch int // bumped on every open/close; stale fetch/save results are dropped
}

// NewProfileEditSession creates a closed session.
func NewProfileEditSession(loop *dispatch.Loop, client interfaces.BackendClient, logger *common.Logger) *ProfileEditSession {
	return &ProfileEditSession{loop: loop, client: client, logger: logger}
}

// State returns the current lifecycle state.
func (s *ProfileEditSession) State() ProfileState { return s.state }

// IsOpen reports whether the modal is open in any state.
func (s *ProfileEditSession) IsOpen() bool { return s.state != ProfileClosed }

// Draft returns the editable draft profile.
func (s *ProfileEditSession) Draft() models.Profile { return s.draft }

// Open transitions Closed to Loading and fetches the stored profile. Opening an
// already-open session is a no-op.
func (s *ProfileEditSession) Open() {
	if s.state != ProfileClosed {
		return
	}
	s.epoch++
	s.state = ProfileLoading
	s.draft = models.DefaultProfile()

	epoch := s.epoch
	dispatch.Go(s.loop, func() (*models.Profile, error) {
		return s.client.GetProfile(context.Background())
	}, func(profile *models.Profile, err error) {
		s.onLoaded(epoch, profile, err)
	})
}

// onLoaded populates the draft from the server profile. A result arriving
// after the modal was closed (or re-opened) is dropped. A fetch failure is
// logged and leaves the default draft editable rather than blocking the UI.
func (s *ProfileEditSession) onLoaded(epoch int, profile *models.Profile, err error) {
	if epoch != s.epoch || s.state != ProfileLoading {
		return
	}
	s.state = ProfileReady
	if err != nil {
		s.logger.Warn().Err(err).Msg("Profile fetch failed")
		return
	}
	s.draft = profile.Normalized()
}

// SetRisk updates the draft risk tolerance. Only meaningful in Ready.
func (s *ProfileEditSession) SetRisk(risk models.RiskTolerance) {
	if s.state != ProfileReady || !models.ValidRisk(risk) {
		return
	}
	s.draft.RiskTolerance = risk
}

// SetGoal updates the draft investment goal. Only meaningful in Ready.
func (s *ProfileEditSession) SetGoal(goal models.InvestmentGoal) {
	if s.state != ProfileReady || !models.ValidGoal(goal) {
		return
	}
	s.draft.InvestmentGoal = goal
}

// Save persists the draft and closes the modal when the request completes,
// whether it succeeded or not. Only valid in Ready.
func (s *ProfileEditSession) Save() {
	if s.state != ProfileReady {
		return
	}
	s.state = ProfileSaving

	epoch := s.epoch
	draft := s.draft
	dispatch.Go(s.loop, func() (struct{}, error) {
		return struct{}{}, s.client.SaveProfile(context.Background(), draft)
	}, func(_ struct{}, err error) {
		s.onSaved(epoch, err)
	})
}

// onSaved closes the modal unconditionally after a save attempt. Failures
// are logged, not surfaced.
func (s *ProfileEditSession) onSaved(epoch int, err error) {
	if epoch != s.epoch || s.state != ProfileSaving {
		return
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("Profile save failed")
	} else {
		s.logger.Info().
			Str("risk", string(s.draft.RiskTolerance)).
			Str("goal", string(s.draft.InvestmentGoal)).
			Msg("Profile saved")
	}
	s.close()
}

// Close cancels the edit from any open state, discarding the draft without
// persisting. An in-flight fetch or save is allowed to complete but its
// result no longer applies to this session.
func (s *ProfileEditSession) Close() {
	if s.state == ProfileClosed {
		return
	}
	s.close()
}

func (s *ProfileEditSession) close() {
	s.state = ProfileClosed
	s.draft = models.Profile{}
	s.epoch++
}
