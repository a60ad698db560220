package sessions

import (
	"github.com/bobmcallan/cryptoai-portal/internal/common"
)

// Tab is one of the mutually exclusive top-level views.
type Tab string

const (
	TabAssistant  Tab = "Assistant"
	TabAnalytics  Tab = "Analytics"
	TabWallets    Tab = "Wallets"
	TabRiskReport Tab = "Risk Report"
)

// Tabs lists the selectable tabs in sidebar order.
var Tabs = []Tab{TabAssistant, TabAnalytics, TabWallets, TabRiskReport}

// ValidTab reports whether t names a known tab.
func ValidTab(t Tab) bool {
	switch t {
	case TabAssistant, TabAnalytics, TabWallets, TabRiskReport:
		return true
	}
	return false
}

// ViewRouter holds the single active tab and mounts/unmounts the tab-bound
// sessions so exactly one is live at a time. The Assistant tab owns the
// conversation and the market polling controller; the Analytics tab owns the
// analytics session; Wallets and Risk Report are static views with no
// session. The profile modal is an orthogonal overlay, independent of tabs.
//
// The conversation itself has no poller, so switching away does not tear it
// down: the message log persists and an in-flight chat turn is allowed to
// complete and append.
type ViewRouter struct {
	logger *common.Logger

	conversation *ConversationSession
	polling      *PollingController
	analytics    *AnalyticsSession
	profile      *ProfileEditSession

	active Tab
}

// NewViewRouter creates a router with no active tab. Callers activate the
// initial tab with SwitchTo.
func NewViewRouter(logger *common.Logger, conversation *ConversationSession, polling *PollingController, analytics *AnalyticsSession, profile *ProfileEditSession) *ViewRouter {
	return &ViewRouter{
		logger:       logger,
		conversation: conversation,
		polling:      polling,
		analytics:    analytics,
		profile:      profile,
	}
}

// ActiveTab returns the currently active tab, or "" before the first switch.
func (r *ViewRouter) ActiveTab() Tab { return r.active }

// Conversation returns the conversation session.
func (r *ViewRouter) Conversation() *ConversationSession { return r.conversation }

// Polling returns the market polling controller.
func (r *ViewRouter) Polling() *PollingController { return r.polling }

// Analytics returns the analytics session.
func (r *ViewRouter) Analytics() *AnalyticsSession { return r.analytics }

// Profile returns the profile edit session.
func (r *ViewRouter) Profile() *ProfileEditSession { return r.profile }

// IsProfileOpen reports whether the profile modal overlays the current tab.
func (r *ViewRouter) IsProfileOpen() bool { return r.profile.IsOpen() }

// SwitchTo deactivates the previous tab's sessions and activates the new
// tab's. Switching to the active tab or to an unknown tab is a no-op.
// Inactive tabs are never pre-fetched.
func (r *ViewRouter) SwitchTo(tab Tab) {
	if !ValidTab(tab) || tab == r.active {
		return
	}

	r.deactivate(r.active)
	r.active = tab
	r.activate(tab)

	r.logger.Debug().Str("tab", string(tab)).Msg("Tab activated")
}

func (r *ViewRouter) activate(tab Tab) {
	switch tab {
	case TabAssistant:
		r.polling.Activate()
	case TabAnalytics:
		r.analytics.Activate()
	}
}

func (r *ViewRouter) deactivate(tab Tab) {
	switch tab {
	case TabAssistant:
		r.polling.Deactivate()
	case TabAnalytics:
		r.analytics.Deactivate()
	}
}

// OpenProfile opens the profile modal over whatever tab is active.
func (r *ViewRouter) OpenProfile() { r.profile.Open() }

// CloseProfile cancels the profile modal, discarding unsaved edits.
func (r *ViewRouter) CloseProfile() { r.profile.Close() }

// Shutdown deactivates whichever sessions are live. Used at teardown.
func (r *ViewRouter) Shutdown() {
	r.deactivate(r.active)
	r.profile.Close()
	r.active = ""
}
