package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bobmcallan/cryptoai-portal/internal/app"
	"github.com/bobmcallan/cryptoai-portal/internal/models"
	"github.com/bobmcallan/cryptoai-portal/internal/sessions"
)

// console is a minimal line-based front over the session core. It is
// deliberately thin: all coordination lives in the sessions, the console
// only translates lines into commands and prints state.
type console struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer
}

func newConsole(a *app.App, in io.Reader, out io.Writer) *console {
	return &console{app: a, in: bufio.NewScanner(in), out: out}
}

func (c *console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// run processes stdin until EOF or /quit.
func (c *console) run() {
	c.printf("%s", helpText)
	c.renderMessages()

	for {
		c.printf("> ")
		if !c.in.Scan() {
			return
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return
		}
		c.handle(line)
	}
}

func (c *console) handle(line string) {
	if !strings.HasPrefix(line, "/") {
		c.sendChat(line)
		return
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/help":
		c.printf("%s", helpText)
	case "/tab":
		c.switchTab(args)
	case "/market":
		c.renderMarket()
	case "/analytics":
		c.renderAnalytics()
	case "/select":
		c.selectAsset(args)
	case "/profile":
		c.profileCommand(args)
	case "/messages":
		c.renderMessages()
	case "/health":
		c.checkHealth()
	default:
		c.printf("Unknown command %q, try /help\n", cmd)
	}
}

// sendChat submits one conversational turn and waits for the reply so the
// console reads like a chat transcript.
func (c *console) sendChat(text string) {
	router := c.app.Router

	var accepted bool
	c.app.Loop.Do(func() {
		if router.ActiveTab() != sessions.TabAssistant {
			router.SwitchTo(sessions.TabAssistant)
		}
		conv := router.Conversation()
		conv.SetInput(text)
		before := len(conv.Messages())
		conv.Submit()
		accepted = len(conv.Messages()) > before
	})
	if !accepted {
		c.printf("(message not sent: empty input or a request is already in flight)\n")
		return
	}

	// Poll until the in-flight turn resolves.
	for {
		var busy bool
		c.app.Loop.Do(func() { busy = router.Conversation().IsBusy() })
		if !busy {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	var last models.Message
	c.app.Loop.Do(func() {
		msgs := router.Conversation().Messages()
		last = msgs[len(msgs)-1]
	})
	c.printf("%s", formatMessage(last))
}

func (c *console) switchTab(args []string) {
	if len(args) == 0 {
		c.printf("Usage: /tab assistant|analytics|wallets|risk\n")
		return
	}
	tab, ok := parseTab(args[0])
	if !ok {
		c.printf("Unknown tab %q\n", args[0])
		return
	}
	c.app.Loop.Do(func() { c.app.Router.SwitchTo(tab) })
	c.printf("Active tab: %s\n", tab)
}

func (c *console) selectAsset(args []string) {
	if len(args) == 0 {
		c.printf("Usage: /select <asset> (e.g. /select ethereum)\n")
		return
	}
	asset := strings.ToLower(args[0])
	c.app.Loop.Do(func() { c.app.Router.Analytics().SelectAsset(asset) })
}

func (c *console) profileCommand(args []string) {
	router := c.app.Router
	if len(args) == 0 {
		c.printf("Usage: /profile open|risk <low|medium|high>|goal <goal>|save|close|show\n")
		return
	}

	switch args[0] {
	case "open":
		c.app.Loop.Do(func() { router.OpenProfile() })
	case "close":
		c.app.Loop.Do(func() { router.CloseProfile() })
	case "save":
		c.app.Loop.Do(func() { router.Profile().Save() })
	case "risk":
		if len(args) < 2 {
			c.printf("Usage: /profile risk low|medium|high\n")
			return
		}
		c.app.Loop.Do(func() { router.Profile().SetRisk(models.RiskTolerance(args[1])) })
	case "goal":
		if len(args) < 2 {
			c.printf("Usage: /profile goal long_term_growth|passive_income|speculative_trading|wealth_preservation\n")
			return
		}
		c.app.Loop.Do(func() { router.Profile().SetGoal(models.InvestmentGoal(args[1])) })
	case "show":
	default:
		c.printf("Unknown profile command %q\n", args[0])
		return
	}

	var state sessions.ProfileState
	var draft models.Profile
	c.app.Loop.Do(func() {
		state = router.Profile().State()
		draft = router.Profile().Draft()
	})
	c.printf("%s", formatProfile(state, draft))
}

func (c *console) renderMessages() {
	var msgs []models.Message
	c.app.Loop.Do(func() { msgs = c.app.Router.Conversation().Messages() })
	for _, m := range msgs {
		c.printf("%s", formatMessage(m))
	}
}

func (c *console) renderMarket() {
	var snapshot models.MarketSnapshot
	c.app.Loop.Do(func() { snapshot = c.app.Router.Polling().Snapshot() })
	c.printf("%s", formatSnapshot(snapshot, c.app.Config.Market.Assets))
}

func (c *console) renderAnalytics() {
	router := c.app.Router
	var summary *models.AnalyticsSummary
	var strategies *models.StrategyRecommendation
	var forecast *models.ForecastSeries
	var selected string
	c.app.Loop.Do(func() {
		if router.ActiveTab() != sessions.TabAnalytics {
			router.SwitchTo(sessions.TabAnalytics)
		}
		a := router.Analytics()
		summary = a.Summary()
		strategies = a.Strategies()
		forecast = a.Forecast()
		selected = a.SelectedAsset()
	})
	c.printf("%s", formatAnalytics(summary, strategies, forecast, selected))
}

// checkHealth pings the backend directly; the client is safe to call off-loop.
func (c *console) checkHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.app.Client.Health(ctx); err != nil {
		c.printf("Backend: unreachable (%v)\n", err)
		return
	}
	c.printf("Backend: ok\n")
}

func parseTab(name string) (sessions.Tab, bool) {
	switch strings.ToLower(name) {
	case "assistant":
		return sessions.TabAssistant, true
	case "analytics":
		return sessions.TabAnalytics, true
	case "wallets":
		return sessions.TabWallets, true
	case "risk", "riskreport", "risk-report":
		return sessions.TabRiskReport, true
	}
	return "", false
}

const helpText = `CryptoAI portal console
  <text>            send a chat message to the assistant
  /tab <name>       switch tab (assistant, analytics, wallets, risk)
  /market           show the latest market snapshot
  /analytics        show analytics, strategies and the forecast
  /select <asset>   switch the forecast asset
  /profile ...      open|risk <v>|goal <v>|save|close|show
  /messages         reprint the conversation
  /health           check backend reachability
  /quit             exit
`
