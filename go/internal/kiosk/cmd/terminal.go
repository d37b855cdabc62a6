package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	oa "github.com/mcdev12/orderalone/go/clients/orderalone_client"
	"github.com/mcdev12/orderalone/go/internal/kiosk"
)

// terminal is a line-oriented view over the controller
type terminal struct {
	mu        sync.Mutex
	out       io.Writer
	lastPhase kiosk.Phase
	lastLeft  int
}

func newTerminal(out io.Writer) *terminal {
	return &terminal{out: out}
}

func (t *terminal) printf(format string, args ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) prompt() {
	t.printf("> ")
}

// onChange runs for every state change, including countdown ticks from the timer goroutine.
func (t *terminal) onChange(s kiosk.Snapshot) {
	t.mu.Lock()
	phaseChanged := s.Phase != t.lastPhase
	leftChanged := s.Remaining != t.lastLeft
	t.lastPhase = s.Phase
	t.lastLeft = s.Remaining
	t.mu.Unlock()

	switch {
	case phaseChanged && s.Phase == kiosk.PhaseEnded:
		t.render(s)
	case s.Phase == kiosk.PhaseRunning && leftChanged && s.Remaining > 0 && s.Remaining%10 == 0:
		t.printf("\n[%s left]\n", formatTime(s.Remaining))
	}
}

func (t *terminal) printHelp() {
	t.printf(`commands:
  login <account_id> <password>         signup <account_id> <password> [name]
  logout | menus | select <menu_id> | start [menu_id]
  category <name> | item <name> | topping <name> | submit
  end | reset | ranking | history | best | me | status | help | quit
`)
}

func (t *terminal) dispatch(ctx context.Context, ctrl *kiosk.Controller, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]
	rest := strings.Join(args, " ")

	var err error
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		t.printHelp()
		return false
	case "login":
		if len(args) < 2 {
			args = append(args, "", "")
		}
		if err = ctrl.Login(ctx, args[0], args[1]); err == nil {
			_ = ctrl.Bootstrap(ctx)
		}
	case "signup":
		if len(args) < 2 {
			args = append(args, "", "")
		}
		name := strings.Join(args[2:], " ")
		if err = ctrl.SignUp(ctx, name, args[0], args[1]); err == nil {
			_ = ctrl.Bootstrap(ctx)
		}
	case "logout":
		err = ctrl.Logout(ctx)
	case "menus":
		if err = ctrl.LoadMenuSummaries(ctx); err == nil {
			t.renderMenus(ctrl.Snapshot())
			return false
		}
	case "select":
		err = ctrl.SelectMenu(ctx, rest)
	case "start":
		err = ctrl.StartGame(ctx, rest)
	case "category":
		ctrl.ChooseCategory(rest)
	case "item":
		ctrl.ChooseItem("", rest)
	case "topping":
		on := ctrl.ToggleTopping(rest)
		t.printf("topping %s: %v\n", rest, on)
	case "submit":
		err = ctrl.SubmitAnswer(ctx)
	case "end":
		err = ctrl.EndGame(ctx)
	case "reset":
		ctrl.Reset()
	case "ranking":
		if err = ctrl.LoadTopGames(ctx); err == nil {
			t.renderRecords("top games", ctrl.Snapshot().TopGames)
			return false
		}
	case "history":
		if err = ctrl.LoadMyGames(ctx); err == nil {
			t.renderRecords("my games", ctrl.Snapshot().MyGames)
			return false
		}
	case "best":
		if err = ctrl.LoadBestGame(ctx); err == nil {
			if best := ctrl.Snapshot().BestGame; best != nil {
				t.printf("best score: %d (%s)\n", best.Score, best.Date.Format("01-02 15:04"))
			} else {
				t.printf("no finished games yet\n")
			}
			return false
		}
	case "me":
		err = ctrl.LoadProfile(ctx)
	case "status":
	default:
		t.printf("unknown command %q, try help\n", cmd)
		return false
	}

	if err != nil {
		t.printf("! %v\n", statusOf(err))
	}
	t.render(ctrl.Snapshot())
	return false
}

func statusOf(err error) string {
	var kerr *kiosk.Error
	if errors.As(err, &kerr) {
		return kerr.Status
	}
	return err.Error()
}

func (t *terminal) render(s kiosk.Snapshot) {
	var b strings.Builder

	if !s.Authenticated {
		b.WriteString("not logged in\n")
		if s.Status != "" {
			fmt.Fprintf(&b, "status: %s\n", s.Status)
		}
		t.printf("%s", b.String())
		return
	}

	user := "guest"
	if s.Profile != nil {
		user = fmt.Sprintf("%s (@%s)", s.Profile.Name, s.Profile.AccountID)
	}
	fmt.Fprintf(&b, "[%s] view=%s phase=%s", user, s.View, s.Phase)
	if s.SelectedMenuID != "" {
		fmt.Fprintf(&b, " menu=%s", s.SelectedMenuID)
	}
	b.WriteString("\n")

	switch s.View {
	case kiosk.ViewKiosk:
		fmt.Fprintf(&b, "time left %s, correct %d\n", formatTime(s.Remaining), len(s.SuccessfulOrders))
		if s.CurrentOrder != nil {
			fmt.Fprintf(&b, "order %s\n", s.CurrentOrder.ID)
		}
		for _, item := range kiosk.MenuItems(s.MenuDetail, s.Answer.Category) {
			mark := " "
			if item.Name == s.Answer.Item && item.Category == s.Answer.Category {
				mark = "*"
			}
			fmt.Fprintf(&b, "  %s %s / %s\n", mark, item.Category, item.Name)
		}
		for _, group := range kiosk.ToppingGroups(s.MenuDetail, s.Answer.Category) {
			names := make([]string, 0, len(group.Items))
			for _, item := range group.Items {
				names = append(names, item.Name)
			}
			fmt.Fprintf(&b, "  toppings %s: %s\n", group.Name, strings.Join(names, ", "))
		}
		fmt.Fprintf(&b, "answer: %s / %s %v\n", s.Answer.Category, s.Answer.Item, s.Answer.Toppings)
	case kiosk.ViewScore:
		if s.FinalScore != nil {
			fmt.Fprintf(&b, "final score %d, correct orders %d\n", *s.FinalScore, len(s.SuccessfulOrders))
		}
		if s.BestGame != nil {
			fmt.Fprintf(&b, "your best %d\n", s.BestGame.Score)
		}
	}

	if s.Status != "" {
		fmt.Fprintf(&b, "status: %s\n", s.Status)
	}
	t.printf("%s", b.String())
}

func (t *terminal) renderMenus(s kiosk.Snapshot) {
	if len(s.Menus) == 0 {
		t.printf("no menus\n")
		return
	}
	for _, m := range s.Menus {
		mark := " "
		if m.ID == s.SelectedMenuID {
			mark = "*"
		}
		t.printf("%s %s  %s  %s\n", mark, m.ID, m.Name, m.Description)
	}
}

func (t *terminal) renderRecords(title string, records []oa.GameRecord) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", title)
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	for i, r := range records {
		fmt.Fprintf(tw, "  %d.\t%s\t%d\t%s\n", i+1, r.UserName, r.Score, r.Date.Format("01-02 15:04"))
	}
	_ = tw.Flush()
	t.printf("%s", b.String())
}

func formatTime(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
