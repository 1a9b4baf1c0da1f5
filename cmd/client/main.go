package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/workout-tracker/internal/client"
	"github.com/example/workout-tracker/internal/config"
)

const usage = `Usage: tracker <command> [flags]

Commands:
  register   create an account and sign in
  login      sign in with an existing account
  logout     sign out and clear the stored session
  prompt     answer the daily did-you-work-out question
  calendar   show the month calendar with streaks
  summary    show this week's workout count
  stats      show month totals and the current streak
  remove     delete the entry for a date (-date YYYY-MM-DD)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	sessionPath, err := client.DefaultSessionPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	store := client.NewStore(sessionPath)
	api := client.NewClient(cfg.ClientBaseURL, store, cfg.ClientTimeout)
	api.OnUnauthorized(func() {
		fmt.Fprintln(os.Stderr, "Your session has expired. Please sign in again.")
	})

	app := &cliApp{api: api, store: store, guard: client.NewGuard(store)}

	ctx := context.Background()
	command := os.Args[1]
	args := os.Args[2:]

	var runErr error
	switch command {
	case "register":
		runErr = app.register(ctx)
	case "login":
		runErr = app.login(ctx)
	case "logout":
		runErr = app.api.Logout(ctx)
	case "prompt":
		runErr = app.prompt(ctx)
	case "calendar":
		runErr = app.calendar(ctx, args)
	case "summary":
		runErr = app.summary(ctx)
	case "stats":
		runErr = app.stats(ctx)
	case "remove":
		runErr = app.remove(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if runErr != nil {
		reportError(runErr)
		os.Exit(1)
	}
}

type cliApp struct {
	api   *client.Client
	store *client.Store
	guard *client.Guard
}

// requireRoute enforces the navigation policy for session-protected commands.
func (a *cliApp) requireRoute(route client.Route) error {
	if resolved := a.guard.Resolve(route); resolved != route {
		return errors.New("please sign in first with: tracker login")
	}
	return nil
}

func (a *cliApp) register(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)
	username := promptLine(reader, "Username: ")
	password := promptLine(reader, "Password: ")
	confirm := promptLine(reader, "Confirm password: ")

	identity, err := a.api.Register(ctx, username, password, confirm)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s! Your account is ready.\n", identity.Username)
	return nil
}

func (a *cliApp) login(ctx context.Context) error {
	reader := bufio.NewReader(os.Stdin)
	username := promptLine(reader, "Username: ")
	password := promptLine(reader, "Password: ")

	identity, err := a.api.Login(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s!\n", identity.Username)
	return nil
}

func (a *cliApp) prompt(ctx context.Context) error {
	if err := a.requireRoute(client.RoutePrompt); err != nil {
		return err
	}

	workflow := client.NewDailyPrompt(a.api, time.Now)
	if err := workflow.Begin(); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	answer := strings.ToLower(promptLine(reader, "Did you work out today? [y/n] "))
	yes := answer == "y" || answer == "yes"

	state, err := workflow.Answer(ctx, yes)
	if err != nil {
		return err
	}

	switch state {
	case client.PromptRecorded:
		fmt.Println("Nice work! Today is in the books.")
	case client.PromptSkipped:
		fmt.Println("No worries. Tomorrow is another day.")
	}
	return workflow.Finish()
}

func (a *cliApp) calendar(ctx context.Context, args []string) error {
	if err := a.requireRoute(client.RouteCalendar); err != nil {
		return err
	}

	fs := flag.NewFlagSet("calendar", flag.ExitOnError)
	monthFlag := fs.String("month", "", "month to show as YYYY-MM (default current)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	today := time.Now().UTC()
	year, month := today.Year(), today.Month()
	if *monthFlag != "" {
		parsed, err := time.Parse("2006-01", *monthFlag)
		if err != nil {
			return fmt.Errorf("invalid -month value %q, expected YYYY-MM", *monthFlag)
		}
		year, month = parsed.Year(), parsed.Month()
	}

	recorded, err := a.api.ListWorkoutDays(ctx)
	if err != nil {
		return err
	}

	grid := client.BuildMonthGrid(year, month, recorded, today)
	renderGrid(grid)

	if longest := client.LongestStreak(recorded, today); longest.Length > 0 {
		fmt.Printf("Longest streak: %d days (ended %s)\n", longest.Length, longest.End.Format(time.DateOnly))
	}
	fmt.Printf("Current streak: %d days\n", client.CurrentStreak(recorded, today))

	if len(grid.FutureEntries) > 0 {
		dates := make([]string, 0, len(grid.FutureEntries))
		for _, d := range grid.FutureEntries {
			dates = append(dates, d.Format(time.DateOnly))
		}
		sort.Strings(dates)
		fmt.Printf("Warning: entries recorded for future dates: %s\n", strings.Join(dates, ", "))
	}
	return nil
}

func (a *cliApp) summary(ctx context.Context) error {
	if err := a.requireRoute(client.RouteWelcome); err != nil {
		return err
	}

	summary, err := a.api.WeeklySummary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Week of %s: %d day(s) worked out\n", summary.WeekStart.Format(time.DateOnly), summary.DaysWorkedOut)
	return nil
}

func (a *cliApp) stats(ctx context.Context) error {
	if err := a.requireRoute(client.RouteWelcome); err != nil {
		return err
	}

	stats, err := a.api.MonthStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("This month: %d/%d days (%.0f%%)\n", stats.CompletedWorkouts, stats.TotalDaysInMonth, stats.CompletionRate*100)
	fmt.Printf("Current streak: %d days\n", stats.CurrentStreak)
	return nil
}

func (a *cliApp) remove(ctx context.Context, args []string) error {
	if err := a.requireRoute(client.RouteCalendar); err != nil {
		return err
	}

	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	dateFlag := fs.String("date", "", "date to remove as YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dateFlag == "" {
		return errors.New("-date is required")
	}

	date, err := time.ParseInLocation(time.DateOnly, *dateFlag, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid -date value %q, expected YYYY-MM-DD", *dateFlag)
	}

	if err := a.api.RemoveWorkout(ctx, date); err != nil {
		return err
	}
	fmt.Printf("Removed entry for %s\n", date.Format(time.DateOnly))
	return nil
}

func renderGrid(grid client.MonthGrid) {
	fmt.Printf("%s %d\n", grid.Month, grid.Year)
	fmt.Println(" Mo  Tu  We  Th  Fr  Sa  Su")
	for _, week := range grid.Weeks {
		cells := make([]string, 0, 7)
		for _, cell := range week {
			switch cell.State {
			case client.CellOutOfMonth:
				cells = append(cells, "   ")
			case client.CellWorkedOut:
				cells = append(cells, fmt.Sprintf("%2d*", cell.Date.Day()))
			default:
				cells = append(cells, fmt.Sprintf("%2d ", cell.Date.Day()))
			}
		}
		fmt.Println(" " + strings.Join(cells, " "))
	}
	fmt.Println("* = worked out")
}

func promptLine(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func reportError(err error) {
	var vErr *client.ValidationError
	if errors.As(err, &vErr) {
		for field, message := range vErr.FieldErrors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, message)
		}
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
}
