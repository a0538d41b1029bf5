// Package main provides the meetbot command line entry point: an
// unattended agent that joins a third-party web meeting through browser
// automation and holds its presence there until told to leave.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/entrhq/meetbot/pkg/browser"
	appconfig "github.com/entrhq/meetbot/pkg/config"
	"github.com/entrhq/meetbot/pkg/logging"
	"github.com/entrhq/meetbot/pkg/meeting"
	"github.com/entrhq/meetbot/pkg/platform"
)

const version = "0.1.0"

// presencePollInterval is how often the running session re-checks that
// the meeting is still active.
const presencePollInterval = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "meetbot",
		Short:         "Unattended agent for joining web meetings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newJoinCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the meetbot version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("meetbot v%s\n", version)
		},
	}
}

type joinFlags struct {
	url       string
	platform  string
	botName   string
	organizer bool
	passcode  string
	meetingID string
	timeout   time.Duration
}

func newJoinCmd() *cobra.Command {
	var flags joinFlags

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a meeting and stay until interrupted or the meeting ends",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", "meeting URL (required)")
	cmd.Flags().StringVar(&flags.platform, "platform", "", "meeting platform: meet, zoom, or teams (required)")
	cmd.Flags().StringVar(&flags.botName, "name", "", "display name to join under")
	cmd.Flags().BoolVar(&flags.organizer, "organizer", false, "run the host-admission auto-admit loop after joining")
	cmd.Flags().StringVar(&flags.passcode, "passcode", "", "meeting passcode, for platforms that require one")
	cmd.Flags().StringVar(&flags.meetingID, "meeting-id", "", "meeting identifier used in diagnostics")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "join deadline (default from MEETBOT_JOIN_TIMEOUT_SEC)")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("platform")

	return cmd
}

func runJoin(ctx context.Context, flags joinFlags) error {
	// Local .env files are a development convenience; absence is fine.
	_ = godotenv.Load()
	cfg := appconfig.Load()

	sessionID := uuid.NewString()
	log := logging.New("meetbot", sessionID)
	defer log.Close()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, log)
	}

	botName := flags.botName
	if botName == "" {
		botName = cfg.BotName
	}
	joinTimeout := flags.timeout
	if joinTimeout <= 0 {
		joinTimeout = cfg.JoinTimeout
	}

	sessCfg := meeting.SessionConfig{
		MeetingURL:      flags.url,
		Platform:        flags.platform,
		BotName:         botName,
		IsOrganizer:     flags.organizer,
		JoinTimeout:     joinTimeout,
		MeetingPasscode: flags.passcode,
		MeetingID:       flags.meetingID,
		SessionID:       sessionID,
		ScreenshotDir:   cfg.ScreenshotDir,
		SendStatusUpdate: func(status, message string, metadata map[string]any) {
			log.Infof("status %s: %s", status, message)
		},
	}

	factory, err := platform.Resolve(sessCfg.Platform)
	if err != nil {
		return err
	}

	manager := browser.NewManager()
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer manager.Shutdown()

	session, err := manager.StartSession(sessionID, browser.SessionOptions{
		Headless:    cfg.Headless,
		BrowserArgs: platform.BrowserArgs(sessCfg.Platform),
	})
	if err != nil {
		return err
	}

	page := session.MeetingPage()
	ctrl := factory(page, sessCfg, log.WithComponent(sessCfg.Platform))
	engine := meeting.NewEngine(page, sessCfg, ctrl, log.WithComponent("engine"))
	defer engine.Cleanup()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := engine.JoinMeeting(ctx); err != nil {
		return err
	}

	// Hold presence until the meeting ends or we're told to go.
	ticker := time.NewTicker(presencePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Infof("shutdown requested, leaving meeting")
			if err := engine.LeaveMeeting(); err != nil {
				log.Warnf("leave failed: %v", err)
			}
			return nil
		case <-ticker.C:
			if !engine.IsMeetingActive() {
				log.Infof("meeting no longer active, shutting down")
				return nil
			}
		}
	}
}

func serveMetrics(addr string, log *logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Infof("serving metrics on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Warnf("metrics server: %v", err)
	}
}
