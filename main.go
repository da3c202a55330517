package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/lalomorales22/megacli/chat"
	"github.com/lalomorales22/megacli/tui"
	"github.com/lalomorales22/megacli/video"
)

func main() {
	videoPath := flag.String("video", "loading.mp4", "video file for the animated background")
	opacity := flag.Float64("opacity", 0.3, "background opacity, 0.0-1.0 (clamped)")
	provider := flag.String("provider", "claude", "AI provider: claude, grok, gpt, gemini")
	fps := flag.Float64("fps", video.DefaultFPS, "decode rate cap for the background video")
	debug := flag.Bool("debug", false, "write logs to megacli.log")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "megacli must run in a terminal")
		os.Exit(1)
	}

	if *debug {
		f, err := tea.LogToFile("megacli.log", "megacli")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	background, err := video.NewBackground(*videoPath, *fps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer background.Stop()

	cfg := tui.Config{
		Opacity:   *opacity,
		Provider:  chat.ParseProvider(*provider),
		Responder: chat.CannedResponder(400 * time.Millisecond),
	}

	p := tea.NewProgram(tui.NewModel(background, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
